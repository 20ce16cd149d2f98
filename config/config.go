package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

// 기본값. 백엔드 API 는 per_page=20 고정을 기대한다.
const (
	DefaultListenAddr        = ":8080"
	DefaultBackendBaseURL    = "http://localhost:8000"
	DefaultSessionsPath      = "/api/chat-sessions"
	DefaultPageSize          = 20
	DefaultRequestTimeout    = 10 * time.Second
	DefaultNotificationDelay = 3 * time.Second
	DefaultClientIdleTTL     = 30 * time.Minute
	DefaultTimezone          = "UTC"
)

type AppConfig struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
	Backend   BackendConfig   `yaml:"backend"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig 는 대시보드 게이트웨이 자체의 HTTP 설정이다.
type ServerConfig struct {
	ListenAddr  string   `yaml:"listen_addr"`
	CORSOrigins []string `yaml:"cors_origins"`
	// ClientIdleTTL 동안 요청이 없는 브라우저 클라이언트의 뷰는 정리된다.
	ClientIdleTTL time.Duration `yaml:"client_idle_ttl"`
}

// BackendConfig 는 원격 채팅 세션 API 위치를 정의한다.
type BackendConfig struct {
	BaseURL        string        `yaml:"base_url"`
	SessionsPath   string        `yaml:"sessions_path"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type DashboardConfig struct {
	PageSize          int           `yaml:"page_size"`
	NotificationDelay time.Duration `yaml:"notification_delay"`
	// Timezone 은 날짜 필터 경계와 "Today HH:MM" 표기에 사용된다.
	Timezone string `yaml:"timezone"`
}

var (
	mu     sync.RWMutex
	config *AppConfig
)

// Load 는 .env 와 config.yaml 을 읽어 AppConfig 를 만든다.
// path 가 비어 있으면 cwd 에서 위로 올라가며 config.yaml 을 찾고,
// 파일이 없으면 기본값과 환경변수만으로 구성한다.
func Load(path string) (AppConfig, error) {
	if path == "" {
		if base := GetBasePath(); base != "" {
			path = filepath.Join(base, CONFIG_FILE)
		}
	}

	envDir := "."
	if path != "" {
		envDir = filepath.Dir(path)
	}
	// .env 는 선택 사항이다.
	_ = godotenv.Load(filepath.Join(envDir, ENV_FILE))

	var c AppConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return AppConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &c); err != nil {
				return AppConfig{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	c.applyEnv()
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

func (c *AppConfig) applyEnv() {
	if v := os.Getenv("BACKEND_BASE_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.Server.ListenAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = strings.Split(v, ",")
	}
}

func (c *AppConfig) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
	if c.Server.ClientIdleTTL == 0 {
		c.Server.ClientIdleTTL = DefaultClientIdleTTL
	}
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = DefaultBackendBaseURL
	}
	if c.Backend.SessionsPath == "" {
		c.Backend.SessionsPath = DefaultSessionsPath
	}
	if c.Backend.RequestTimeout == 0 {
		c.Backend.RequestTimeout = DefaultRequestTimeout
	}
	if c.Dashboard.PageSize == 0 {
		c.Dashboard.PageSize = DefaultPageSize
	}
	if c.Dashboard.NotificationDelay == 0 {
		c.Dashboard.NotificationDelay = DefaultNotificationDelay
	}
	if c.Dashboard.Timezone == "" {
		c.Dashboard.Timezone = DefaultTimezone
	}
}

// Validate 는 기본값이 채워진 설정을 검증한다.
func (c AppConfig) Validate() error {
	return validation.Errors{
		"logging": validation.ValidateStruct(&c.Logging,
			validation.Field(&c.Logging.Level, validation.In("debug", "info", "warn", "error")),
		),
		"server": validation.ValidateStruct(&c.Server,
			validation.Field(&c.Server.ListenAddr, validation.Required),
			validation.Field(&c.Server.ClientIdleTTL, validation.Min(time.Second)),
		),
		"backend": validation.ValidateStruct(&c.Backend,
			validation.Field(&c.Backend.BaseURL, validation.Required, is.URL),
			validation.Field(&c.Backend.SessionsPath, validation.Required),
			validation.Field(&c.Backend.RequestTimeout, validation.Min(time.Millisecond)),
		),
		"dashboard": validation.ValidateStruct(&c.Dashboard,
			validation.Field(&c.Dashboard.PageSize, validation.Min(1), validation.Max(100)),
			validation.Field(&c.Dashboard.NotificationDelay, validation.Min(time.Millisecond)),
			validation.Field(&c.Dashboard.Timezone, validation.By(validTimezone)),
		),
	}.Filter()
}

func validTimezone(value interface{}) error {
	name, _ := value.(string)
	if _, err := time.LoadLocation(name); err != nil {
		return errors.New("unknown timezone")
	}
	return nil
}

// Location 은 Dashboard.Timezone 을 *time.Location 으로 변환한다.
// Validate 를 통과한 설정이라면 실패하지 않는다.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Dashboard.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// InitApp 은 전역 설정을 초기화한다.
func InitApp(path string) error {
	c, err := Load(path)
	if err != nil {
		return err
	}
	mu.Lock()
	config = &c
	mu.Unlock()
	return nil
}

func GetConfig() AppConfig {
	mu.RLock()
	c := config
	mu.RUnlock()
	if c == nil {
		if err := InitApp(""); err != nil {
			panic(err)
		}
		mu.RLock()
		c = config
		mu.RUnlock()
	}

	return *c
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
