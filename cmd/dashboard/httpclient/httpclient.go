package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"chat-dashboard/cmd/dashboard/trace"
	"chat-dashboard/cmd/internal/logger"
)

const (
	headerRequestID = "X-Request-Id"
	headerSpanID    = "X-Span-Id"

	defaultTimeout = 10 * time.Second
)

// Config 는 아웃바운드 HTTP 클라이언트 설정이다.
// Transport 가 nil 이면 http.DefaultTransport 를 사용한다.
type Config struct {
	Timeout   time.Duration
	Transport http.RoundTripper
}

// loggingRoundTripper 는 백엔드 호출마다 X-Request-Id/X-Span-Id 를 붙이고
// 결과를 구조화 로그로 남긴다.
type loggingRoundTripper struct {
	inner http.RoundTripper
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	ctx := req.Context()
	requestID, spanID := trace.NextSpanID(ctx)
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set(headerSpanID, spanID)

	fields := logger.Fields{
		"method":     req.Method,
		"url":        req.URL.String(),
		"request_id": requestID,
		"span_id":    spanID,
	}
	if clientID := trace.ClientIDFromContext(ctx); clientID != "" {
		fields["client_id"] = clientID
	}

	resp, err := l.inner.RoundTrip(req)
	fields["duration"] = time.Since(start).String()
	if err != nil {
		fields["error"] = err.Error()
		logger.ErrorWithFields("httpclient request failed", fields)
		return nil, err
	}

	fields["status"] = resp.StatusCode
	logger.DebugWithFields("httpclient request completed", fields)
	return resp, nil
}

// BaseClient 는 http.Client 와 baseURL 을 묶어 요청 생성을 돕는다.
type BaseClient struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewBaseClient 는 주어진 설정으로 BaseClient 를 생성한다.
func NewBaseClient(baseURL string, cfg Config) *BaseClient {
	return &BaseClient{
		HTTPClient: New(cfg),
		BaseURL:    baseURL,
	}
}

// NewRequest 는 baseURL 에 relPath 를 이어붙이고 query 를 인코딩한 요청을 만든다.
// relPath 에 쿼리(?)가 포함되면 path.Join 이 손상시키므로 에러를 반환한다.
func (c *BaseClient) NewRequest(ctx context.Context, method, relPath string, query url.Values) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.Contains(relPath, "?") {
		return nil, fmt.Errorf("httpclient: relPath must not contain query string (use query parameter instead): %s", relPath)
	}
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("httpclient: parse base url: %w", err)
	}
	if relPath != "" {
		base.Path = path.Join(base.Path, relPath)
	}
	if query != nil {
		base.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, base.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *BaseClient) Do(req *http.Request) (*http.Response, error) {
	return c.HTTPClient.Do(req)
}

// New 는 로깅 RoundTripper 가 적용된 http.Client 를 만든다.
// Timeout 이 0 이면 10초를 사용한다.
func New(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &loggingRoundTripper{inner: transport},
	}
}
