package sessionclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"chat-dashboard/cmd/dashboard/dto"
	"chat-dashboard/cmd/dashboard/httpclient"
)

// Client 는 원격 채팅 세션 API 를 호출하는 얇은 클라이언트다.
//
// - 페이지 단위 조회만 수행하며 세션별 추가 조회는 하지 않는다.
//   메시지 전체가 세션 페이로드에 포함되어 내려오기 때문이다.
// - 재시도/백오프는 하지 않는다. 실패는 FetchError 로 호출자에게 돌려준다.
type Client struct {
	base         *httpclient.BaseClient
	sessionsPath string
}

// ErrFetchFailed 는 모든 FetchError 가 errors.Is 로 매칭되는 sentinel 이다.
var ErrFetchFailed = errors.New("chat sessions fetch failed")

// FetchError 는 페이지 조회 실패를 나타낸다.
// StatusCode 는 전송 오류나 본문 파싱 오류일 때 0 이다.
type FetchError struct {
	Page       int
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch page %d: status=%d body=%s", e.Page, e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("fetch page %d: %v", e.Page, e.Err)
	default:
		return fmt.Sprintf("fetch page %d failed", e.Page)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// New 는 baseURL 과 세션 목록 경로로 클라이언트를 생성한다.
func New(baseURL, sessionsPath string, cfg httpclient.Config) *Client {
	return &Client{
		base:         httpclient.NewBaseClient(baseURL, cfg),
		sessionsPath: sessionsPath,
	}
}

// FetchPage 는 GET {sessionsPath}?page=N&per_page=M 을 호출한다.
// 2xx 가 아니거나, 전송 오류거나, 본문이 JSON 이 아니면 *FetchError 를 반환한다.
func (c *Client) FetchPage(ctx context.Context, page, perPage int) (dto.SessionPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	req, err := c.base.NewRequest(ctx, http.MethodGet, c.sessionsPath, q)
	if err != nil {
		return dto.SessionPage{}, &FetchError{Page: page, Err: err}
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return dto.SessionPage{}, &FetchError{Page: page, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return dto.SessionPage{}, &FetchError{Page: page, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out dto.SessionPage
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return dto.SessionPage{}, &FetchError{Page: page, Err: fmt.Errorf("decode body: %w", err)}
	}
	return out, nil
}

// Health 는 page=1&per_page=1 로 백엔드 응답 가능 여부만 확인한다.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.FetchPage(ctx, 1, 1)
	return err
}
