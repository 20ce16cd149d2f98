package trace

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

type ctxKey string

const ctxKeyTrace ctxKey = "dashboard_trace"

// Info 는 하나의 inbound 요청에 대한 트레이싱 정보다.
// 같은 요청 안에서 백엔드 호출이 일어날 때마다 spanSeq 가 1,2,3... 으로 증가한다.
type Info struct {
	RequestID string
	ClientID  string
	spanSeq   atomic.Int64
}

// GenerateID 는 요청 ID 로 쓸 UUID 문자열을 만든다.
func GenerateID() string {
	return uuid.NewString()
}

// WithRequest 는 요청 ID 를 담은 새 컨텍스트를 반환한다. span 은 0 에서 시작한다.
func WithRequest(ctx context.Context, requestID string) context.Context {
	info := &Info{RequestID: requestID}
	return context.WithValue(ctx, ctxKeyTrace, info)
}

// WithClient 는 이미 트레이스가 있는 컨텍스트에 브라우저 클라이언트 ID 를 기록한다.
func WithClient(ctx context.Context, clientID string) context.Context {
	if info := infoFromContext(ctx); info != nil {
		info.ClientID = clientID
		return ctx
	}
	info := &Info{RequestID: GenerateID(), ClientID: clientID}
	return context.WithValue(ctx, ctxKeyTrace, info)
}

func infoFromContext(ctx context.Context) *Info {
	if ctx == nil {
		return nil
	}
	v, _ := ctx.Value(ctxKeyTrace).(*Info)
	return v
}

func RequestIDFromContext(ctx context.Context) string {
	if info := infoFromContext(ctx); info != nil {
		return info.RequestID
	}
	return ""
}

func ClientIDFromContext(ctx context.Context) string {
	if info := infoFromContext(ctx); info != nil {
		return info.ClientID
	}
	return ""
}

// CurrentSpanID 는 증가 없이 현재 span 값을 반환한다.
func CurrentSpanID(ctx context.Context) string {
	info := infoFromContext(ctx)
	if info == nil {
		return "0"
	}
	return strconv.FormatInt(info.spanSeq.Load(), 10)
}

// NextSpanID 는 span 을 하나 증가시키고 (requestID, spanID) 를 반환한다.
// 컨텍스트에 트레이스가 없으면 새 요청 ID 와 span "1" 을 돌려준다.
func NextSpanID(ctx context.Context) (string, string) {
	info := infoFromContext(ctx)
	if info == nil {
		return GenerateID(), "1"
	}
	val := info.spanSeq.Add(1)
	return info.RequestID, strconv.FormatInt(val, 10)
}
