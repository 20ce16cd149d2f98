package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"chat-dashboard/cmd/dashboard/trace"
)

const (
	// ClientCookie 는 브라우저 클라이언트를 식별하는 쿠키 이름이다.
	ClientCookie = "dash_client"
	// ClientIDKey 는 gin 컨텍스트에 저장되는 클라이언트 ID 키다.
	ClientIDKey = "client_id"

	clientCookieMaxAge = 24 * 60 * 60
)

// ClientID 는 dash_client 쿠키가 없거나 UUID 가 아니면 새로 발급한다.
// 발급된 ID 는 gin 컨텍스트와 트레이스 컨텍스트 양쪽에 저장된다.
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(ClientCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(ClientCookie, id, clientCookieMaxAge, "/", "", false, true)
		}

		c.Set(ClientIDKey, id)
		c.Request = c.Request.WithContext(trace.WithClient(c.Request.Context(), id))
		c.Next()
	}
}

// ClientIDFrom 은 ClientID 미들웨어가 저장한 값을 꺼낸다.
func ClientIDFrom(c *gin.Context) string {
	return c.GetString(ClientIDKey)
}
