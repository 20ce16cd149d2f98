package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chat-dashboard/cmd/dashboard/dto"
	"chat-dashboard/cmd/dashboard/middleware"
	"chat-dashboard/cmd/dashboard/view"
	"chat-dashboard/cmd/internal/logger"
)

// Views 는 클라이언트별 대시보드 뷰를 제공한다. workspace.Registry 가 구현한다.
type Views interface {
	Acquire(ctx context.Context, clientID string) *view.View
}

func acquire(c *gin.Context, views Views) *view.View {
	return views.Acquire(c.Request.Context(), middleware.ClientIDFrom(c))
}

func filterFrom(c *gin.Context) dto.FilterDTO {
	return dto.FilterDTO{
		Query: c.Query("q"),
		Start: c.Query("start"),
		End:   c.Query("end"),
	}
}

// respondDashboard 는 현재 필터로 뷰를 렌더링해 JSON 으로 응답한다.
func respondDashboard(c *gin.Context, v *view.View) {
	page, err := v.Render(filterFrom(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

func sessionIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid session id"})
		return 0, false
	}
	return id, true
}

// DashboardPageHandler 는 대시보드 HTML 을 렌더링한다. 첫 렌더링 결과를 함께 싣는다.
func DashboardPageHandler(views Views) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := acquire(c, views)
		page, err := v.Render(filterFrom(c))
		if err != nil {
			page, _ = v.Render(dto.FilterDTO{})
		}
		c.HTML(http.StatusOK, "dashboard.tmpl", gin.H{"Page": page})
	}
}

// GetDashboardHandler godoc
// @Summary      대시보드 뷰 모델 조회
// @Description  로드된 세션을 검색어/기간으로 필터링한 결과와 선택된 세션의 메시지를 반환합니다.
// @Tags         dashboard
// @Produce      json
// @Param        q      query  string  false  "세션 이름 검색어 (대소문자 무시)"
// @Param        start  query  string  false  "시작일 YYYY-MM-DD"
// @Param        end    query  string  false  "종료일 YYYY-MM-DD (당일 포함)"
// @Success      200    {object}  dto.DashboardDTO
// @Failure      400    {object}  dto.ErrorResponseDTO
// @Router       /dashboard [get]
func GetDashboardHandler(views Views) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondDashboard(c, acquire(c, views))
	}
}

// LoadMoreHandler godoc
// @Summary      다음 페이지 로드
// @Description  다음 페이지를 수동으로 요청합니다. 실패는 알림으로 노출되며 응답은 200 입니다.
// @Tags         dashboard
// @Produce      json
// @Param        q      query  string  false  "세션 이름 검색어"
// @Param        start  query  string  false  "시작일 YYYY-MM-DD"
// @Param        end    query  string  false  "종료일 YYYY-MM-DD"
// @Success      200    {object}  dto.DashboardDTO
// @Router       /sessions/load [post]
func LoadMoreHandler(views Views) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := acquire(c, views)
		if _, err := v.LoadMore(c.Request.Context()); err != nil {
			logger.WarnWithFields("manual load failed", logger.Fields{
				"client_id": middleware.ClientIDFrom(c),
				"error":     err.Error(),
			})
		}
		respondDashboard(c, v)
	}
}

// ViewportSignalHandler godoc
// @Summary      뷰포트 가시성 신호
// @Description  마지막 세션 요소의 가시성 변화를 전달합니다. 관찰 중인 요소가 화면에 들어오면 다음 페이지를 로드합니다.
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        body   body   dto.ViewportSignalRequestDTO  true  "가시성 변화"
// @Success      200    {object}  dto.DashboardDTO
// @Failure      400    {object}  dto.ErrorResponseDTO
// @Router       /viewport [post]
func ViewportSignalHandler(views Views) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ViewportSignalRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		v := acquire(c, views)
		v.ReportVisibility(c.Request.Context(), req.Target, req.Visible)
		respondDashboard(c, v)
	}
}

// SelectSessionHandler godoc
// @Summary      세션 선택
// @Description  이미 로드된 세션의 메시지를 메시지 뷰로 복사합니다. 백엔드 호출은 없습니다.
// @Tags         dashboard
// @Produce      json
// @Param        id   path      int  true  "세션 ID"
// @Success      200  {object}  dto.DashboardDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /sessions/{id}/select [post]
func SelectSessionHandler(views Views) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionIDParam(c)
		if !ok {
			return
		}
		v := acquire(c, views)
		if _, err := v.Select(id); err != nil {
			if errors.Is(err, view.ErrSessionNotLoaded) {
				c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		respondDashboard(c, v)
	}
}

// GetSessionHandler godoc
// @Summary      로드된 세션 조회
// @Description  이미 로드된 세션을 그대로 반환합니다. 백엔드 호출은 없습니다.
// @Tags         dashboard
// @Produce      json
// @Param        id   path      int  true  "세션 ID"
// @Success      200  {object}  dto.ChatSession
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /sessions/{id} [get]
func GetSessionHandler(views Views) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionIDParam(c)
		if !ok {
			return
		}
		session, err := acquire(c, views).Session(id)
		if err != nil {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// DismissNotificationHandler godoc
// @Summary      알림 닫기
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Router       /notification/dismiss [post]
func DismissNotificationHandler(views Views) gin.HandlerFunc {
	return func(c *gin.Context) {
		acquire(c, views).DismissNotification()
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "dismissed"})
	}
}
