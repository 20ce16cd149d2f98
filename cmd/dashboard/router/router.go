package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"chat-dashboard/cmd/dashboard/handlers"
	"chat-dashboard/cmd/dashboard/middleware"
	"chat-dashboard/cmd/dashboard/web"
	_ "chat-dashboard/docs"
)

type Deps struct {
	Views  handlers.Views
	Health handlers.HealthChecker
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace())
	r.SetHTMLTemplate(web.Templates())

	r.GET("/health", handlers.HealthHandler(d.Health))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	dash := r.Group("/", middleware.ClientID())
	{
		dash.GET("", handlers.DashboardPageHandler(d.Views))
	}

	api := r.Group("/api/v1", middleware.ClientID())
	{
		api.GET("/dashboard", handlers.GetDashboardHandler(d.Views))
		api.POST("/sessions/load", handlers.LoadMoreHandler(d.Views))
		api.GET("/sessions/:id", handlers.GetSessionHandler(d.Views))
		api.POST("/sessions/:id/select", handlers.SelectSessionHandler(d.Views))
		api.POST("/viewport", handlers.ViewportSignalHandler(d.Views))
		api.POST("/notification/dismiss", handlers.DismissNotificationHandler(d.Views))
	}

	return r
}

// WithCORS 는 허용된 origin 에서 쿠키를 포함한 호출을 받을 수 있도록 감싼다.
// origins 가 비어 있으면 h 를 그대로 반환한다.
func WithCORS(h http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		return h
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "X-Span-Id"},
		AllowCredentials: true,
	}).Handler(h)
}
