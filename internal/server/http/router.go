package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) newRouter() *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(s.config.TrustedProxies); err != nil {
		s.logger.Error(context.Background(), "invalid trusted proxies, trusting none", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(RequestLogger(s.logger))

	r.NoRoute(func(c *gin.Context) {
		writeErrorStatus(c, http.StatusNotFound, "resource not found")
	})
	r.NoMethod(func(c *gin.Context) {
		writeErrorStatus(c, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.HandleMethodNotAllowed = true

	r.GET("/ping", s.Ping)

	users := r.Group("/users")
	{
		users.POST("", s.CreateUser)
		users.POST("/login", s.limiter.Handler(), s.Login)

		protected := users.Group("", RequireToken(s.tokens))
		{
			protected.GET("", s.ListUsers)
			protected.GET("/:id", s.GetUser)
			protected.PUT("/:id", s.UpdateUser)
			protected.DELETE("/:id", s.DeleteUser)
		}
	}

	return r
}
