package handlers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/Keoroanthony/go-crm/internal/auth"
)

const sessionName = "gosess"

type RouterConfig struct {
	Resolver      *Resolver
	SessionSecret string
	// Auth guards the API endpoint. Nil leaves it open.
	Auth *auth.Authenticator
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), RequestID())

	// ── session store ──
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions(sessionName, store))

	// ── public endpoints ──
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := NewAPI(cfg.Resolver)
	if cfg.Auth == nil {
		r.POST("/graphql", api.Handle)
		return r
	}

	r.GET("/auth/login", cfg.Auth.Login)
	r.GET("/auth/callback", cfg.Auth.Callback)

	// ── protected API ──
	r.POST("/graphql", cfg.Auth.RequireAuth(), api.Handle)
	return r
}
