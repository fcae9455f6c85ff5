package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	config "github.com/Keoroanthony/go-crm/configs"
	"github.com/Keoroanthony/go-crm/internal/models"
)

const (
	// APIKeyHeader carries the shared key used by jobs and other services.
	APIKeyHeader = "X-API-Key"

	sessionUserKey  = "user_id"
	sessionStateKey = "oauth_state"
)

// Authenticator signs staff in through OpenID Connect and guards the API.
type Authenticator struct {
	db           *gorm.DB
	apiKey       string
	verifier     *oidc.IDTokenVerifier
	oauth2Config *oauth2.Config
}

func New(ctx context.Context, cfg config.OIDCConfig, apiKey string, db *gorm.DB) (*Authenticator, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("OIDC provider init error: %w", err)
	}

	return &Authenticator{
		db:       db,
		apiKey:   apiKey,
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────────────────────────────────────

// GET /auth/login
func (a *Authenticator) Login(c *gin.Context) {
	state := uuid.NewString()

	sess := sessions.Default(c)
	sess.Set(sessionStateKey, state)
	if err := sess.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}

	c.Redirect(http.StatusFound, a.oauth2Config.AuthCodeURL(state))
}

// GET /auth/callback
func (a *Authenticator) Callback(c *gin.Context) {
	sess := sessions.Default(c)
	expected, _ := sess.Get(sessionStateKey).(string)
	if expected == "" || c.Query("state") != expected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state"})
		return
	}
	sess.Delete(sessionStateKey)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code missing"})
		return
	}

	ctx := c.Request.Context()
	oauth2Token, err := a.oauth2Config.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token exchange failed"})
		return
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no id_token in token response"})
		return
	}

	idToken, err := a.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token verification failed"})
		return
	}

	var claims struct {
		Sub   string `json:"sub"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "claims parse error"})
		return
	}

	user, err := a.upsertUser(ctx, claims.Sub, claims.Name, claims.Email)
	if err != nil {
		log.Printf("auth: failed to store user %s: %v", claims.Sub, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store user"})
		return
	}

	sess.Set(sessionUserKey, user.ID)
	_ = sess.Save()

	c.JSON(http.StatusOK, gin.H{"message": "logged in", "user": gin.H{"id": user.ID, "name": user.Name, "email": user.Email}})
}

func (a *Authenticator) upsertUser(ctx context.Context, sub, name, email string) (*models.User, error) {
	var user models.User
	err := a.db.WithContext(ctx).Where("oidc_id = ?", sub).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{OIDCID: sub}
	case err != nil:
		return nil, err
	}

	user.Name = name
	user.Email = email
	user.LastLogin = time.Now().UTC()
	if err := a.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// RequireAuth lets a request through when it carries the configured API key
// or belongs to a signed-in staff session, and injects *models.User for the
// latter.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader(APIKeyHeader); key != "" && a.apiKey != "" {
			if subtle.ConstantTimeCompare([]byte(key), []byte(a.apiKey)) == 1 {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
			return
		}

		sess := sessions.Default(c)
		userID, ok := sess.Get(sessionUserKey).(uint)
		if !ok || userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var user models.User
		if err := a.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		c.Set("user", &user)
		c.Next()
	}
}
