package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"scanmenu-platform/internal/config"
	"scanmenu-platform/internal/middleware"
	"scanmenu-platform/internal/model"
	"scanmenu-platform/internal/repository"
	auth "scanmenu-platform/pkg/jwt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthStateCookie    = "oauth_state"
	googleUserInfoURL   = "https://www.googleapis.com/oauth2/v3/userinfo"
	providerGoogle      = "google"
	oauthStateCookieAge = 600
)

// googleProfile Google userinfo 接口返回的资料
type googleProfile struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// AuthHandler 包含认证相关的处理器
type AuthHandler struct {
	users       *repository.UserRepository
	jwtManager  *auth.TokenManager
	oauth       *oauth2.Config
	userInfoURL string
	successURL  string
	secure      bool
	logger      *zap.SugaredLogger
}

// NewGoogleOAuthConfig 根据配置构造 Google OAuth 客户端配置
func NewGoogleOAuthConfig(cfg config.OAuth) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// NewAuthHandler 创建一个新的 AuthHandler
func NewAuthHandler(users *repository.UserRepository, jwtManager *auth.TokenManager, oauthConfig *oauth2.Config, cfg config.OAuth, authCfg config.Auth, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		users:       users,
		jwtManager:  jwtManager,
		oauth:       oauthConfig,
		userInfoURL: googleUserInfoURL,
		successURL:  cfg.SuccessURL,
		secure:      authCfg.CookieSecure,
		logger:      logger,
	}
}

// AuthResponse 定义了认证成功后的响应
type AuthResponse struct {
	Token string      `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  *model.User `json:"user"`
}

// GoogleLogin godoc
// @Summary Google 登录
// @Description 跳转到 Google 授权页面
// @Tags Auth
// @Success 307 "跳转到 Google"
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, oauthStateCookieAge, "/", "", h.secure, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// GoogleCallback godoc
// @Summary Google 登录回调
// @Description 用授权码换取用户资料，创建或更新账号并签发 JWT
// @Tags Auth
// @Produce  json
// @Param   code   query  string  true  "授权码"
// @Param   state  query  string  true  "防 CSRF 的 state"
// @Success 200 {object} AuthResponse "成功响应"
// @Failure 400 {object} map[string]string "state 校验失败"
// @Failure 401 {object} map[string]string "授权失败"
// @Failure 403 {object} map[string]string "账户已被禁用"
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secure, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少授权码"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	profile, err := h.fetchProfile(ctx, code)
	if err != nil {
		h.logger.Warnw("Google 授权失败", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "授权失败"})
		return
	}

	user, err := h.users.UpsertOAuthUser(ctx, model.User{
		Email:      profile.Email,
		Name:       profile.Name,
		Image:      profile.Picture,
		Provider:   providerGoogle,
		ProviderID: profile.Sub,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "账户已被禁用"})
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		h.logger.Errorf("生成令牌失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成令牌失败"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookie, token, int(h.jwtManager.Expiration().Seconds()), "/", "", h.secure, true)
	h.logger.Infow("用户登录成功", "user_id", user.ID, "provider", providerGoogle)

	if h.successURL != "" {
		c.Redirect(http.StatusFound, h.successURL)
		return
	}
	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// Logout godoc
// @Summary 退出登录
// @Tags Auth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AuthCookie, "", -1, "/", "", h.secure, true)
	c.Status(http.StatusNoContent)
}

// GetCurrentUser godoc
// @Summary 获取当前用户信息
// @Description 获取当前已登录用户的信息
// @Tags User
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {object} model.User "成功响应"
// @Failure 401 {object} map[string]string "未认证"
// @Failure 404 {object} map[string]string "用户不存在"
// @Router /api/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) fetchProfile(ctx context.Context, code string) (*googleProfile, error) {
	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("交换令牌失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取用户资料失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("获取用户资料失败: HTTP %d", resp.StatusCode)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("解析用户资料失败: %w", err)
	}
	if profile.Sub == "" || profile.Email == "" {
		return nil, fmt.Errorf("用户资料不完整")
	}
	if !profile.EmailVerified {
		return nil, fmt.Errorf("邮箱未验证: %s", profile.Email)
	}
	return &profile, nil
}
