package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"scanmenu-platform/internal/config"
	"scanmenu-platform/internal/middleware"
	"scanmenu-platform/internal/model"
	"scanmenu-platform/internal/repository"
	"scanmenu-platform/internal/service"
	"scanmenu-platform/internal/testutil"
	auth "scanmenu-platform/pkg/jwt"
	"scanmenu-platform/pkg/storage"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

type fakePresigner struct{}

func (fakePresigner) PresignUpload(_ context.Context, key, mimeType string) (*storage.PresignedUpload, error) {
	return &storage.PresignedUpload{
		UploadURL: "https://upload.example.com/" + key + "?sig=x",
		Method:    http.MethodPut,
		Key:       key,
		PublicURL: "https://cdn.example.com/" + key,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (fakePresigner) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *auth.TokenManager
	users  *repository.UserRepository
	viewer *ViewerHandler
}

// setupTest 为集成测试初始化一个干净的环境
func setupTest(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	logger := testutil.NewLogger(t)

	// 测试中不依赖 Redis 和真实的对象存储
	users := repository.NewUserRepository(db)
	restaurants := repository.NewRestaurantRepository(db)
	menus := repository.NewMenuRepository(db)
	links := repository.NewLinkRepository(db)
	visits := repository.NewVisitRepository(db)

	registry := service.NewLinkRegistry(links, menus, logger)
	recorder := service.NewVisitRecorder(links, visits, "test-salt", time.Second, logger)
	analytics := service.NewAnalytics(links, menus, visits, logger)
	plans := service.NewPlans(repository.NewPlanRepository(db), repository.NewSubscriptionRepository(db),
		repository.NewUsageRepository(db), logger)
	require.NoError(t, plans.Seed(context.Background()))

	tokens := auth.NewManager("test-secret", "scanmenu-test", 1)
	owner := NewOwnership(restaurants, menus, links)
	storageOpts := storage.Options{Bucket: "scanmenu", Region: "cn-hangzhou", PublicBaseURL: "https://cdn.example.com"}

	authHandler := NewAuthHandler(users, tokens, &oauth2.Config{}, config.OAuth{}, config.Auth{}, logger)
	restaurantHandler := NewRestaurantHandler(restaurants, menus, owner, plans, logger)
	linkHandler := NewLinkHandler(registry, analytics, owner, plans, "https://scan.example.com")
	planHandler := NewPlanHandler(plans, logger)
	viewer := NewViewerHandler(registry, recorder, menus, storageOpts)
	uploadHandler := NewUploadHandler(fakePresigner{}, owner, logger)
	purger := service.NewRetentionPurger(visits, nil, 24*time.Hour, 100, "", logger)
	adminHandler := NewAdminHandler(purger, logger)

	router := gin.New()
	router.GET("/health", HealthCheck)
	router.GET("/m/:slug", viewer.ViewMenu)

	api := router.Group("/api", middleware.AuthMiddleware(tokens))
	api.GET("/me", authHandler.GetCurrentUser)
	api.POST("/restaurants", restaurantHandler.CreateRestaurant)
	api.GET("/restaurants", restaurantHandler.ListRestaurants)
	api.POST("/restaurants/:id/menus", restaurantHandler.CreateMenu)
	api.GET("/restaurants/:id/menus", restaurantHandler.ListMenus)
	api.PATCH("/menus/:id/status", restaurantHandler.UpdateMenuStatus)
	api.POST("/menus/:id/links", linkHandler.CreateLink)
	api.GET("/menus/:id/links", linkHandler.ListLinks)
	api.GET("/menus/:id/analytics", linkHandler.MenuAnalytics)
	api.PATCH("/links/:id", linkHandler.UpdateLink)
	api.DELETE("/links/:id", linkHandler.DeactivateLink)
	api.GET("/links/:id/analytics", linkHandler.LinkAnalytics)
	api.POST("/uploads/presigned-url", uploadHandler.PresignUpload)
	api.POST("/uploads/complete", uploadHandler.CompleteUpload)
	api.GET("/plans", planHandler.ListPlans)
	api.GET("/subscription", planHandler.CurrentSubscription)
	api.POST("/admin/visits/purge", middleware.AdminMiddleware(), adminHandler.PurgeVisits)
	api.POST("/admin/subscriptions", middleware.AdminMiddleware(), planHandler.AssignPlan)

	return &testEnv{router: router, db: db, tokens: tokens, users: users, viewer: viewer}
}

// login 创建一个 OAuth 用户并返回其令牌
func (e *testEnv) login(t *testing.T, email string) (uint, string) {
	t.Helper()
	user, err := e.users.UpsertOAuthUser(context.Background(), model.User{
		Email: email, Name: email, Provider: "google", ProviderID: "sub-" + email,
	})
	require.NoError(t, err)
	token, err := e.tokens.GenerateToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	return user.ID, token
}

func (e *testEnv) do(method, path, token string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// seedMenu 通过接口创建餐厅和菜单
func (e *testEnv) seedMenu(t *testing.T, token, slug string) (restaurantID, menuID uint) {
	t.Helper()

	w := e.do(http.MethodPost, "/api/restaurants", token, CreateRestaurantRequest{
		NameEn: "Olive House", NameAr: "بيت الزيتون", Slug: slug, PrimaryColor: "#112233",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var restaurant model.Restaurant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restaurant))

	w = e.do(http.MethodPost, fmt.Sprintf("/api/restaurants/%d/menus", restaurant.ID), token, CreateMenuRequest{
		Name: "Dinner", PDFKey: fmt.Sprintf("menus/%d/dinner.pdf", restaurant.ID), Status: model.MenuStatusPublished,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var menu model.Menu
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))

	return restaurant.ID, menu.ID
}

// TestMenuLink_Integration 测试创建链接、扫码跳转、统计和停用的完整流程
func TestMenuLink_Integration(t *testing.T) {
	env := setupTest(t)
	_, token := env.login(t, "owner@example.com")
	restaurantID, menuID := env.seedMenu(t, token, "olive-house")

	// === 步骤 1: 创建链接 ===
	w := env.do(http.MethodPost, fmt.Sprintf("/api/menus/%d/links", menuID), token, map[string]interface{}{
		"name":          "Terrace",
		"tracking_meta": map[string]string{"source": "flyer"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var link LinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &link))
	assert.Len(t, link.Slug, 8)
	assert.Equal(t, "https://scan.example.com/m/"+link.Slug, link.URL)
	assert.Equal(t, model.DefaultQRCodeColor, link.Style.QRCodeColor)

	// === 步骤 2: 扫码访问并验证重定向 ===
	w = env.do(http.MethodGet, "/m/"+link.Slug+"?table=5", "", nil, "CF-IPCountry", "AE", "User-Agent", "iPhone")
	assert.Equal(t, http.StatusFound, w.Code, "访问短码时，状态码应为 302 Found")
	assert.Equal(t, fmt.Sprintf("https://cdn.example.com/menus/%d/dinner.pdf", restaurantID), w.Header().Get("Location"))

	w = env.do(http.MethodGet, "/m/"+link.Slug+"?utm_source=instagram", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	env.viewer.Wait()

	// === 步骤 3: 查看统计 ===
	w = env.do(http.MethodGet, fmt.Sprintf("/api/links/%d/analytics", link.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var summary service.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, int64(2), summary.Total)
	assert.Equal(t, map[string]int64{"flyer": 1, "instagram": 1}, summary.BySource)
	assert.Equal(t, map[string]int64{"5": 1, service.UnknownBucket: 1}, summary.ByTable)
	assert.Equal(t, map[string]int64{"AE": 1, service.UnknownBucket: 1}, summary.ByCountry)

	w = env.do(http.MethodGet, fmt.Sprintf("/api/menus/%d/analytics?from=2000-01-01", menuID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, int64(2), summary.Total)

	w = env.do(http.MethodGet, fmt.Sprintf("/api/links/%d/analytics?from=yesterday", link.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// === 步骤 4: 停用后返回 410，统计仍然可查 ===
	w = env.do(http.MethodDelete, fmt.Sprintf("/api/links/%d", link.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodGet, "/m/"+link.Slug, "", nil)
	assert.Equal(t, http.StatusGone, w.Code)
	env.viewer.Wait()

	w = env.do(http.MethodGet, fmt.Sprintf("/api/links/%d/analytics", link.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, int64(2), summary.Total, "停用后不再记录访问")

	// 不存在的短码
	w = env.do(http.MethodGet, "/m/nothere1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateLink_Handler(t *testing.T) {
	env := setupTest(t)
	_, token := env.login(t, "owner@example.com")
	_, menuID := env.seedMenu(t, token, "olive-house")

	w := env.do(http.MethodPost, fmt.Sprintf("/api/menus/%d/links", menuID), token, CreateLinkRequest{Name: "Bar"})
	require.Equal(t, http.StatusCreated, w.Code)
	var link LinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &link))

	w = env.do(http.MethodPatch, fmt.Sprintf("/api/links/%d", link.ID), token, map[string]interface{}{
		"style_config": map[string]string{"qr_code_color": "blue"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPatch, fmt.Sprintf("/api/links/%d", link.ID), token, map[string]interface{}{
		"slug":         "bar-counter",
		"style_config": map[string]string{"frame_style": "square"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated LinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "bar-counter", updated.Slug)
	assert.Equal(t, model.FrameSquare, updated.Style.FrameStyle)
	assert.Equal(t, "Bar", updated.Name)

	w = env.do(http.MethodGet, "/m/bar-counter", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	w = env.do(http.MethodGet, "/m/"+link.Slug, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	env.viewer.Wait()

	w = env.do(http.MethodGet, fmt.Sprintf("/api/menus/%d/links", menuID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []LinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "bar-counter", list[0].Slug)
}

func TestOwnershipIsEnforced(t *testing.T) {
	env := setupTest(t)
	_, ownerToken := env.login(t, "owner@example.com")
	_, otherToken := env.login(t, "other@example.com")
	restaurantID, menuID := env.seedMenu(t, ownerToken, "olive-house")

	w := env.do(http.MethodPost, fmt.Sprintf("/api/menus/%d/links", menuID), ownerToken, CreateLinkRequest{})
	require.Equal(t, http.StatusCreated, w.Code)
	var link LinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &link))

	assert.Equal(t, http.StatusForbidden, env.do(http.MethodPost, fmt.Sprintf("/api/menus/%d/links", menuID), otherToken, CreateLinkRequest{}).Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodDelete, fmt.Sprintf("/api/links/%d", link.ID), otherToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, fmt.Sprintf("/api/links/%d/analytics", link.ID), otherToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, fmt.Sprintf("/api/restaurants/%d/menus", restaurantID), otherToken, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/restaurants", "", nil).Code)

	w = env.do(http.MethodGet, "/api/restaurants", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestRestaurantAndMenu(t *testing.T) {
	env := setupTest(t)
	_, token := env.login(t, "owner@example.com")
	_, otherToken := env.login(t, "other@example.com")
	_, menuID := env.seedMenu(t, token, "olive-house")

	// slug 重复和格式错误
	w := env.do(http.MethodPost, "/api/restaurants", otherToken, CreateRestaurantRequest{NameEn: "A", NameAr: "ب", Slug: "olive-house"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(http.MethodPost, "/api/restaurants", otherToken, CreateRestaurantRequest{NameEn: "A", NameAr: "ب", Slug: "Olive House!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 归档后不能再创建链接，且扫码返回 410
	w = env.do(http.MethodPost, fmt.Sprintf("/api/menus/%d/links", menuID), token, CreateLinkRequest{})
	require.Equal(t, http.StatusCreated, w.Code)
	var link LinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &link))

	w = env.do(http.MethodPatch, fmt.Sprintf("/api/menus/%d/status", menuID), token, UpdateMenuStatusRequest{Status: model.MenuStatusArchived})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodPost, fmt.Sprintf("/api/menus/%d/links", menuID), token, CreateLinkRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(http.MethodGet, "/m/"+link.Slug, "", nil)
	assert.Equal(t, http.StatusGone, w.Code)

	w = env.do(http.MethodPatch, fmt.Sprintf("/api/menus/%d/status", menuID), token, map[string]string{"status": "deleted"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploads(t *testing.T) {
	env := setupTest(t)
	_, token := env.login(t, "owner@example.com")
	restaurantID, _ := env.seedMenu(t, token, "olive-house")

	w := env.do(http.MethodPost, "/api/uploads/presigned-url", token, PresignRequest{
		Purpose: storage.PurposeMenu, RestaurantID: restaurantID, FileName: "Dinner Menu.pdf",
		MimeType: "application/pdf", FileSize: 1024,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var upload storage.PresignedUpload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &upload))
	assert.True(t, strings.HasPrefix(upload.Key, fmt.Sprintf("menus/%d/", restaurantID)), upload.Key)
	assert.True(t, strings.HasSuffix(upload.Key, ".pdf"))

	// Logo 不能是 PDF，菜单不能超过 10MB
	w = env.do(http.MethodPost, "/api/uploads/presigned-url", token, PresignRequest{
		Purpose: storage.PurposeLogo, RestaurantID: restaurantID, FileName: "logo.pdf",
		MimeType: "application/pdf", FileSize: 1024,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(http.MethodPost, "/api/uploads/presigned-url", token, PresignRequest{
		Purpose: storage.PurposeMenu, RestaurantID: restaurantID, FileName: "big.pdf",
		MimeType: "application/pdf", FileSize: 11 * 1024 * 1024,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/uploads/complete", token, CompleteUploadRequest{
		Key: upload.Key, Purpose: storage.PurposeMenu, RestaurantID: restaurantID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "https://cdn.example.com/"+upload.Key)

	w = env.do(http.MethodPost, "/api/uploads/complete", token, CompleteUploadRequest{
		Key: "menus/999/x.pdf", Purpose: storage.PurposeMenu, RestaurantID: restaurantID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGoogleCallback(t *testing.T) {
	env := setupTest(t)
	logger := testutil.NewLogger(t)

	// 模拟 Google 的令牌与用户资料接口
	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/token":
			_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer","expires_in":3600}`))
		case "/userinfo":
			if r.Header.Get("Authorization") != "Bearer at-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"sub":"g-123","email":"chef@example.com","email_verified":true,"name":"Chef","picture":"https://img.example.com/chef.png"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer google.Close()

	oauthConfig := &oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/auth/google/callback",
		Endpoint:     oauth2.Endpoint{AuthURL: google.URL + "/auth", TokenURL: google.URL + "/token"},
	}
	h := NewAuthHandler(env.users, env.tokens, oauthConfig, config.OAuth{}, config.Auth{}, logger)
	h.userInfoURL = google.URL + "/userinfo"

	router := gin.New()
	router.GET("/auth/google/login", h.GoogleLogin)
	router.GET("/auth/google/callback", h.GoogleCallback)

	// 登录跳转带 state cookie
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/google/login", nil))
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	require.NotEmpty(t, state)

	// state 不匹配
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=c1&state=wrong", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: state})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 正常回调
	req = httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=c1&state="+state, nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: state})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "chef@example.com", resp.User.Email)
	assert.Contains(t, strings.Join(w.Header().Values("Set-Cookie"), "\n"), middleware.AuthCookie+"="+resp.Token)

	// 令牌可以访问 /api/me
	w = env.do(http.MethodGet, "/api/me", resp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "chef@example.com")
}

func TestAdminPurgeVisits(t *testing.T) {
	env := setupTest(t)
	ownerID, token := env.login(t, "owner@example.com")
	_, menuID := env.seedMenu(t, token, "olive-house")

	w := env.do(http.MethodPost, fmt.Sprintf("/api/menus/%d/links", menuID), token, CreateLinkRequest{Name: "Door"})
	require.Equal(t, http.StatusCreated, w.Code)
	var link LinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &link))

	old := time.Now().UTC().Add(-48 * time.Hour)
	fresh := time.Now().UTC()
	for _, ts := range []time.Time{old, old, fresh} {
		require.NoError(t, env.db.Create(&model.Visit{
			LinkID: link.ID, Timestamp: ts, Day: ts.Format("2006-01-02"), IPHash: "h", CreatedAt: ts,
		}).Error)
	}

	// 普通用户无权调用
	w = env.do(http.MethodPost, "/api/admin/visits/purge", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := env.tokens.GenerateToken(ownerID, "owner@example.com", "admin")
	require.NoError(t, err)
	w = env.do(http.MethodPost, "/api/admin/visits/purge", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body["deleted"])

	var remaining int64
	require.NoError(t, env.db.Model(&model.Visit{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)
}

// TestPlanQuota 免费套餐的额度限制，升级后放开
func TestPlanQuota(t *testing.T) {
	env := setupTest(t)
	userID, token := env.login(t, "owner@example.com")
	restaurantID, menuID := env.seedMenu(t, token, "olive-house")

	w := env.do(http.MethodGet, "/api/plans", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var plans []model.Plan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plans))
	require.Len(t, plans, 3)
	assert.Equal(t, model.PlanFree, plans[0].Slug)

	// 免费套餐只能有 1 个餐厅
	w = env.do(http.MethodPost, "/api/restaurants", token, CreateRestaurantRequest{NameEn: "B", NameAr: "ب", Slug: "second-house"})
	assert.Equal(t, http.StatusPaymentRequired, w.Code, w.Body.String())

	// 3 个菜单
	for i := 0; i < 2; i++ {
		w = env.do(http.MethodPost, fmt.Sprintf("/api/restaurants/%d/menus", restaurantID), token, CreateMenuRequest{
			Name: fmt.Sprintf("Menu %d", i), PDFKey: "menus/x.pdf",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w = env.do(http.MethodPost, fmt.Sprintf("/api/restaurants/%d/menus", restaurantID), token, CreateMenuRequest{Name: "Extra", PDFKey: "menus/x.pdf"})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	// 10 个启用中的链接，停用后释放额度，重新启用时再次校验
	var first LinkResponse
	for i := 0; i < 10; i++ {
		w = env.do(http.MethodPost, fmt.Sprintf("/api/menus/%d/links", menuID), token, CreateLinkRequest{})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		if i == 0 {
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
		}
	}
	w = env.do(http.MethodPost, fmt.Sprintf("/api/menus/%d/links", menuID), token, CreateLinkRequest{})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	require.Equal(t, http.StatusOK, env.do(http.MethodDelete, fmt.Sprintf("/api/links/%d", first.ID), token, nil).Code)
	w = env.do(http.MethodPost, fmt.Sprintf("/api/menus/%d/links", menuID), token, CreateLinkRequest{})
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.do(http.MethodPatch, fmt.Sprintf("/api/links/%d", first.ID), token, map[string]interface{}{"is_active": true})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	w = env.do(http.MethodGet, "/api/subscription", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var usage service.PlanUsage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &usage))
	assert.Equal(t, model.PlanFree, usage.Plan.Slug)
	assert.Nil(t, usage.Subscription)
	assert.Equal(t, service.Usage{Restaurants: 1, Menus: 3, Links: 10}, usage.Usage)

	// 只有管理员能开通套餐
	assign := AssignPlanRequest{UserID: userID, Plan: model.PlanPro, PeriodDays: 30}
	w = env.do(http.MethodPost, "/api/admin/subscriptions", token, assign)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := env.tokens.GenerateToken(userID, "owner@example.com", "admin")
	require.NoError(t, err)
	w = env.do(http.MethodPost, "/api/admin/subscriptions", adminToken, AssignPlanRequest{UserID: userID, Plan: "platinum", PeriodDays: 30})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.do(http.MethodPost, "/api/admin/subscriptions", adminToken, assign)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(http.MethodPost, "/api/restaurants", token, CreateRestaurantRequest{NameEn: "B", NameAr: "ب", Slug: "second-house"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = env.do(http.MethodPatch, fmt.Sprintf("/api/links/%d", first.ID), token, map[string]interface{}{"is_active": true})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodGet, "/api/subscription", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &usage))
	assert.Equal(t, model.PlanPro, usage.Plan.Slug)
	require.NotNil(t, usage.Subscription)
	assert.Equal(t, model.SubscriptionActive, usage.Subscription.Status)
}

func TestHealthCheck(t *testing.T) {
	env := setupTest(t)
	w := env.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
