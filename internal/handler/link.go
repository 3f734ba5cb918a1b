package handler

import (
	"net/http"
	"scanmenu-platform/internal/apperr"
	"scanmenu-platform/internal/model"
	"scanmenu-platform/internal/service"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// LinkHandler 菜单链接管理与统计
type LinkHandler struct {
	registry  *service.LinkRegistry
	analytics *service.Analytics
	owner     *Ownership
	quota     Quota
	baseURL   string
}

func NewLinkHandler(registry *service.LinkRegistry, analytics *service.Analytics, owner *Ownership, quota Quota, baseURL string) *LinkHandler {
	return &LinkHandler{
		registry:  registry,
		analytics: analytics,
		owner:     owner,
		quota:     quota,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
	}
}

// CreateLinkRequest 创建链接请求
type CreateLinkRequest struct {
	Name         string                 `json:"name" example:"Table 12"`
	StyleConfig  *service.StylePatch    `json:"style_config"`
	TrackingMeta *service.TrackingPatch `json:"tracking_meta"`
}

// UpdateLinkRequest 修改链接请求，未出现的字段保持不变；slug 传空字符串表示重新生成
type UpdateLinkRequest struct {
	Name         *string                `json:"name"`
	Slug         *string                `json:"slug" example:"terrace-12"`
	StyleConfig  *service.StylePatch    `json:"style_config"`
	TrackingMeta *service.TrackingPatch `json:"tracking_meta"`
	IsActive     *bool                  `json:"is_active"`
}

// LinkResponse 链接及其分享地址
type LinkResponse struct {
	model.MenuLink
	URL string `json:"url" example:"http://localhost:8080/m/Ab3_x9Zq"`
}

func (h *LinkHandler) toResponse(c *gin.Context, link *model.MenuLink) LinkResponse {
	base := h.baseURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	return LinkResponse{MenuLink: *link, URL: base + "/m/" + link.Slug}
}

// CreateLink godoc
// @Summary 创建菜单链接
// @Description 为菜单生成一个带唯一短码的分享链接
// @Tags Link
// @Security ApiKeyAuth
// @Accept  json
// @Produce  json
// @Param   id    path  int                true  "菜单 ID"
// @Param   link  body  CreateLinkRequest  true  "链接信息"
// @Success 201 {object} LinkResponse
// @Failure 400 {object} map[string]string "请求无效"
// @Failure 403 {object} map[string]string "无权访问"
// @Failure 402 {object} map[string]string "超出套餐额度"
// @Failure 404 {object} map[string]string "菜单不存在"
// @Failure 500 {object} map[string]string "短码生成失败"
// @Router /api/menus/{id}/links [post]
func (h *LinkHandler) CreateLink(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	menuID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if _, err := h.owner.Menu(c.Request.Context(), userID, menuID); err != nil {
		respondError(c, err)
		return
	}
	if err := h.quota.Check(c.Request.Context(), userID, service.ResourceLinks); err != nil {
		respondError(c, err)
		return
	}

	link, err := h.registry.CreateLink(c.Request.Context(), service.CreateLinkInput{
		MenuID:   menuID,
		Name:     req.Name,
		Style:    req.StyleConfig,
		Tracking: req.TrackingMeta,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.toResponse(c, link))
}

// ListLinks godoc
// @Summary 菜单的链接列表
// @Tags Link
// @Security ApiKeyAuth
// @Produce  json
// @Param   id  path  int  true  "菜单 ID"
// @Success 200 {array} LinkResponse
// @Router /api/menus/{id}/links [get]
func (h *LinkHandler) ListLinks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	menuID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := h.owner.Menu(c.Request.Context(), userID, menuID); err != nil {
		respondError(c, err)
		return
	}

	links, err := h.registry.ListByMenu(c.Request.Context(), menuID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]LinkResponse, 0, len(links))
	for i := range links {
		resp = append(resp, h.toResponse(c, &links[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateLink godoc
// @Summary 修改菜单链接
// @Tags Link
// @Security ApiKeyAuth
// @Accept  json
// @Produce  json
// @Param   id    path  int                true  "链接 ID"
// @Param   link  body  UpdateLinkRequest  true  "需要修改的字段"
// @Success 200 {object} LinkResponse
// @Failure 400 {object} map[string]string "请求无效或短码已被占用"
// @Failure 404 {object} map[string]string "链接不存在"
// @Router /api/links/{id} [patch]
func (h *LinkHandler) UpdateLink(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	linkID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	current, err := h.owner.Link(c.Request.Context(), userID, linkID)
	if err != nil {
		respondError(c, err)
		return
	}
	// 重新启用的链接同样占用额度
	if req.IsActive != nil && *req.IsActive && !current.IsActive {
		if err := h.quota.Check(c.Request.Context(), userID, service.ResourceLinks); err != nil {
			respondError(c, err)
			return
		}
	}

	link, err := h.registry.UpdateLink(c.Request.Context(), linkID, service.UpdateLinkInput{
		Name:     req.Name,
		Slug:     req.Slug,
		Style:    req.StyleConfig,
		Tracking: req.TrackingMeta,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(c, link))
}

// DeactivateLink godoc
// @Summary 停用菜单链接
// @Description 停用后短码返回 410，历史访问数据保留
// @Tags Link
// @Security ApiKeyAuth
// @Produce  json
// @Param   id  path  int  true  "链接 ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "链接不存在"
// @Router /api/links/{id} [delete]
func (h *LinkHandler) DeactivateLink(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	linkID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := h.owner.Link(c.Request.Context(), userID, linkID); err != nil {
		respondError(c, err)
		return
	}
	if err := h.registry.DeactivateLink(c.Request.Context(), linkID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "链接已停用"})
}

// LinkAnalytics godoc
// @Summary 链接访问统计
// @Tags Analytics
// @Security ApiKeyAuth
// @Produce  json
// @Param   id    path   int     true   "链接 ID"
// @Param   from  query  string  false  "开始时间（RFC3339 或 2006-01-02，包含）"
// @Param   to    query  string  false  "结束时间（RFC3339 或 2006-01-02，不包含）"
// @Success 200 {object} service.Summary
// @Router /api/links/{id}/analytics [get]
func (h *LinkHandler) LinkAnalytics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	linkID, ok := parseID(c, "id")
	if !ok {
		return
	}
	tr, err := parseTimeRange(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.owner.Link(c.Request.Context(), userID, linkID); err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.analytics.Summarize(c.Request.Context(), linkID, tr)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// MenuAnalytics godoc
// @Summary 菜单访问统计（汇总全部链接）
// @Tags Analytics
// @Security ApiKeyAuth
// @Produce  json
// @Param   id    path   int     true   "菜单 ID"
// @Param   from  query  string  false  "开始时间"
// @Param   to    query  string  false  "结束时间"
// @Success 200 {object} service.Summary
// @Router /api/menus/{id}/analytics [get]
func (h *LinkHandler) MenuAnalytics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	menuID, ok := parseID(c, "id")
	if !ok {
		return
	}
	tr, err := parseTimeRange(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.owner.Menu(c.Request.Context(), userID, menuID); err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.analytics.SummarizeMenu(c.Request.Context(), menuID, tr)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// parseTimeRange 解析 from/to 查询参数
func parseTimeRange(c *gin.Context) (service.TimeRange, error) {
	var tr service.TimeRange
	var err error
	if tr.From, err = parseTime(c.Query("from")); err != nil {
		return tr, apperr.Validation("from 格式不正确")
	}
	if tr.To, err = parseTime(c.Query("to")); err != nil {
		return tr, apperr.Validation("to 格式不正确")
	}
	return tr, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.ParseInLocation(service.DayLayout, s, time.UTC)
}
