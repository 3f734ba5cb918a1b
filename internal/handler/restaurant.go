package handler

import (
	"net/http"
	"regexp"
	"scanmenu-platform/internal/apperr"
	"scanmenu-platform/internal/model"
	"scanmenu-platform/internal/repository"
	"scanmenu-platform/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var restaurantSlugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// RestaurantHandler 餐厅与菜单管理
type RestaurantHandler struct {
	restaurants *repository.RestaurantRepository
	menus       *repository.MenuRepository
	owner       *Ownership
	quota       Quota
	logger      *zap.SugaredLogger
}

func NewRestaurantHandler(restaurants *repository.RestaurantRepository, menus *repository.MenuRepository, owner *Ownership, quota Quota, logger *zap.SugaredLogger) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants, menus: menus, owner: owner, quota: quota, logger: logger}
}

// CreateRestaurantRequest 创建餐厅请求
type CreateRestaurantRequest struct {
	NameEn         string `json:"name_en" binding:"required,max=100" example:"Olive House"`
	NameAr         string `json:"name_ar" binding:"required,max=100" example:"بيت الزيتون"`
	Slug           string `json:"slug" binding:"required,max=100" example:"olive-house"`
	DescriptionEn  string `json:"description_en" binding:"max=500"`
	DescriptionAr  string `json:"description_ar" binding:"max=500"`
	LogoKey        string `json:"logo_key" binding:"max=512"`
	PrimaryColor   string `json:"primary_color" example:"#1A2B3C"`
	SecondaryColor string `json:"secondary_color" example:"#FFFFFF"`
}

// CreateMenuRequest 创建菜单请求
type CreateMenuRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Dinner"`
	Description string `json:"description" binding:"max=500"`
	PDFKey      string `json:"pdf_key" binding:"required,max=512" example:"menus/1/1700000000000_ab12cd34_dinner.pdf"`
	Status      string `json:"status" binding:"omitempty,oneof=draft published archived" example:"draft"`
}

// UpdateMenuStatusRequest 修改菜单状态请求
type UpdateMenuStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft published archived" example:"published"`
}

// CreateRestaurant godoc
// @Summary 创建餐厅
// @Tags Restaurant
// @Security ApiKeyAuth
// @Accept  json
// @Produce  json
// @Param   restaurant  body  CreateRestaurantRequest  true  "餐厅信息"
// @Success 201 {object} model.Restaurant
// @Failure 400 {object} map[string]string "请求无效或 slug 已存在"
// @Failure 402 {object} map[string]string "超出套餐额度"
// @Router /api/restaurants [post]
func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	req.Slug = strings.ToLower(strings.TrimSpace(req.Slug))
	if !restaurantSlugPattern.MatchString(req.Slug) {
		respondError(c, apperr.Validation("slug 只能包含小写字母、数字和连字符"))
		return
	}
	for _, color := range []string{req.PrimaryColor, req.SecondaryColor} {
		if color != "" && !service.IsHexColor(color) {
			respondError(c, apperr.Validation("颜色必须是 #RRGGBB 格式"))
			return
		}
	}

	if err := h.quota.Check(c.Request.Context(), userID, service.ResourceRestaurants); err != nil {
		respondError(c, err)
		return
	}

	restaurant := &model.Restaurant{
		OwnerID:        userID,
		NameEn:         strings.TrimSpace(req.NameEn),
		NameAr:         strings.TrimSpace(req.NameAr),
		Slug:           req.Slug,
		DescriptionEn:  strings.TrimSpace(req.DescriptionEn),
		DescriptionAr:  strings.TrimSpace(req.DescriptionAr),
		LogoKey:        req.LogoKey,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		IsActive:       true,
	}
	if err := h.restaurants.Create(c.Request.Context(), restaurant); err != nil {
		if repository.IsDuplicate(err) {
			respondError(c, apperr.Validation("餐厅 slug 已存在"))
			return
		}
		respondError(c, err)
		return
	}

	h.logger.Infow("餐厅创建成功", "restaurant_id", restaurant.ID, "owner_id", userID)
	c.JSON(http.StatusCreated, restaurant)
}

// ListRestaurants godoc
// @Summary 我的餐厅列表
// @Tags Restaurant
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {array} model.Restaurant
// @Router /api/restaurants [get]
func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	restaurants, err := h.restaurants.FindRestaurantsByOwner(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

// CreateMenu godoc
// @Summary 创建菜单
// @Tags Menu
// @Security ApiKeyAuth
// @Accept  json
// @Produce  json
// @Param   id    path  int                true  "餐厅 ID"
// @Param   menu  body  CreateMenuRequest  true  "菜单信息"
// @Success 201 {object} model.Menu
// @Failure 402 {object} map[string]string "超出套餐额度"
// @Failure 403 {object} map[string]string "无权访问"
// @Router /api/restaurants/{id}/menus [post]
func (h *RestaurantHandler) CreateMenu(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	restaurantID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if _, err := h.owner.Restaurant(c.Request.Context(), userID, restaurantID); err != nil {
		respondError(c, err)
		return
	}
	if err := h.quota.Check(c.Request.Context(), userID, service.ResourceMenus); err != nil {
		respondError(c, err)
		return
	}

	status := req.Status
	if status == "" {
		status = model.MenuStatusDraft
	}
	menu := &model.Menu{
		RestaurantID: restaurantID,
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		PDFKey:       req.PDFKey,
		Status:       status,
		IsActive:     true,
	}
	if err := h.menus.Create(c.Request.Context(), menu); err != nil {
		respondError(c, err)
		return
	}

	h.logger.Infow("菜单创建成功", "menu_id", menu.ID, "restaurant_id", restaurantID)
	c.JSON(http.StatusCreated, menu)
}

// ListMenus godoc
// @Summary 餐厅的菜单列表
// @Tags Menu
// @Security ApiKeyAuth
// @Produce  json
// @Param   id  path  int  true  "餐厅 ID"
// @Success 200 {array} model.Menu
// @Router /api/restaurants/{id}/menus [get]
func (h *RestaurantHandler) ListMenus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	restaurantID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := h.owner.Restaurant(c.Request.Context(), userID, restaurantID); err != nil {
		respondError(c, err)
		return
	}

	menus, err := h.menus.FindMenusByRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menus)
}

// UpdateMenuStatus godoc
// @Summary 修改菜单状态
// @Tags Menu
// @Security ApiKeyAuth
// @Accept  json
// @Produce  json
// @Param   id      path  int                      true  "菜单 ID"
// @Param   status  body  UpdateMenuStatusRequest  true  "新状态"
// @Success 200 {object} map[string]string
// @Router /api/menus/{id}/status [patch]
func (h *RestaurantHandler) UpdateMenuStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	menuID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateMenuStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	menu, err := h.owner.Menu(c.Request.Context(), userID, menuID)
	if err != nil {
		respondError(c, err)
		return
	}
	// 取消归档的菜单重新占用额度
	if menu.Status == model.MenuStatusArchived && req.Status != model.MenuStatusArchived {
		if err := h.quota.Check(c.Request.Context(), userID, service.ResourceMenus); err != nil {
			respondError(c, err)
			return
		}
	}
	if err := h.menus.UpdateStatus(c.Request.Context(), menuID, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "状态更新成功", "status": req.Status})
}
