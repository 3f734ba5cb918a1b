package handler

import (
	"context"
	"errors"
	"net/http"
	"scanmenu-platform/internal/apperr"
	"scanmenu-platform/internal/model"
	"scanmenu-platform/internal/repository"
	"scanmenu-platform/internal/service"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthCheck godoc
// @Summary 健康检查
// @Tags System
// @Produce  json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}

// respondError 按错误类别返回统一的 {"error": msg}
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		zap.S().Errorw("请求处理失败", "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": apperr.Message(err)})
}

// badRequest 请求参数绑定失败
func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据: " + err.Error()})
}

// parseID 解析路径中的数字 ID
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "无效的 " + name})
		return 0, false
	}
	return uint(id), true
}

// currentUserID 从上下文中取出认证中间件写入的用户 ID
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return 0, false
	}
	return id, true
}

// Ownership 校验当前用户是否拥有餐厅、菜单或链接
type Ownership struct {
	restaurants *repository.RestaurantRepository
	menus       *repository.MenuRepository
	links       *repository.LinkRepository
}

func NewOwnership(restaurants *repository.RestaurantRepository, menus *repository.MenuRepository, links *repository.LinkRepository) *Ownership {
	return &Ownership{restaurants: restaurants, menus: menus, links: links}
}

func (o *Ownership) Restaurant(ctx context.Context, userID, restaurantID uint) (*model.Restaurant, error) {
	restaurant, err := o.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant.OwnerID != userID {
		return nil, apperr.Forbidden("无权访问该餐厅")
	}
	return restaurant, nil
}

func (o *Ownership) Menu(ctx context.Context, userID, menuID uint) (*model.Menu, error) {
	menu, err := o.menus.FindByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if _, err := o.Restaurant(ctx, userID, menu.RestaurantID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Forbidden("无权访问该菜单")
		}
		return nil, err
	}
	return menu, nil
}

func (o *Ownership) Link(ctx context.Context, userID, linkID uint) (*model.MenuLink, error) {
	link, err := o.links.FindByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if _, err := o.Menu(ctx, userID, link.MenuID); err != nil {
		return nil, err
	}
	return link, nil
}

// Quota 创建资源前的套餐额度校验
type Quota interface {
	Check(ctx context.Context, userID uint, resource service.Resource) error
}
