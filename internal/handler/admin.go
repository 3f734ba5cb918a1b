package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VisitPurger 按保留期清理访问记录
type VisitPurger interface {
	Purge(ctx context.Context) (int64, error)
}

// AdminHandler 管理员操作
type AdminHandler struct {
	purger VisitPurger
	logger *zap.SugaredLogger
}

func NewAdminHandler(purger VisitPurger, logger *zap.SugaredLogger) *AdminHandler {
	return &AdminHandler{purger: purger, logger: logger}
}

// PurgeVisits godoc
// @Summary 立即清理过期访问记录
// @Description 不等待定时任务，立即删除超过保留期的访问记录
// @Tags Admin
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {object} map[string]int64 "删除条数"
// @Failure 403 {object} map[string]string "需要管理员权限"
// @Router /api/admin/visits/purge [post]
func (h *AdminHandler) PurgeVisits(c *gin.Context) {
	deleted, err := h.purger.Purge(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	userID, _ := c.Get("user_id")
	h.logger.Infow("管理员手动清理访问记录", "user_id", userID, "deleted", deleted)
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
