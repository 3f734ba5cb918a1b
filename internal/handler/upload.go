package handler

import (
	"context"
	"errors"
	"net/http"
	"scanmenu-platform/internal/apperr"
	"scanmenu-platform/pkg/storage"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Presigner 签发对象存储上传地址
type Presigner interface {
	PresignUpload(ctx context.Context, key, mimeType string) (*storage.PresignedUpload, error)
	PublicURL(key string) string
}

// UploadHandler 文件上传（客户端直传对象存储）
type UploadHandler struct {
	presigner Presigner
	owner     *Ownership
	logger    *zap.SugaredLogger
	now       func() time.Time
}

// NewUploadHandler presigner 为 nil 时上传接口返回 503
func NewUploadHandler(presigner Presigner, owner *Ownership, logger *zap.SugaredLogger) *UploadHandler {
	return &UploadHandler{presigner: presigner, owner: owner, logger: logger, now: time.Now}
}

// PresignRequest 申请上传地址
type PresignRequest struct {
	Purpose      string `json:"purpose" binding:"required,oneof=menu logo banner" example:"menu"`
	RestaurantID uint   `json:"restaurant_id" binding:"required" example:"1"`
	FileName     string `json:"file_name" binding:"required,max=255" example:"dinner.pdf"`
	MimeType     string `json:"mime_type" binding:"required" example:"application/pdf"`
	FileSize     int64  `json:"file_size" binding:"required,gt=0" example:"204800"`
}

// CompleteUploadRequest 上传完成确认
type CompleteUploadRequest struct {
	Key          string `json:"key" binding:"required,max=512" example:"menus/1/1700000000000_ab12cd34_dinner.pdf"`
	Purpose      string `json:"purpose" binding:"required,oneof=menu logo banner" example:"menu"`
	RestaurantID uint   `json:"restaurant_id" binding:"required" example:"1"`
}

// PresignUpload godoc
// @Summary 获取上传地址
// @Description 校验文件类型与大小后签发 1 小时有效的 PUT 地址
// @Tags Upload
// @Security ApiKeyAuth
// @Accept  json
// @Produce  json
// @Param   upload  body  PresignRequest  true  "文件信息"
// @Success 200 {object} storage.PresignedUpload
// @Failure 400 {object} map[string]string "文件不满足限制"
// @Failure 503 {object} map[string]string "对象存储未配置"
// @Router /api/uploads/presigned-url [post]
func (h *UploadHandler) PresignUpload(c *gin.Context) {
	if h.presigner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "对象存储未配置"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if _, err := storage.ValidateFile(req.MimeType, req.FileSize, req.Purpose); err != nil {
		respondError(c, fileError(err))
		return
	}
	if _, err := h.owner.Restaurant(c.Request.Context(), userID, req.RestaurantID); err != nil {
		respondError(c, err)
		return
	}

	key, err := storage.BuildKey(req.Purpose, req.RestaurantID, req.FileName, req.MimeType, h.now())
	if err != nil {
		respondError(c, fileError(err))
		return
	}

	upload, err := h.presigner.PresignUpload(c.Request.Context(), key, req.MimeType)
	if err != nil {
		h.logger.Errorw("签发上传地址失败", "key", key, "error", err)
		respondError(c, apperr.Storage("签发上传地址失败", err))
		return
	}
	c.JSON(http.StatusOK, upload)
}

// CompleteUpload godoc
// @Summary 上传完成
// @Description 确认 key 属于该餐厅并返回公开访问地址
// @Tags Upload
// @Security ApiKeyAuth
// @Accept  json
// @Produce  json
// @Param   upload  body  CompleteUploadRequest  true  "上传结果"
// @Success 200 {object} map[string]string
// @Router /api/uploads/complete [post]
func (h *UploadHandler) CompleteUpload(c *gin.Context) {
	if h.presigner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "对象存储未配置"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CompleteUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	prefix, err := storage.KeyPrefix(req.Purpose, req.RestaurantID)
	if err != nil {
		respondError(c, fileError(err))
		return
	}
	if !strings.HasPrefix(req.Key, prefix) || strings.Contains(req.Key, "..") {
		respondError(c, apperr.Validation("key 与餐厅或用途不匹配"))
		return
	}
	if _, err := h.owner.Restaurant(c.Request.Context(), userID, req.RestaurantID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": req.Key, "public_url": h.presigner.PublicURL(req.Key)})
}

func fileError(err error) error {
	if errors.Is(err, storage.ErrInvalidFile) {
		return apperr.Validation(strings.TrimPrefix(err.Error(), storage.ErrInvalidFile.Error()+": "))
	}
	return err
}
