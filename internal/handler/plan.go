package handler

import (
	"net/http"
	"scanmenu-platform/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlanHandler 套餐与订阅
type PlanHandler struct {
	plans  *service.Plans
	logger *zap.SugaredLogger
}

func NewPlanHandler(plans *service.Plans, logger *zap.SugaredLogger) *PlanHandler {
	return &PlanHandler{plans: plans, logger: logger}
}

// AssignPlanRequest 管理员为用户开通套餐
type AssignPlanRequest struct {
	UserID               uint   `json:"user_id" binding:"required" example:"1"`
	Plan                 string `json:"plan" binding:"required,max=50" example:"pro"`
	PeriodDays           int    `json:"period_days" binding:"required,min=1,max=3660" example:"30"`
	StripeSubscriptionID string `json:"stripe_subscription_id" binding:"max=255"`
	StripeCustomerID     string `json:"stripe_customer_id" binding:"max=255"`
}

// ListPlans godoc
// @Summary 可订阅的套餐
// @Tags Plan
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {array} model.Plan
// @Router /api/plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.plans.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// CurrentSubscription godoc
// @Summary 当前套餐与用量
// @Tags Plan
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {object} service.PlanUsage
// @Router /api/subscription [get]
func (h *PlanHandler) CurrentSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	usage, err := h.plans.Usage(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usage)
}

// AssignPlan godoc
// @Summary 为用户开通套餐
// @Description 取消用户现有的有效订阅并开通新套餐
// @Tags Admin
// @Security ApiKeyAuth
// @Accept  json
// @Produce  json
// @Param   subscription  body  AssignPlanRequest  true  "订阅信息"
// @Success 201 {object} model.Subscription
// @Failure 400 {object} map[string]string "请求无效"
// @Failure 403 {object} map[string]string "需要管理员权限"
// @Failure 404 {object} map[string]string "套餐不存在"
// @Router /api/admin/subscriptions [post]
func (h *PlanHandler) AssignPlan(c *gin.Context) {
	var req AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sub, err := h.plans.Subscribe(c.Request.Context(), service.SubscribeInput{
		UserID:               req.UserID,
		PlanSlug:             req.Plan,
		PeriodEnd:            time.Now().UTC().AddDate(0, 0, req.PeriodDays),
		StripeSubscriptionID: req.StripeSubscriptionID,
		StripeCustomerID:     req.StripeCustomerID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}
