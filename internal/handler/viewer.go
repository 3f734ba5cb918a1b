package handler

import (
	"context"
	"net/http"
	"net/url"
	"scanmenu-platform/internal/apperr"
	"scanmenu-platform/internal/model"
	"scanmenu-platform/internal/repository"
	"scanmenu-platform/internal/service"
	"scanmenu-platform/pkg/storage"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// 常见 CDN 注入的地理位置请求头
var (
	countryHeaders = []string{"CF-IPCountry", "X-Vercel-IP-Country", "CloudFront-Viewer-Country"}
	cityHeaders    = []string{"X-Vercel-IP-City", "CloudFront-Viewer-City"}
)

// ViewerHandler 处理顾客扫码访问
type ViewerHandler struct {
	registry *service.LinkRegistry
	recorder *service.VisitRecorder
	menus    *repository.MenuRepository
	storage  storage.Options

	wg sync.WaitGroup
}

func NewViewerHandler(registry *service.LinkRegistry, recorder *service.VisitRecorder, menus *repository.MenuRepository, storageOpts storage.Options) *ViewerHandler {
	return &ViewerHandler{registry: registry, recorder: recorder, menus: menus, storage: storageOpts}
}

// ViewMenu godoc
// @Summary 扫码打开菜单
// @Description 解析短码，异步记录访问并跳转到菜单 PDF
// @Tags Viewer
// @Param   slug        path   string  true   "短码"
// @Param   utm_source  query  string  false  "来源，覆盖链接默认值"
// @Param   table       query  string  false  "桌号，覆盖链接默认值"
// @Success 302 "跳转到菜单 PDF"
// @Failure 404 {object} map[string]string "链接不存在"
// @Failure 410 {object} map[string]string "链接已停用"
// @Router /m/{slug} [get]
func (h *ViewerHandler) ViewMenu(c *gin.Context) {
	ctx := c.Request.Context()

	link, err := h.registry.ResolveLink(ctx, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	menu, err := h.menus.FindByID(ctx, link.MenuID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !menu.IsActive || menu.Status == model.MenuStatusArchived {
		respondError(c, apperr.Inactive("菜单已下线"))
		return
	}

	input := service.VisitInput{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
		Source:    c.Query("utm_source"),
		Table:     c.Query("table"),
		Country:   firstHeader(c, countryHeaders),
		City:      firstHeader(c, cityHeaders),
	}

	// 记录访问不阻塞跳转，请求结束后继续执行
	h.wg.Add(1)
	go func(ctx context.Context, linkID uint) {
		defer h.wg.Done()
		h.recorder.RecordVisit(ctx, linkID, input)
	}(context.WithoutCancel(ctx), link.ID)

	c.Redirect(http.StatusFound, menuURL(h.storage, menu.PDFKey))
}

// Wait 等待所有进行中的访问记录写完
func (h *ViewerHandler) Wait() {
	h.wg.Wait()
}

// menuURL 菜单 PDF 的访问地址；历史数据中可能直接存了完整 URL
func menuURL(opts storage.Options, key string) string {
	if strings.HasPrefix(key, "https://") || strings.HasPrefix(key, "http://") {
		return key
	}
	return storage.PublicURL(opts, key)
}

func firstHeader(c *gin.Context, names []string) string {
	for _, name := range names {
		v := strings.TrimSpace(c.GetHeader(name))
		if v == "" {
			continue
		}
		if decoded, err := url.QueryUnescape(v); err == nil {
			v = decoded
		}
		// Cloudflare 用 XX 表示未知
		if v == "XX" {
			continue
		}
		return v
	}
	return ""
}
