package service

import (
	"context"
	"encoding/hex"
	"errors"
	"net"
	"scanmenu-platform/internal/apperr"
	"scanmenu-platform/internal/metrics"
	"scanmenu-platform/internal/model"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// 访问记录各字段的最大长度，超长截断
const (
	maxUserAgentLen = 500
	maxReferrerLen  = 500
	maxSourceLen    = 50
	maxTableLen     = 20
	maxCityLen      = 100

	// DayLayout Visit.Day 的格式
	DayLayout = "2006-01-02"
)

// VisitInput 一次访问的请求信息
type VisitInput struct {
	IP        string
	UserAgent string
	Referrer  string
	Source    string // 请求中的 utm_source，优先于链接默认值
	Table     string
	Country   string
	City      string
}

// VisitRecorder 记录链接访问。记录失败不影响跳转
type VisitRecorder struct {
	links   LinkFinder
	visits  VisitStore
	ipKey   [32]byte
	timeout time.Duration
	now     func() time.Time
	logger  *zap.SugaredLogger
}

// NewVisitRecorder 创建访问记录器，ipSalt 为部署级别的哈希盐
func NewVisitRecorder(links LinkFinder, visits VisitStore, ipSalt string, timeout time.Duration, logger *zap.SugaredLogger) *VisitRecorder {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &VisitRecorder{
		links:   links,
		visits:  visits,
		ipKey:   blake2b.Sum256([]byte(ipSalt)),
		timeout: timeout,
		now:     time.Now,
		logger:  logger,
	}
}

// HashIP 计算带盐的 IP 哈希，同一部署内同一 IP 结果稳定
func (r *VisitRecorder) HashIP(ip string) string {
	ip = strings.TrimSpace(ip)
	if parsed := net.ParseIP(ip); parsed != nil {
		ip = parsed.String()
	}

	h, err := blake2b.New256(r.ipKey[:])
	if err != nil {
		// 32 字节的 key 不会出错
		panic(err)
	}
	h.Write([]byte(ip))
	return hex.EncodeToString(h.Sum(nil))
}

// RecordVisit 为链接追加一条访问记录。
// 链接已停用时不记录；存储失败只记日志，永远不向调用方返回错误。
// 返回写入成功的记录，未写入时返回 nil。
func (r *VisitRecorder) RecordVisit(ctx context.Context, linkID uint, in VisitInput) *model.Visit {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	link, err := r.links.FindByID(ctx, linkID)
	if err != nil {
		result := "failed"
		if errors.Is(err, apperr.ErrNotFound) {
			result = "link_missing"
		}
		metrics.VisitsRecorded.WithLabelValues(result).Inc()
		r.logger.Warnw("记录访问时查询链接失败", "link_id", linkID, "error", err)
		return nil
	}
	if !link.IsActive {
		metrics.VisitsRecorded.WithLabelValues("skipped_inactive").Inc()
		r.logger.Debugw("链接已停用，不记录访问", "link_id", linkID)
		return nil
	}

	visit := r.buildVisit(link, in)
	if err := r.visits.Create(ctx, visit); err != nil {
		metrics.VisitsRecorded.WithLabelValues("failed").Inc()
		r.logger.Warnw("访问记录写入失败", "link_id", linkID, "error", err)
		return nil
	}

	metrics.VisitsRecorded.WithLabelValues("recorded").Inc()
	return visit
}

func (r *VisitRecorder) buildVisit(link *model.MenuLink, in VisitInput) *model.Visit {
	now := r.now().UTC()

	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = link.Tracking.Source
	}
	table := strings.TrimSpace(in.Table)
	if table == "" {
		table = link.Tracking.Table
	}
	city := strings.TrimSpace(in.City)
	if city == "" {
		city = link.Tracking.Location
	}

	return &model.Visit{
		LinkID:    link.ID,
		Timestamp: now,
		Day:       now.Format(DayLayout),
		IPHash:    r.HashIP(in.IP),
		UserAgent: truncate(in.UserAgent, maxUserAgentLen),
		Referrer:  truncate(in.Referrer, maxReferrerLen),
		Source:    truncate(source, maxSourceLen),
		Table:     truncate(table, maxTableLen),
		Country:   normalizeCountry(in.Country),
		City:      truncate(city, maxCityLen),
		CreatedAt: now,
	}
}

// normalizeCountry 只接受两位字母的国家代码
func normalizeCountry(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 2 {
		return ""
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return ""
		}
	}
	return s
}

// truncate 按字符截断并去掉控制字符
func truncate(s string, max int) string {
	s = strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s))

	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
