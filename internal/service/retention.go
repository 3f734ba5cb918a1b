package service

import (
	"context"
	"errors"
	"scanmenu-platform/internal/metrics"
	"time"

	"github.com/bsm/redislock"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	purgeLockKey = "menulink:visit-purge"
	purgeLockTTL = 10 * time.Minute
)

// RetentionPurger 定期删除超过保留期的访问记录
type RetentionPurger struct {
	visits    VisitPurger
	locker    *redislock.Client // 多实例部署时保证只有一个实例在清理，可为 nil
	retention time.Duration
	batch     int
	schedule  string
	now       func() time.Time
	logger    *zap.SugaredLogger

	cron *cron.Cron
}

// NewRetentionPurger 创建清理任务
func NewRetentionPurger(visits VisitPurger, locker *redislock.Client, retention time.Duration, batch int, schedule string, logger *zap.SugaredLogger) *RetentionPurger {
	if schedule == "" {
		schedule = "@every 1h"
	}
	return &RetentionPurger{
		visits:    visits,
		locker:    locker,
		retention: retention,
		batch:     batch,
		schedule:  schedule,
		now:       time.Now,
		logger:    logger,
	}
}

// Purge 删除创建时间早于 now-retention 的访问记录，返回删除条数
func (p *RetentionPurger) Purge(ctx context.Context) (int64, error) {
	cutoff := p.now().UTC().Add(-p.retention)

	deleted, err := p.visits.DeleteCreatedBefore(ctx, cutoff, p.batch)
	if deleted > 0 {
		metrics.VisitsPurged.Add(float64(deleted))
	}
	if err != nil {
		return deleted, err
	}

	p.logger.Infow("过期访问记录清理完成", "cutoff", cutoff.Format(time.RFC3339), "deleted", deleted)
	return deleted, nil
}

// Start 按计划启动清理任务
func (p *RetentionPurger) Start() error {
	p.cron = cron.New()
	if _, err := p.cron.AddFunc(p.schedule, p.run); err != nil {
		return err
	}
	p.cron.Start()
	p.logger.Infow("访问记录清理任务已启动", "schedule", p.schedule, "retention", p.retention.String())
	return nil
}

// Stop 停止调度并等待正在执行的清理结束
func (p *RetentionPurger) Stop() {
	if p.cron == nil {
		return
	}
	<-p.cron.Stop().Done()
	p.logger.Info("访问记录清理任务已停止")
}

func (p *RetentionPurger) run() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeLockTTL)
	defer cancel()

	if p.locker != nil {
		lock, err := p.locker.Obtain(ctx, purgeLockKey, purgeLockTTL, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			p.logger.Debug("其他实例正在清理访问记录，跳过本次")
			return
		}
		if err != nil {
			p.logger.Warnw("获取清理锁失败", "error", err)
			return
		}
		defer func() {
			if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				p.logger.Warnw("释放清理锁失败", "error", err)
			}
		}()
	}

	if _, err := p.Purge(ctx); err != nil {
		p.logger.Errorw("过期访问记录清理失败", "error", err)
	}
}
