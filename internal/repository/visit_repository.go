package repository

import (
	"context"
	"scanmenu-platform/internal/apperr"
	"scanmenu-platform/internal/model"
	"time"

	"gorm.io/gorm"
)

// 统计维度对应的列名
const (
	DimSource  = "source"
	DimTable   = "table_no"
	DimCountry = "country"
	DimDay     = "day"
)

// VisitFilter 访问记录查询条件，LinkID 与 MenuID 至少设置一个
type VisitFilter struct {
	LinkID uint
	MenuID uint
	From   time.Time // 包含
	To     time.Time // 不包含
}

func (f VisitFilter) scope(tx *gorm.DB) *gorm.DB {
	q := tx.Model(&model.Visit{})
	if f.LinkID != 0 {
		q = q.Where("link_id = ?", f.LinkID)
	}
	if f.MenuID != 0 {
		q = q.Where("link_id IN (?)", tx.Model(&model.MenuLink{}).Select("id").Where("menu_id = ?", f.MenuID))
	}
	if !f.From.IsZero() {
		q = q.Where("visited_at >= ?", f.From.UTC())
	}
	if !f.To.IsZero() {
		q = q.Where("visited_at < ?", f.To.UTC())
	}
	return q
}

// Aggregate 访问统计快照
type Aggregate struct {
	Total  int64
	Groups map[string]map[string]int64 // 维度 -> 取值 -> 次数
}

// VisitRepository 访问记录持久化
type VisitRepository struct {
	db *gorm.DB
}

// NewVisitRepository 创建访问记录仓储
func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

// Create 追加一条访问记录
func (r *VisitRepository) Create(ctx context.Context, visit *model.Visit) error {
	return translate(r.db.WithContext(ctx).Create(visit).Error, "访问记录")
}

// Aggregate 在同一个只读事务中统计总数与各维度分组，保证各维度之和等于总数
func (r *VisitRepository) Aggregate(ctx context.Context, filter VisitFilter, dims ...string) (*Aggregate, error) {
	result := &Aggregate{Groups: make(map[string]map[string]int64, len(dims))}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := filter.scope(tx).Count(&result.Total).Error; err != nil {
			return err
		}
		for _, dim := range dims {
			var rows []struct {
				Bucket string
				Total  int64
			}
			err := filter.scope(tx).
				Select(dim + " AS bucket, COUNT(*) AS total").
				Group(dim).
				Scan(&rows).Error
			if err != nil {
				return err
			}
			counts := make(map[string]int64, len(rows))
			for _, row := range rows {
				counts[row.Bucket] += row.Total
			}
			result.Groups[dim] = counts
		}
		return nil
	})
	if err != nil {
		return nil, translate(err, "访问记录")
	}
	return result, nil
}

// DeleteCreatedBefore 分批删除早于 cutoff 的访问记录，返回删除条数
func (r *VisitRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time, batch int) (int64, error) {
	if batch <= 0 {
		batch = 1000
	}

	var deleted int64
	for {
		if err := ctx.Err(); err != nil {
			return deleted, apperr.Storage("清理访问记录被中断", err)
		}

		var ids []uint
		err := r.db.WithContext(ctx).Model(&model.Visit{}).
			Where("created_at < ?", cutoff.UTC()).
			Order("id").
			Limit(batch).
			Pluck("id", &ids).Error
		if err != nil {
			return deleted, translate(err, "访问记录")
		}
		if len(ids) == 0 {
			return deleted, nil
		}

		res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Visit{})
		if res.Error != nil {
			return deleted, translate(res.Error, "访问记录")
		}
		deleted += res.RowsAffected

		if len(ids) < batch {
			return deleted, nil
		}
	}
}
