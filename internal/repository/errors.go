package repository

import (
	"errors"
	"fmt"
	"scanmenu-platform/internal/apperr"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicateKey 唯一索引冲突（例如 menu_links.slug）
var ErrDuplicateKey = errors.New("duplicate key")

// IsDuplicate 判断是否为唯一约束冲突
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrDuplicateKey) {
		return true
	}
	// 未开启 TranslateError 时的兜底判断
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") || strings.Contains(msg, "duplicate entry")
}

// translate 把 gorm 错误转换为业务错误
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(entity + "不存在")
	case IsDuplicate(err):
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	default:
		return apperr.Storage(entity+"存储操作失败", err)
	}
}
