package apperr

import (
	"errors"
	"net/http"
)

// 错误类别，调用方通过 errors.Is 判断
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrInactiveLink     = errors.New("link inactive")
	ErrSlugExhausted    = errors.New("slug exhausted")
	ErrTransientStorage = errors.New("transient storage error")
	ErrForbidden        = errors.New("forbidden")
	ErrQuotaExceeded    = errors.New("quota exceeded")
)

// Error 带类别和底层原因的业务错误
type Error struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is 让 errors.Is(err, apperr.ErrXxx) 能匹配到类别
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

// Validation 输入不合法，不重试
func Validation(msg string) *Error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

// NotFound 记录不存在
func NotFound(msg string) *Error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

// Inactive 链接存在但已停用
func Inactive(msg string) *Error {
	return &Error{Kind: ErrInactiveLink, Msg: msg}
}

// SlugExhausted 短码重试次数耗尽
func SlugExhausted(msg string, cause error) *Error {
	return &Error{Kind: ErrSlugExhausted, Msg: msg, Cause: cause}
}

// Storage 存储层临时故障
func Storage(msg string, cause error) *Error {
	return &Error{Kind: ErrTransientStorage, Msg: msg, Cause: cause}
}

// Forbidden 无权操作该资源
func Forbidden(msg string) *Error {
	return &Error{Kind: ErrForbidden, Msg: msg}
}

// QuotaExceeded 超出当前套餐的额度
func QuotaExceeded(msg string) *Error {
	return &Error{Kind: ErrQuotaExceeded, Msg: msg}
}

// HTTPStatus 把错误类别映射为 HTTP 状态码
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInactiveLink):
		return http.StatusGone
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrQuotaExceeded):
		return http.StatusPaymentRequired
	case errors.Is(err, ErrTransientStorage):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Message 返回可以展示给用户的错误信息
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case ErrTransientStorage:
			return "存储服务暂时不可用，请稍后重试"
		case ErrSlugExhausted:
			return "生成链接失败，请稍后重试"
		}
		return e.Msg
	}
	return "服务器内部错误"
}
