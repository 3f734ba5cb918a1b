package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"scanmenu-platform/internal/apperr"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

	validate     *validator.Validate
	validateOnce sync.Once
)

// linkValidator 懒加载的校验器，字段名使用 json 标签便于展示
func linkValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		_ = validate.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
			return hexColorPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// IsHexColor 是否为 #RRGGBB 格式
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// validateStruct 校验结构体，返回第一条可读的 ValidationError
func validateStruct(v interface{}) error {
	err := linkValidator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperr.Validation("参数校验失败")
	}

	fe := fieldErrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "hexcolor6":
		return apperr.Validation(fmt.Sprintf("%s 必须是 #RRGGBB 格式的颜色", field))
	case "oneof":
		return apperr.Validation(fmt.Sprintf("%s 只能是 %s 之一", field, fe.Param()))
	case "max":
		return apperr.Validation(fmt.Sprintf("%s 长度不能超过 %s", field, fe.Param()))
	case "required":
		return apperr.Validation(fmt.Sprintf("%s 不能为空", field))
	default:
		return apperr.Validation(fmt.Sprintf("%s 格式不正确", field))
	}
}
