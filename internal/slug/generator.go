package slug

import (
	"crypto/rand"
	"regexp"
)

const (
	// Alphabet URL 安全字符集，长度为 64，便于按位掩码均匀取值
	Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_-"
	// Length 生成的短码长度
	Length = 8
)

var customPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{4,32}$`)

// Func 短码生成函数，便于在测试中注入
type Func func() string

// Generate 生成一个 8 位随机短码
func Generate() string {
	buf := make([]byte, Length)
	// crypto/rand.Read 在 Go 1.24 之后不会返回错误
	_, _ = rand.Read(buf)

	out := make([]byte, Length)
	for i, b := range buf {
		out[i] = Alphabet[b&63]
	}
	return string(out)
}

// IsValid 检查自定义短码格式
func IsValid(s string) bool {
	return customPattern.MatchString(s)
}
