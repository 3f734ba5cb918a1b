package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"scanmenu-platform/internal/slug"
	"strings"
	"time"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

// 上传用途
const (
	PurposeMenu   = "menu"
	PurposeLogo   = "logo"
	PurposeBanner = "banner"
)

// 文件类型
const (
	FileTypePDF   = "PDF"
	FileTypeImage = "IMAGE"
)

var (
	allowedPDF   = map[string]bool{"application/pdf": true}
	allowedImage = map[string]bool{
		"image/jpeg":    true,
		"image/png":     true,
		"image/webp":    true,
		"image/svg+xml": true,
	}
	maxFileSize = map[string]int64{
		FileTypePDF:   10 * 1024 * 1024,
		FileTypeImage: 5 * 1024 * 1024,
	}
	keyPrefixes = map[string]string{
		PurposeMenu:   "menus/",
		PurposeLogo:   "logos/",
		PurposeBanner: "banners/",
	}
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
)

// ErrInvalidFile 文件不满足上传限制
var ErrInvalidFile = errors.New("invalid file")

// Options OSS 配置
type Options struct {
	Region          string
	Bucket          string
	Endpoint        string
	PublicBaseURL   string
	AccessKeyID     string
	AccessKeySecret string
	UploadExpiry    time.Duration
}

// PresignedUpload 预签名上传结果
type PresignedUpload struct {
	UploadURL     string            `json:"upload_url"`
	Method        string            `json:"method"`
	Key           string            `json:"key"`
	PublicURL     string            `json:"public_url"`
	ExpiresAt     time.Time         `json:"expires_at"`
	SignedHeaders map[string]string `json:"signed_headers,omitempty"`
}

// Client 对象存储客户端，只负责签发上传地址和拼接公开地址
type Client struct {
	opts   Options
	client *oss.Client
}

// NewClient 创建 OSS 客户端
func NewClient(opts Options) (*Client, error) {
	if opts.Bucket == "" || opts.Region == "" {
		return nil, errors.New("对象存储配置不完整")
	}
	if opts.UploadExpiry <= 0 {
		opts.UploadExpiry = time.Hour
	}

	provider := credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.AccessKeySecret)
	cfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(provider).
		WithRegion(opts.Region)
	if opts.Endpoint != "" {
		cfg = cfg.WithEndpoint(opts.Endpoint)
	}

	return &Client{opts: opts, client: oss.NewClient(cfg)}, nil
}

// PresignUpload 为指定 key 签发一个限时 PUT 地址
func (c *Client) PresignUpload(ctx context.Context, key, mimeType string) (*PresignedUpload, error) {
	result, err := c.client.Presign(ctx, &oss.PutObjectRequest{
		Bucket:      oss.Ptr(c.opts.Bucket),
		Key:         oss.Ptr(key),
		ContentType: oss.Ptr(mimeType),
	}, oss.PresignExpires(c.opts.UploadExpiry))
	if err != nil {
		return nil, fmt.Errorf("生成上传地址失败: %w", err)
	}

	return &PresignedUpload{
		UploadURL:     result.URL,
		Method:        result.Method,
		Key:           key,
		PublicURL:     c.PublicURL(key),
		ExpiresAt:     result.Expiration,
		SignedHeaders: result.SignedHeaders,
	}, nil
}

// PublicURL 返回对象的公开访问地址
func (c *Client) PublicURL(key string) string {
	return PublicURL(c.opts, key)
}

// PublicURL 根据配置拼接公开地址
func PublicURL(opts Options, key string) string {
	key = strings.TrimPrefix(key, "/")
	if opts.PublicBaseURL != "" {
		return strings.TrimSuffix(opts.PublicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.oss-%s.aliyuncs.com/%s", opts.Bucket, opts.Region, key)
}

// ValidateFile 校验 MIME 类型、大小以及与用途是否匹配，返回文件类型
func ValidateFile(mimeType string, size int64, purpose string) (string, error) {
	var fileType string
	switch {
	case allowedPDF[mimeType]:
		fileType = FileTypePDF
	case allowedImage[mimeType]:
		fileType = FileTypeImage
	default:
		return "", fmt.Errorf("%w: 不支持的文件类型 %s", ErrInvalidFile, mimeType)
	}

	if size <= 0 {
		return "", fmt.Errorf("%w: 文件大小无效", ErrInvalidFile)
	}
	if size > maxFileSize[fileType] {
		return "", fmt.Errorf("%w: %s 文件不能超过 %dMB", ErrInvalidFile, fileType, maxFileSize[fileType]/(1024*1024))
	}

	switch purpose {
	case PurposeMenu:
		if fileType != FileTypePDF {
			return "", fmt.Errorf("%w: 菜单只能上传 PDF", ErrInvalidFile)
		}
	case PurposeLogo, PurposeBanner:
		if fileType != FileTypeImage {
			return "", fmt.Errorf("%w: Logo 和横幅只能上传图片", ErrInvalidFile)
		}
	default:
		return "", fmt.Errorf("%w: 无效的上传用途 %s", ErrInvalidFile, purpose)
	}
	return fileType, nil
}

// KeyPrefix 某餐厅某用途下所有对象共用的 key 前缀
func KeyPrefix(purpose string, restaurantID uint) (string, error) {
	prefix, ok := keyPrefixes[purpose]
	if !ok {
		return "", fmt.Errorf("%w: 无效的上传用途 %s", ErrInvalidFile, purpose)
	}
	return fmt.Sprintf("%s%d/", prefix, restaurantID), nil
}

// BuildKey 生成对象 key：<前缀><餐厅ID>/<毫秒时间戳>_<随机串>_<文件名>.<扩展名>
func BuildKey(purpose string, restaurantID uint, fileName, mimeType string, now time.Time) (string, error) {
	prefix, err := KeyPrefix(purpose, restaurantID)
	if err != nil {
		return "", err
	}

	ext := "bin"
	if parts := strings.SplitN(mimeType, "/", 2); len(parts) == 2 && parts[1] != "" {
		ext = strings.SplitN(parts[1], "+", 2)[0]
	}

	name := strings.TrimSuffix(fileName, "."+ext)
	name = strings.ToLower(unsafeChars.ReplaceAllString(name, "_"))
	if name == "" {
		name = "file"
	}

	return fmt.Sprintf("%s%d_%s_%s.%s", prefix, now.UnixMilli(), slug.Generate(), name, ext), nil
}
