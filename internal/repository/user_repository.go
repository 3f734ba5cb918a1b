package repository

import (
	"context"
	"errors"
	"scanmenu-platform/internal/model"
	"time"

	"gorm.io/gorm"
)

// UserRepository 用户持久化
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertOAuthUser 按 provider + providerID 查找用户，不存在则创建，并刷新资料与最后登录时间
func (r *UserRepository) UpsertOAuthUser(ctx context.Context, profile model.User) (*model.User, error) {
	now := time.Now().UTC()

	var user model.User
	err := r.db.WithContext(ctx).
		Where("provider = ? AND provider_id = ?", profile.Provider, profile.ProviderID).
		First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = profile
		user.IsActive = true
		if user.Role == "" {
			user.Role = "owner"
		}
		user.LastLogin = &now
		if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, translate(err, "用户")
		}
		return &user, nil
	case err != nil:
		return nil, translate(err, "用户")
	}

	err = r.db.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"email":      profile.Email,
		"name":       profile.Name,
		"image":      profile.Image,
		"last_login": now,
	}).Error
	if err != nil {
		return nil, translate(err, "用户")
	}
	user.Email, user.Name, user.Image, user.LastLogin = profile.Email, profile.Name, profile.Image, &now
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "用户")
	}
	return &user, nil
}
