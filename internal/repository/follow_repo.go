package repository

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

type FollowRepository interface {
	Add(ctx context.Context, userID, followingID int64) error
	Remove(ctx context.Context, userID, followingID int64) error
	Exists(ctx context.Context, userID, followingID int64) (bool, error)
	ListFollowing(ctx context.Context, userID int64) ([]domain.User, error)
	ListFollowingIDs(ctx context.Context, userID int64) ([]int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Add(ctx context.Context, userID, followingID int64) error {
	err := r.db.WithContext(ctx).Create(&domain.Follow{UserID: userID, FollowingID: followingID}).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *followRepository) Remove(ctx context.Context, userID, followingID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND following_id = ?", userID, followingID).
		Delete(&domain.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, userID, followingID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("user_id = ? AND following_id = ?", userID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) ListFollowing(ctx context.Context, userID int64) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("follows.id DESC").
		Find(&users).Error
	return users, err
}

func (r *followRepository) ListFollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("user_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}
