package database

import (
	"context"

	followerEntity "chirp/internal/core/follower"

	"gorm.io/gorm"
)

// FollowerRepositoryDatabase implements the follower port on gorm.
type FollowerRepositoryDatabase struct {
	db *gorm.DB
}

func NewFollowerRepositoryDatabase(db *gorm.DB) *FollowerRepositoryDatabase {
	return &FollowerRepositoryDatabase{db: db}
}

func (repo *FollowerRepositoryDatabase) Follow(ctx context.Context, edge *followerEntity.Follower) (*followerEntity.Follower, error) {
	if err := repo.db.WithContext(ctx).Create(edge).Error; err != nil {
		return nil, err
	}
	return edge, nil
}

func (repo *FollowerRepositoryDatabase) Unfollow(ctx context.Context, userID, followedUserID string) error {
	return repo.db.WithContext(ctx).
		Where("user_id = ? AND followed_user_id = ?", userID, followedUserID).
		Delete(&followerEntity.Follower{}).Error
}

func (repo *FollowerRepositoryDatabase) Exists(ctx context.Context, userID, followedUserID string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&followerEntity.Follower{}).
		Where("user_id = ? AND followed_user_id = ?", userID, followedUserID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *FollowerRepositoryDatabase) FolloweeIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := repo.db.WithContext(ctx).Model(&followerEntity.Follower{}).
		Where("user_id = ?", userID).
		Pluck("followed_user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
