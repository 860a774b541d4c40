package database

import (
	"context"
	"errors"

	tokenEntity "chirp/internal/core/token"

	"gorm.io/gorm"
)

// RefreshTokenRepositoryDatabase implements the token port on gorm.
type RefreshTokenRepositoryDatabase struct {
	db *gorm.DB
}

func NewRefreshTokenRepositoryDatabase(db *gorm.DB) *RefreshTokenRepositoryDatabase {
	return &RefreshTokenRepositoryDatabase{db: db}
}

func (repo *RefreshTokenRepositoryDatabase) Create(ctx context.Context, rt *tokenEntity.RefreshToken) (*tokenEntity.RefreshToken, error) {
	if err := repo.db.WithContext(ctx).Create(rt).Error; err != nil {
		return nil, err
	}
	return rt, nil
}

func (repo *RefreshTokenRepositoryDatabase) FindByToken(ctx context.Context, token string) (*tokenEntity.RefreshToken, error) {
	var rt tokenEntity.RefreshToken
	err := repo.db.WithContext(ctx).Where("token = ?", token).First(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (repo *RefreshTokenRepositoryDatabase) DeleteByToken(ctx context.Context, token string) error {
	return repo.db.WithContext(ctx).Where("token = ?", token).Delete(&tokenEntity.RefreshToken{}).Error
}

// Rotate runs delete-old + insert-new in one transaction so a crash in
// between cannot drop the session.
func (repo *RefreshTokenRepositoryDatabase) Rotate(ctx context.Context, oldToken string, fresh *tokenEntity.RefreshToken) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("token = ?", oldToken).Delete(&tokenEntity.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Create(fresh).Error
	})
}
