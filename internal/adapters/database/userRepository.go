package database

import (
	"context"
	"errors"

	userEntity "chirp/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// UserRepositoryDatabase implements the user port on gorm.
type UserRepositoryDatabase struct {
	db *gorm.DB
}

func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *userEntity.User) (*userEntity.User, error) {
	if err := repo.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id string) (*userEntity.User, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *UserRepositoryDatabase) FindByEmail(ctx context.Context, email string) (*userEntity.User, error) {
	return repo.findOne(ctx, "email = ?", email)
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*userEntity.User, error) {
	return repo.findOne(ctx, "username = ?", username)
}

func (repo *UserRepositoryDatabase) findOne(ctx context.Context, query string, arg any) (*userEntity.User, error) {
	var u userEntity.User
	err := repo.db.WithContext(ctx).Where(query, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update applies the field map and returns the fresh row, nil if absent.
func (repo *UserRepositoryDatabase) Update(ctx context.Context, id string, fields map[string]any) (*userEntity.User, error) {
	res := repo.db.WithContext(ctx).Model(&userEntity.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return repo.FindByID(ctx, id)
}

func (repo *UserRepositoryDatabase) IsCircleMember(ctx context.Context, ownerID, memberID string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&userEntity.CircleMember{}).
		Where("user_id = ? AND member_id = ?", ownerID, memberID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *UserRepositoryDatabase) AddCircleMember(ctx context.Context, ownerID, memberID string) error {
	exists, err := repo.IsCircleMember(ctx, ownerID, memberID)
	if err != nil || exists {
		return err
	}
	cm := &userEntity.CircleMember{
		ID:       uuid.Must(uuid.NewV4()),
		UserID:   uuid.FromStringOrNil(ownerID),
		MemberID: uuid.FromStringOrNil(memberID),
	}
	return repo.db.WithContext(ctx).Create(cm).Error
}
