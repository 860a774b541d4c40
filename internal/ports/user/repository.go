package user

import (
	"context"
	"time"

	userEntity "chirp/internal/core/user"
)

// UserRepository is the outbound port for user accounts and circle
// membership.
type UserRepository interface {
	Create(ctx context.Context, u *userEntity.User) (*userEntity.User, error)
	FindByID(ctx context.Context, id string) (*userEntity.User, error)
	FindByEmail(ctx context.Context, email string) (*userEntity.User, error)
	FindByUsername(ctx context.Context, username string) (*userEntity.User, error)
	Update(ctx context.Context, id string, fields map[string]any) (*userEntity.User, error)
	IsCircleMember(ctx context.Context, ownerID, memberID string) (bool, error)
	AddCircleMember(ctx context.Context, ownerID, memberID string) error
}

// ProfileDTO is the caller's own profile (sensitive token fields omitted).
type ProfileDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Verify      int        `json:"verify"`
	Bio         string     `json:"bio,omitempty"`
	Location    string     `json:"location,omitempty"`
	Website     string     `json:"website,omitempty"`
	Avatar      string     `json:"avatar,omitempty"`
	CoverPhoto  string     `json:"cover_photo,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PublicUserDTO is what any visitor may see of a user.
type PublicUserDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	Bio        string `json:"bio,omitempty"`
	Location   string `json:"location,omitempty"`
	Website    string `json:"website,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	CoverPhoto string `json:"cover_photo,omitempty"`
}

// UpdateProfileDTO carries the patchable profile fields; nil means keep.
type UpdateProfileDTO struct {
	Name        *string    `json:"name"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Bio         *string    `json:"bio"`
	Location    *string    `json:"location"`
	Website     *string    `json:"website"`
	Username    *string    `json:"username"`
	Avatar      *string    `json:"avatar"`
	CoverPhoto  *string    `json:"cover_photo"`
}
