package user

import (
	"time"

	"github.com/gofrs/uuid"
)

// VerifyStatus is the account verification state.
type VerifyStatus int

const (
	Unverified VerifyStatus = iota
	Verified
	Banned
)

type User struct {
	ID                  uuid.UUID    `gorm:"primary_key;type:char(36)"`
	Name                string       `gorm:"not null"`
	Email               string       `gorm:"unique;not null"`
	Username            string       `gorm:"unique;not null"`
	Password            string       `gorm:"not null"`
	DateOfBirth         *time.Time   `gorm:""`
	Verify              VerifyStatus `gorm:"not null;default:0"`
	Bio                 string       `gorm:"type:text"`
	Location            string       `gorm:""`
	Website             string       `gorm:""`
	Avatar              string       `gorm:""`
	CoverPhoto          string       `gorm:""`
	EmailVerifyToken    string       `gorm:"type:text"`
	ForgotPasswordToken string       `gorm:"type:text"`
	CreatedAt           time.Time    `gorm:"autoCreateTime"`
	UpdatedAt           time.Time    `gorm:"autoUpdateTime"`
}

// CircleMember grants MemberID access to UserID's circle-only tweets.
type CircleMember struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_circle_member"`
	MemberID  uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_circle_member"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
