package follower

import (
	"time"

	"github.com/gofrs/uuid"
)

// Follower records that UserID follows FollowedUserID. Absence of a row
// means not following.
type Follower struct {
	ID             uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID         uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follow_edge"`
	FollowedUserID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follow_edge"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}
