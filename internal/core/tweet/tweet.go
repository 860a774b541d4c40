package tweet

import (
	"time"

	"github.com/gofrs/uuid"
)

// Type classifies a tweet by its relation to a parent.
type Type int

const (
	TypeTweet Type = iota
	TypeRetweet
	TypeComment
	TypeQuoteTweet
)

// Audience is the visibility scope of a tweet.
type Audience int

const (
	AudienceEveryone Audience = iota
	AudienceTwitterCircle
)

// MediaType distinguishes attached media.
type MediaType int

const (
	MediaImage MediaType = iota
	MediaVideo
)

// Tweet is a root tweet, retweet, comment or quote tweet. ParentID is null
// exactly when Type is TypeTweet.
type Tweet struct {
	ID         uuid.UUID  `gorm:"primary_key;type:char(36)"`
	UserID     uuid.UUID  `gorm:"type:char(36);not null;index"`
	Type       Type       `gorm:"not null"`
	Audience   Audience   `gorm:"not null;default:0"`
	Content    string     `gorm:"type:text"`
	ParentID   *uuid.UUID `gorm:"type:char(36);index"`
	GuestViews uint64     `gorm:"not null;default:0"`
	UserViews  uint64     `gorm:"not null;default:0"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`

	Hashtags []Hashtag `gorm:"many2many:tweet_hashtags"`
	Medias   []Media   `gorm:"foreignKey:TweetID"`
}

// Hashtag is upserted lazily by name when a tweet first references it.
type Hashtag struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	Name      string    `gorm:"unique;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Mention links a tweet to a mentioned user.
type Mention struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	TweetID   uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_tweet_mention"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_tweet_mention"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Mention) TableName() string { return "tweet_mentions" }

// Media is one attachment, ordered by Position within its tweet.
type Media struct {
	ID       uuid.UUID `gorm:"primary_key;type:char(36)"`
	TweetID  uuid.UUID `gorm:"type:char(36);not null;index"`
	URL      string    `gorm:"not null"`
	Type     MediaType `gorm:"not null"`
	Position int       `gorm:"not null;default:0"`
}

func (Media) TableName() string { return "tweet_medias" }

// Like and Bookmark are unique (user, tweet) pairs with upsert semantics.
type Like struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_like_pair"`
	TweetID   uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_like_pair"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type Bookmark struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_bookmark_pair"`
	TweetID   uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_bookmark_pair"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
