package domain

import "time"

// Follow is a directed edge: UserID follows FollowingID. Self-follow is
// rejected at the service layer; the unique index guards duplicates.
type Follow struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_follower_following"`
	FollowingID int64     `json:"following_id" gorm:"not null;index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	User      *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Following *User `json:"following,omitempty" gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
}

func (Follow) TableName() string { return "follows" }
