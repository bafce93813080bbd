package model

import "time"

// Follow is a directed edge in the social graph: follower -> followed.
// The pair is unique; self-loops are rejected in the service layer.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"not null;index;uniqueIndex:idx_follows_pair"`
	FollowedID uint      `json:"followed_id" gorm:"not null;index;uniqueIndex:idx_follows_pair"`
	CreatedAt  time.Time `json:"created_at"`
}
