package models

import "time"

// Staff is a business employee who runs POS sessions. The ID doubles as the
// Firebase Auth UID. PINHash is a bcrypt hash; the clear PIN is only returned
// once from create/regenerate responses.
type Staff struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	PINHash     string    `bson:"pinHash" json:"-"`
	AvatarURL   string    `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Role        string    `bson:"role" json:"role"`
	Rating      float64   `bson:"rating" json:"rating"`
	ReviewCount int       `bson:"reviewCount" json:"reviewCount"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// StaffPerformance is the staff-facing view of their own aggregates,
// with the reviews from their rated sessions attached.
type StaffPerformance struct {
	StaffID      string   `json:"staffId"`
	Name         string   `json:"name"`
	Rating       float64  `json:"rating"`
	TotalReviews int      `json:"totalReviews"`
	Reviews      []Review `json:"reviews"`
}

// LeaderboardEntry ranks staff by rating, ties broken by review count.
type LeaderboardEntry struct {
	StaffID     string  `json:"staffId"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
}
