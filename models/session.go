package models

import "time"

// SessionItem is a line item recorded when the session is created.
type SessionItem struct {
	ItemID     string  `bson:"itemId" json:"itemId" binding:"required"`
	BusinessID string  `bson:"businessId" json:"businessId" binding:"required"`
	ServiceID  string  `bson:"serviceId" json:"serviceId" binding:"required"`
	Name       string  `bson:"name" json:"name"`
	Price      float64 `bson:"price" json:"price"`
}

// ItemRating is one rated item inside a session's ratings payload.
type ItemRating struct {
	BusinessID string  `bson:"businessId" json:"businessId"`
	ServiceID  string  `bson:"serviceId" json:"serviceId"`
	ItemID     string  `bson:"itemId" json:"itemId"`
	Rating     float64 `bson:"rating" json:"rating"`
}

// RatingPayload is persisted verbatim on the session when it is rated.
type RatingPayload struct {
	Staff       *float64     `bson:"staff,omitempty" json:"staff,omitempty"`
	Comment     string       `bson:"comment,omitempty" json:"comment,omitempty"`
	ItemRatings []ItemRating `bson:"itemRatings,omitempty" json:"itemRatings,omitempty"`
}

// Session records one staff-customer interaction. Rated transitions
// false->true exactly once; Verified is an orthogonal admin-set flag.
type Session struct {
	ID          string         `bson:"id" json:"id"`
	StaffID     string         `bson:"staffId" json:"staffId"`
	Items       []SessionItem  `bson:"items" json:"items"`
	TotalAmount float64        `bson:"totalAmount" json:"totalAmount"`
	Rated       bool           `bson:"rated" json:"rated"`
	Ratings     *RatingPayload `bson:"ratings,omitempty" json:"ratings,omitempty"`
	Verified    bool           `bson:"verified" json:"verified"`
	VerifiedAt  *time.Time     `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
}

// RatingSubmission is the inbound contract for rating a session.
type RatingSubmission struct {
	StaffRating *float64     `json:"staffRating,omitempty"`
	Comment     string       `json:"comment,omitempty"`
	ItemRatings []ItemRating `json:"itemRatings,omitempty"`
}

// RatingResult echoes the accepted payload plus any item ratings that were
// skipped because the referenced item no longer exists.
type RatingResult struct {
	SessionID    string        `json:"sessionId"`
	Ratings      RatingPayload `json:"ratings"`
	SkippedItems []ItemRating  `json:"skippedItems,omitempty"`
}
