package models

import "time"

// Business is the top of the catalog hierarchy. Rating and ReviewCount are
// maintained exclusively by the rating engine; catalog CRUD never touches them.
type Business struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Description    string    `bson:"description,omitempty" json:"description,omitempty"`
	Rating         float64   `bson:"rating" json:"rating"`
	ReviewCount    int       `bson:"reviewCount" json:"reviewCount"`
	AdminID        string    `bson:"adminId,omitempty" json:"adminId,omitempty"`
	SubscriptionID string    `bson:"subscriptionId,omitempty" json:"subscriptionId,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// Service groups items under a business.
type Service struct {
	ID          string    `bson:"id" json:"id"`
	BusinessID  string    `bson:"businessId" json:"businessId"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Rating      float64   `bson:"rating" json:"rating"`
	ReviewCount int       `bson:"reviewCount" json:"reviewCount"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Item is the leaf of the catalog hierarchy and the unit customers rate.
type Item struct {
	ID          string    `bson:"id" json:"id"`
	BusinessID  string    `bson:"businessId" json:"businessId"`
	ServiceID   string    `bson:"serviceId" json:"serviceId"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64   `bson:"price" json:"price"`
	Category    string    `bson:"category" json:"category"`
	ImageURL    string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Rating      float64   `bson:"rating" json:"rating"`
	ReviewCount int       `bson:"reviewCount" json:"reviewCount"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
