package models

// Review is a single comment/rating pair extracted from a rated session.
type Review struct {
	Comment string   `json:"comment,omitempty"`
	Rating  *float64 `json:"rating,omitempty"`
}

// StaffAnalytics is one leaderboard row with its session reviews attached.
type StaffAnalytics struct {
	StaffID     string   `json:"staffId"`
	Name        string   `json:"name"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	Reviews     []Review `json:"reviews"`
}

// BusinessAnalytics aggregates a business with the reviews of its items.
type BusinessAnalytics struct {
	BusinessID  string   `json:"businessId"`
	Name        string   `json:"name"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	Reviews     []Review `json:"reviews"`
}

// ServiceAnalytics aggregates a service with the reviews of its items.
type ServiceAnalytics struct {
	ServiceID   string   `json:"serviceId"`
	BusinessID  string   `json:"businessId"`
	Name        string   `json:"name"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	Reviews     []Review `json:"reviews"`
}

// ItemAnalytics aggregates an item with its reviews.
type ItemAnalytics struct {
	ItemID      string   `json:"itemId"`
	ServiceID   string   `json:"serviceId"`
	BusinessID  string   `json:"businessId"`
	Name        string   `json:"name"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	Reviews     []Review `json:"reviews"`
}
