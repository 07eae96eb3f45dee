package models

import "time"

// Subscription plan types.
const (
	PlanMonthly  = "monthly"
	PlanSixMonth = "6month"
	PlanYearly   = "yearly"
)

// Subscription statuses.
const (
	SubStatusActive           = "active"
	SubStatusExpiringSoon     = "expiring_soon"
	SubStatusExpired          = "expired"
	SubStatusPendingPayment   = "pending_payment"
	SubStatusPaymentSubmitted = "payment_submitted"
	SubStatusPaymentVerified  = "payment_verified"
	SubStatusPaymentRejected  = "payment_rejected"
)

// Subscription ties a business to a billing period. Receipts are uploaded by
// the admin and reviewed manually by a superadmin; there is no card flow.
type Subscription struct {
	ID              string     `bson:"id" json:"id"`
	BusinessID      string     `bson:"businessId" json:"businessId"`
	AdminID         string     `bson:"adminId" json:"adminId"`
	PlanType        string     `bson:"planType" json:"planType"`
	StartDate       time.Time  `bson:"startDate" json:"startDate"`
	EndDate         time.Time  `bson:"endDate" json:"endDate"`
	Status          string     `bson:"status" json:"status"`
	ReceiptImageURL string     `bson:"receiptImageUrl,omitempty" json:"receiptImageUrl,omitempty"`
	PaymentDate     *time.Time `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updatedAt" json:"updatedAt"`
}
