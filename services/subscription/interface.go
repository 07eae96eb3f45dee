package subscription

import (
	catalogRepo "tillpoint/database/repository/catalog"
	subscriptionRepo "tillpoint/database/repository/subscription"
	"tillpoint/models"
	"tillpoint/services/storage"
)

// EditSubscriptionInput carries the superadmin-editable subscription fields.
type EditSubscriptionInput struct {
	PlanType string `json:"planType"`
	EndDate  string `json:"endDate"`
	Status   string `json:"status"`
}

// SubscriptionService manages the manual-payment billing lifecycle: admins
// subscribe and upload receipts, superadmins verify them, and a periodic
// sweep moves subscriptions through expiring_soon into expired.
type SubscriptionService interface {
	// Subscribe opens a pending subscription for the admin's business.
	Subscribe(adminID, planType string) (*models.Subscription, error)
	// GetForAdmin returns the admin's subscription with its status refreshed.
	GetForAdmin(adminID string) (*models.Subscription, error)
	// SubmitReceipt uploads a payment receipt and marks the payment submitted.
	SubmitReceipt(adminID string, file any) (*models.Subscription, error)
	// Unsubscribe deletes the admin's subscription.
	Unsubscribe(adminID string) error

	// Superadmin review surface.
	GetAll() ([]models.Subscription, error)
	GetPending() ([]models.Subscription, error)
	Approve(id string) (*models.Subscription, error)
	Reject(id string) (*models.Subscription, error)
	// ExpireSoon and ExpireNow force the date-tracked statuses directly.
	ExpireSoon(id string) (*models.Subscription, error)
	ExpireNow(id string) (*models.Subscription, error)
	Edit(id string, input EditSubscriptionInput) (*models.Subscription, error)

	// Sweep refreshes the status of every date-tracked subscription.
	Sweep() (int, error)
}

// DefaultSubscriptionService is the production SubscriptionService.
type DefaultSubscriptionService struct {
	Subs    subscriptionRepo.SubscriptionRepository
	Catalog catalogRepo.CatalogRepository
	Storage storage.StorageService
}
