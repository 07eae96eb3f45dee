package subscriptionRepo

import (
	"errors"

	"tillpoint/models"
)

// ErrNotFound indicates the subscription does not exist.
var ErrNotFound = errors.New("subscription not found")

// SubscriptionRepository defines methods for subscription data access.
type SubscriptionRepository interface {
	// Create inserts a new subscription record.
	Create(sub *models.Subscription) error
	// GetByID retrieves a subscription by ID.
	GetByID(id string) (*models.Subscription, error)
	// GetByAdmin retrieves the newest subscription owned by an admin.
	GetByAdmin(adminID string) (*models.Subscription, error)
	// GetAll retrieves all subscriptions.
	GetAll() ([]models.Subscription, error)
	// ListByStatus retrieves subscriptions in any of the given statuses.
	ListByStatus(statuses ...string) ([]models.Subscription, error)
	// Update applies a partial field update.
	Update(id string, fields map[string]any) error
	// Delete removes a subscription record by ID.
	Delete(id string) error
}
