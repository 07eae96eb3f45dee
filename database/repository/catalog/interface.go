package catalogRepo

import (
	"errors"

	"tillpoint/models"
)

// ErrNotFound indicates the addressed catalog entity does not exist.
var ErrNotFound = errors.New("catalog entity not found")

// CatalogRepository defines data access across the Business -> Service -> Item
// hierarchy. The rating engine is the only writer of the aggregate fields.
type CatalogRepository interface {
	// Businesses.
	CreateBusiness(b *models.Business) error
	GetBusinessByID(id string) (*models.Business, error)
	GetBusinessByAdmin(adminID string) (*models.Business, error)
	GetAllBusinesses() ([]models.Business, error)
	UpdateBusiness(id string, fields map[string]any) error
	DeleteBusiness(id string) error

	// Services.
	CreateService(s *models.Service) error
	ListServices(businessID string) ([]models.Service, error)
	UpdateService(businessID, serviceID string, fields map[string]any) error
	DeleteService(businessID, serviceID string) error

	// Items. ListItems filters by category when category is non-empty.
	CreateItem(it *models.Item) error
	ListItems(businessID, serviceID, category string) ([]models.Item, error)
	UpdateItem(businessID, serviceID, itemID string, fields map[string]any) error
	DeleteItem(businessID, serviceID, itemID string) error

	// Aggregate writes used by the rating engine.
	// ApplyItemRating folds one rating into the item's running average with a
	// single atomic document update. Returns ErrNotFound if the item is gone.
	ApplyItemRating(businessID, serviceID, itemID string, rating float64) error
	// SetServiceAggregate overwrites a service's rolled-up rating/reviewCount.
	SetServiceAggregate(businessID, serviceID string, rating float64, reviewCount int) error
	// SetBusinessAggregate overwrites a business's rolled-up rating/reviewCount.
	SetBusinessAggregate(businessID string, rating float64, reviewCount int) error
}
