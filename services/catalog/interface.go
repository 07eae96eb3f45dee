package catalog

import (
	catalogRepo "tillpoint/database/repository/catalog"
	"tillpoint/models"
	"tillpoint/services/storage"
)

// BusinessInput carries the caller-editable business fields.
type BusinessInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ServiceInput carries the caller-editable service fields.
type ServiceInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ItemInput carries the caller-editable item fields.
type ItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

// CatalogService manages the Business -> Service -> Item hierarchy. Mutations
// are scoped to the admin owning the business; reads are open to any caller.
// Rating and review-count fields are never writable through this service.
type CatalogService interface {
	CreateBusiness(adminID string, input BusinessInput) (*models.Business, error)
	GetBusiness(businessID string) (*models.Business, error)
	GetMyBusiness(adminID string) (*models.Business, error)
	ListBusinesses() ([]models.Business, error)
	UpdateBusiness(adminID, businessID string, input BusinessInput) (*models.Business, error)
	DeleteBusiness(adminID, businessID string) error

	CreateService(adminID, businessID string, input ServiceInput) (*models.Service, error)
	ListServices(businessID string) ([]models.Service, error)
	UpdateService(adminID, businessID, serviceID string, input ServiceInput) error
	DeleteService(adminID, businessID, serviceID string) error

	CreateItem(adminID, businessID, serviceID string, input ItemInput) (*models.Item, error)
	ListItems(businessID, serviceID, category string) ([]models.Item, error)
	UpdateItem(adminID, businessID, serviceID, itemID string, input ItemInput) error
	DeleteItem(adminID, businessID, serviceID, itemID string) error
	// UploadItemImage stores the image and records its URL on the item.
	UploadItemImage(adminID, businessID, serviceID, itemID string, file any) (string, error)
}

// DefaultCatalogService is the production CatalogService.
type DefaultCatalogService struct {
	Catalog catalogRepo.CatalogRepository
	Storage storage.StorageService
}
