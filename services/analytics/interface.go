package analytics

import (
	catalogRepo "tillpoint/database/repository/catalog"
	sessionRepo "tillpoint/database/repository/session"
	staffRepo "tillpoint/database/repository/staff"
	"tillpoint/models"
)

// AnalyticsService serves ranked views of the rating aggregates with the
// underlying session reviews attached. Ordering is rating descending, ties
// broken by review count descending. A limit of zero means no cap.
type AnalyticsService interface {
	TopStaff(limit int) ([]models.StaffAnalytics, error)
	TopBusinesses(limit int) ([]models.BusinessAnalytics, error)
	TopServices(businessID string, limit int) ([]models.ServiceAnalytics, error)
	TopItems(businessID, serviceID string, limit int) ([]models.ItemAnalytics, error)
}

// DefaultAnalyticsService is the production AnalyticsService.
type DefaultAnalyticsService struct {
	Sessions sessionRepo.SessionRepository
	Staff    staffRepo.StaffRepository
	Catalog  catalogRepo.CatalogRepository
}
