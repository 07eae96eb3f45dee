package rating

import (
	"time"

	catalogRepo "tillpoint/database/repository/catalog"
	sessionRepo "tillpoint/database/repository/session"
	staffRepo "tillpoint/database/repository/staff"
	"tillpoint/models"
)

// In-memory fakes for the repository interfaces. The rating-increment fakes
// implement the same incremental-mean contract as the Mongo pipeline updates.

type fakeSessionRepo struct {
	sessions map[string]*models.Session
}

var _ sessionRepo.SessionRepository = (*fakeSessionRepo)(nil)

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (f *fakeSessionRepo) Create(sess *models.Session) error {
	cp := *sess
	f.sessions[sess.ID] = &cp
	return nil
}

func (f *fakeSessionRepo) GetByID(id string) (*models.Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return nil, sessionRepo.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (f *fakeSessionRepo) ListByStaff(staffID string) ([]models.Session, error) {
	var out []models.Session
	for _, s := range f.sessions {
		if s.StaffID == staffID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListRated() ([]models.Session, error) {
	var out []models.Session
	for _, s := range f.sessions {
		if s.Rated {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListRatedByStaff(staffID string) ([]models.Session, error) {
	var out []models.Session
	for _, s := range f.sessions {
		if s.Rated && s.StaffID == staffID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ClaimRating(id string, payload models.RatingPayload) error {
	sess, ok := f.sessions[id]
	if !ok {
		return sessionRepo.ErrNotFound
	}
	if sess.Rated {
		return sessionRepo.ErrAlreadyRated
	}
	sess.Rated = true
	sess.Ratings = &payload
	return nil
}

func (f *fakeSessionRepo) MarkVerified(id string, at time.Time) error {
	sess, ok := f.sessions[id]
	if !ok {
		return sessionRepo.ErrNotFound
	}
	sess.Verified = true
	sess.VerifiedAt = &at
	return nil
}

type fakeStaffRepo struct {
	staff map[string]*models.Staff
}

var _ staffRepo.StaffRepository = (*fakeStaffRepo)(nil)

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: make(map[string]*models.Staff)}
}

func (f *fakeStaffRepo) Create(st *models.Staff) error {
	cp := *st
	f.staff[st.ID] = &cp
	return nil
}

func (f *fakeStaffRepo) GetByID(id string) (*models.Staff, error) {
	st, ok := f.staff[id]
	if !ok {
		return nil, staffRepo.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (f *fakeStaffRepo) GetByEmail(email string) (*models.Staff, error) {
	for _, st := range f.staff {
		if st.Email == email {
			cp := *st
			return &cp, nil
		}
	}
	return nil, staffRepo.ErrNotFound
}

func (f *fakeStaffRepo) GetAll() ([]models.Staff, error) {
	var out []models.Staff
	for _, st := range f.staff {
		out = append(out, *st)
	}
	return out, nil
}

func (f *fakeStaffRepo) Update(id string, fields map[string]any) error {
	if _, ok := f.staff[id]; !ok {
		return staffRepo.ErrNotFound
	}
	return nil
}

func (f *fakeStaffRepo) Delete(id string) error {
	if _, ok := f.staff[id]; !ok {
		return staffRepo.ErrNotFound
	}
	delete(f.staff, id)
	return nil
}

func (f *fakeStaffRepo) ApplyRating(id string, rating float64) error {
	st, ok := f.staff[id]
	if !ok {
		return staffRepo.ErrNotFound
	}
	newCount := st.ReviewCount + 1
	st.Rating = (st.Rating*float64(st.ReviewCount) + rating) / float64(newCount)
	st.ReviewCount = newCount
	return nil
}

type fakeCatalogRepo struct {
	businesses map[string]*models.Business
	services   map[string]*models.Service
	items      map[string]*models.Item
}

var _ catalogRepo.CatalogRepository = (*fakeCatalogRepo)(nil)

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		businesses: make(map[string]*models.Business),
		services:   make(map[string]*models.Service),
		items:      make(map[string]*models.Item),
	}
}

func (f *fakeCatalogRepo) CreateBusiness(b *models.Business) error {
	cp := *b
	f.businesses[b.ID] = &cp
	return nil
}

func (f *fakeCatalogRepo) GetBusinessByID(id string) (*models.Business, error) {
	b, ok := f.businesses[id]
	if !ok {
		return nil, catalogRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeCatalogRepo) GetBusinessByAdmin(adminID string) (*models.Business, error) {
	for _, b := range f.businesses {
		if b.AdminID == adminID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, catalogRepo.ErrNotFound
}

func (f *fakeCatalogRepo) GetAllBusinesses() ([]models.Business, error) {
	var out []models.Business
	for _, b := range f.businesses {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeCatalogRepo) UpdateBusiness(id string, fields map[string]any) error {
	if _, ok := f.businesses[id]; !ok {
		return catalogRepo.ErrNotFound
	}
	return nil
}

func (f *fakeCatalogRepo) DeleteBusiness(id string) error {
	delete(f.businesses, id)
	return nil
}

func (f *fakeCatalogRepo) CreateService(s *models.Service) error {
	cp := *s
	f.services[s.ID] = &cp
	return nil
}

func (f *fakeCatalogRepo) ListServices(businessID string) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if s.BusinessID == businessID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) UpdateService(businessID, serviceID string, fields map[string]any) error {
	if _, ok := f.services[serviceID]; !ok {
		return catalogRepo.ErrNotFound
	}
	return nil
}

func (f *fakeCatalogRepo) DeleteService(businessID, serviceID string) error {
	delete(f.services, serviceID)
	return nil
}

func (f *fakeCatalogRepo) CreateItem(it *models.Item) error {
	cp := *it
	f.items[it.ID] = &cp
	return nil
}

func (f *fakeCatalogRepo) ListItems(businessID, serviceID, category string) ([]models.Item, error) {
	var out []models.Item
	for _, it := range f.items {
		if it.BusinessID != businessID || it.ServiceID != serviceID {
			continue
		}
		if category != "" && it.Category != category {
			continue
		}
		out = append(out, *it)
	}
	return out, nil
}

func (f *fakeCatalogRepo) UpdateItem(businessID, serviceID, itemID string, fields map[string]any) error {
	if _, ok := f.items[itemID]; !ok {
		return catalogRepo.ErrNotFound
	}
	return nil
}

func (f *fakeCatalogRepo) DeleteItem(businessID, serviceID, itemID string) error {
	delete(f.items, itemID)
	return nil
}

func (f *fakeCatalogRepo) ApplyItemRating(businessID, serviceID, itemID string, rating float64) error {
	it, ok := f.items[itemID]
	if !ok || it.BusinessID != businessID || it.ServiceID != serviceID {
		return catalogRepo.ErrNotFound
	}
	newCount := it.ReviewCount + 1
	it.Rating = (it.Rating*float64(it.ReviewCount) + rating) / float64(newCount)
	it.ReviewCount = newCount
	return nil
}

func (f *fakeCatalogRepo) SetServiceAggregate(businessID, serviceID string, ratingVal float64, reviewCount int) error {
	s, ok := f.services[serviceID]
	if !ok || s.BusinessID != businessID {
		return catalogRepo.ErrNotFound
	}
	s.Rating = ratingVal
	s.ReviewCount = reviewCount
	return nil
}

func (f *fakeCatalogRepo) SetBusinessAggregate(businessID string, ratingVal float64, reviewCount int) error {
	b, ok := f.businesses[businessID]
	if !ok {
		return catalogRepo.ErrNotFound
	}
	b.Rating = ratingVal
	b.ReviewCount = reviewCount
	return nil
}
