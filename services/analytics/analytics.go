package analytics

import (
	"fmt"
	"sort"

	"tillpoint/models"
)

// reviewIndex groups the review payloads of all rated sessions by the
// entities they touch, so one session scan serves every ranking.
type reviewIndex struct {
	byStaff    map[string][]models.Review
	byBusiness map[string][]models.Review
	byService  map[string][]models.Review
	byItem     map[string][]models.Review
}

func serviceKey(businessID, serviceID string) string {
	return businessID + "/" + serviceID
}

func (s *DefaultAnalyticsService) buildReviewIndex() (*reviewIndex, error) {
	rated, err := s.Sessions.ListRated()
	if err != nil {
		return nil, fmt.Errorf("failed to list rated sessions: %w", err)
	}

	idx := &reviewIndex{
		byStaff:    make(map[string][]models.Review),
		byBusiness: make(map[string][]models.Review),
		byService:  make(map[string][]models.Review),
		byItem:     make(map[string][]models.Review),
	}
	for _, sess := range rated {
		if sess.Ratings == nil {
			continue
		}
		if sess.Ratings.Staff != nil || sess.Ratings.Comment != "" {
			idx.byStaff[sess.StaffID] = append(idx.byStaff[sess.StaffID], models.Review{
				Comment: sess.Ratings.Comment,
				Rating:  sess.Ratings.Staff,
			})
		}
		for _, ir := range sess.Ratings.ItemRatings {
			rating := ir.Rating
			review := models.Review{Comment: sess.Ratings.Comment, Rating: &rating}
			idx.byBusiness[ir.BusinessID] = append(idx.byBusiness[ir.BusinessID], review)
			key := serviceKey(ir.BusinessID, ir.ServiceID)
			idx.byService[key] = append(idx.byService[key], review)
			idx.byItem[ir.ItemID] = append(idx.byItem[ir.ItemID], review)
		}
	}
	return idx, nil
}

func (s *DefaultAnalyticsService) TopStaff(limit int) ([]models.StaffAnalytics, error) {
	all, err := s.Staff.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	idx, err := s.buildReviewIndex()
	if err != nil {
		return nil, err
	}

	out := make([]models.StaffAnalytics, 0, len(all))
	for _, st := range all {
		out = append(out, models.StaffAnalytics{
			StaffID:     st.ID,
			Name:        st.Name,
			Rating:      st.Rating,
			ReviewCount: st.ReviewCount,
			Reviews:     idx.byStaff[st.ID],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ReviewCount > out[j].ReviewCount
	})
	return capSlice(out, limit), nil
}

func (s *DefaultAnalyticsService) TopBusinesses(limit int) ([]models.BusinessAnalytics, error) {
	businesses, err := s.Catalog.GetAllBusinesses()
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	idx, err := s.buildReviewIndex()
	if err != nil {
		return nil, err
	}

	out := make([]models.BusinessAnalytics, 0, len(businesses))
	for _, b := range businesses {
		out = append(out, models.BusinessAnalytics{
			BusinessID:  b.ID,
			Name:        b.Name,
			Rating:      b.Rating,
			ReviewCount: b.ReviewCount,
			Reviews:     idx.byBusiness[b.ID],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ReviewCount > out[j].ReviewCount
	})
	return capSlice(out, limit), nil
}

func (s *DefaultAnalyticsService) TopServices(businessID string, limit int) ([]models.ServiceAnalytics, error) {
	services, err := s.Catalog.ListServices(businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	idx, err := s.buildReviewIndex()
	if err != nil {
		return nil, err
	}

	out := make([]models.ServiceAnalytics, 0, len(services))
	for _, sv := range services {
		out = append(out, models.ServiceAnalytics{
			ServiceID:   sv.ID,
			BusinessID:  sv.BusinessID,
			Name:        sv.Name,
			Rating:      sv.Rating,
			ReviewCount: sv.ReviewCount,
			Reviews:     idx.byService[serviceKey(sv.BusinessID, sv.ID)],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ReviewCount > out[j].ReviewCount
	})
	return capSlice(out, limit), nil
}

func (s *DefaultAnalyticsService) TopItems(businessID, serviceID string, limit int) ([]models.ItemAnalytics, error) {
	items, err := s.Catalog.ListItems(businessID, serviceID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	idx, err := s.buildReviewIndex()
	if err != nil {
		return nil, err
	}

	out := make([]models.ItemAnalytics, 0, len(items))
	for _, it := range items {
		out = append(out, models.ItemAnalytics{
			ItemID:      it.ID,
			ServiceID:   it.ServiceID,
			BusinessID:  it.BusinessID,
			Name:        it.Name,
			Rating:      it.Rating,
			ReviewCount: it.ReviewCount,
			Reviews:     idx.byItem[it.ID],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ReviewCount > out[j].ReviewCount
	})
	return capSlice(out, limit), nil
}

func capSlice[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
