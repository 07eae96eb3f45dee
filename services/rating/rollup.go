package rating

import "fmt"

// aggregate is the (rating, reviewCount) pair of one child entity.
type aggregate struct {
	rating      float64
	reviewCount int
}

// weightedMean returns the count-weighted mean over children with at least
// one review, and the total review count. Children that were never rated
// are excluded so they don't dilute the average. Returns (0, 0) when no
// child qualifies.
func weightedMean(children []aggregate) (float64, int) {
	var sum float64
	var count int
	for _, c := range children {
		if c.reviewCount <= 0 {
			continue
		}
		sum += c.rating * float64(c.reviewCount)
		count += c.reviewCount
	}
	if count == 0 {
		return 0, 0
	}
	return sum / float64(count), count
}

// rollupService recomputes a service's aggregate from all of its items.
func (s *DefaultRatingService) rollupService(businessID, serviceID string) error {
	items, err := s.Catalog.ListItems(businessID, serviceID, "")
	if err != nil {
		return fmt.Errorf("failed to list items for service %s: %w", serviceID, err)
	}

	aggs := make([]aggregate, 0, len(items))
	for _, it := range items {
		aggs = append(aggs, aggregate{rating: it.Rating, reviewCount: it.ReviewCount})
	}
	avg, count := weightedMean(aggs)

	if err := s.Catalog.SetServiceAggregate(businessID, serviceID, avg, count); err != nil {
		return fmt.Errorf("failed to write service aggregate %s: %w", serviceID, err)
	}
	return nil
}

// rollupBusiness recomputes a business's aggregate from all of its services.
func (s *DefaultRatingService) rollupBusiness(businessID string) error {
	services, err := s.Catalog.ListServices(businessID)
	if err != nil {
		return fmt.Errorf("failed to list services for business %s: %w", businessID, err)
	}

	aggs := make([]aggregate, 0, len(services))
	for _, sv := range services {
		aggs = append(aggs, aggregate{rating: sv.Rating, reviewCount: sv.ReviewCount})
	}
	avg, count := weightedMean(aggs)

	if err := s.Catalog.SetBusinessAggregate(businessID, avg, count); err != nil {
		return fmt.Errorf("failed to write business aggregate %s: %w", businessID, err)
	}
	return nil
}
