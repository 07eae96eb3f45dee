package rating

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"tillpoint/models"
)

func newTestService(t *testing.T) (*DefaultRatingService, *fakeSessionRepo, *fakeStaffRepo, *fakeCatalogRepo) {
	t.Helper()
	sessions := newFakeSessionRepo()
	staff := newFakeStaffRepo()
	catalog := newFakeCatalogRepo()
	svc := &DefaultRatingService{Sessions: sessions, Staff: staff, Catalog: catalog}
	return svc, sessions, staff, catalog
}

// seedCatalog creates biz-1 with svc-1 holding item-a (rating 3.0, one
// review) and item-b (never rated).
func seedCatalog(catalog *fakeCatalogRepo) {
	catalog.CreateBusiness(&models.Business{ID: "biz-1", Name: "Corner Deli"})
	catalog.CreateService(&models.Service{ID: "svc-1", BusinessID: "biz-1", Name: "Lunch"})
	catalog.CreateItem(&models.Item{
		ID: "item-a", BusinessID: "biz-1", ServiceID: "svc-1",
		Name: "Club Sandwich", Rating: 3.0, ReviewCount: 1,
	})
	catalog.CreateItem(&models.Item{
		ID: "item-b", BusinessID: "biz-1", ServiceID: "svc-1",
		Name: "Iced Tea",
	})
}

func seedSession(sessions *fakeSessionRepo, id, staffID string) {
	sessions.Create(&models.Session{
		ID:          id,
		StaffID:     staffID,
		Items:       []models.SessionItem{{ItemID: "item-a", BusinessID: "biz-1", ServiceID: "svc-1"}},
		TotalAmount: 12.50,
		CreatedAt:   time.Now(),
	})
}

func floatPtr(v float64) *float64 { return &v }

func TestSubmitSessionRating_RequiresAtLeastOneRating(t *testing.T) {
	svc, sessions, _, _ := newTestService(t)
	seedSession(sessions, "sess-1", "staff-1")

	_, err := svc.SubmitSessionRating("sess-1", models.RatingSubmission{})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	sess, _ := sessions.GetByID("sess-1")
	if sess.Rated {
		t.Error("validation failure must not consume the rating transition")
	}
}

func TestSubmitSessionRating_SessionNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.SubmitSessionRating("missing", models.RatingSubmission{StaffRating: floatPtr(5)})

	var nferr *NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestSubmitSessionRating_StaffIncrementalMean(t *testing.T) {
	// Staff at (4.0, 2); a 5 comes in: (4.0*2+5)/3 = 4.333..., count 3.
	svc, sessions, staff, _ := newTestService(t)
	staff.Create(&models.Staff{ID: "staff-1", Name: "Dana", Rating: 4.0, ReviewCount: 2})
	seedSession(sessions, "sess-1", "staff-1")

	_, err := svc.SubmitSessionRating("sess-1", models.RatingSubmission{StaffRating: floatPtr(5)})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	st, _ := staff.GetByID("staff-1")
	if math.Abs(st.Rating-13.0/3.0) > 1e-9 {
		t.Errorf("expected rating %f, got %f", 13.0/3.0, st.Rating)
	}
	if st.ReviewCount != 3 {
		t.Errorf("expected reviewCount 3, got %d", st.ReviewCount)
	}
}

func TestSubmitSessionRating_StaffMeanOverSequence(t *testing.T) {
	svc, sessions, staff, _ := newTestService(t)
	staff.Create(&models.Staff{ID: "staff-1", Name: "Dana"})

	ratings := []float64{5, 3, 4, 2, 5}
	for i, r := range ratings {
		id := fmt.Sprintf("sess-%d", i)
		seedSession(sessions, id, "staff-1")
		if _, err := svc.SubmitSessionRating(id, models.RatingSubmission{StaffRating: floatPtr(r)}); err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
	}

	var sum float64
	for _, r := range ratings {
		sum += r
	}
	want := sum / float64(len(ratings))

	st, _ := staff.GetByID("staff-1")
	if math.Abs(st.Rating-want) > 1e-9 {
		t.Errorf("expected arithmetic mean %f, got %f", want, st.Rating)
	}
	if st.ReviewCount != len(ratings) {
		t.Errorf("expected reviewCount %d, got %d", len(ratings), st.ReviewCount)
	}
}

func TestSubmitSessionRating_ItemAndRollups(t *testing.T) {
	// Item A (3.0, 1) rated 5 becomes (4.0, 2); the untouched
	// item B stays excluded, so the service rolls up to (4.0, 2), and so does
	// the business.
	svc, sessions, _, catalog := newTestService(t)
	seedCatalog(catalog)
	seedSession(sessions, "sess-1", "staff-1")

	res, err := svc.SubmitSessionRating("sess-1", models.RatingSubmission{
		ItemRatings: []models.ItemRating{
			{BusinessID: "biz-1", ServiceID: "svc-1", ItemID: "item-a", Rating: 5},
		},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(res.SkippedItems) != 0 {
		t.Errorf("expected no skipped items, got %d", len(res.SkippedItems))
	}

	itemA := catalog.items["item-a"]
	if math.Abs(itemA.Rating-4.0) > 1e-9 || itemA.ReviewCount != 2 {
		t.Errorf("expected item A (4.0, 2), got (%f, %d)", itemA.Rating, itemA.ReviewCount)
	}

	itemB := catalog.items["item-b"]
	if itemB.Rating != 0 || itemB.ReviewCount != 0 {
		t.Errorf("untouched item changed: (%f, %d)", itemB.Rating, itemB.ReviewCount)
	}

	service := catalog.services["svc-1"]
	if math.Abs(service.Rating-4.0) > 1e-9 || service.ReviewCount != 2 {
		t.Errorf("expected service rollup (4.0, 2), got (%f, %d)", service.Rating, service.ReviewCount)
	}

	business := catalog.businesses["biz-1"]
	if math.Abs(business.Rating-4.0) > 1e-9 || business.ReviewCount != 2 {
		t.Errorf("expected business rollup (4.0, 2), got (%f, %d)", business.Rating, business.ReviewCount)
	}
}

func TestSubmitSessionRating_SkipsMissingItem(t *testing.T) {
	svc, sessions, _, catalog := newTestService(t)
	seedCatalog(catalog)
	seedSession(sessions, "sess-1", "staff-1")

	res, err := svc.SubmitSessionRating("sess-1", models.RatingSubmission{
		ItemRatings: []models.ItemRating{
			{BusinessID: "biz-1", ServiceID: "svc-1", ItemID: "deleted-item", Rating: 5},
		},
	})
	if err != nil {
		t.Fatalf("missing item must not fail the submission: %v", err)
	}
	if len(res.SkippedItems) != 1 || res.SkippedItems[0].ItemID != "deleted-item" {
		t.Fatalf("expected deleted-item in skipped list, got %+v", res.SkippedItems)
	}

	// The would-be parent service must be untouched by the skipped rating.
	service := catalog.services["svc-1"]
	if service.Rating != 0 || service.ReviewCount != 0 {
		t.Errorf("service aggregates changed for a skipped item: (%f, %d)", service.Rating, service.ReviewCount)
	}

	sess, _ := sessions.GetByID("sess-1")
	if !sess.Rated {
		t.Error("session should still be marked rated")
	}
}

func TestSubmitSessionRating_MissingStaffIsSkipped(t *testing.T) {
	svc, sessions, _, catalog := newTestService(t)
	seedCatalog(catalog)
	seedSession(sessions, "sess-1", "ghost-staff")

	_, err := svc.SubmitSessionRating("sess-1", models.RatingSubmission{
		StaffRating: floatPtr(5),
		ItemRatings: []models.ItemRating{
			{BusinessID: "biz-1", ServiceID: "svc-1", ItemID: "item-a", Rating: 4},
		},
	})
	if err != nil {
		t.Fatalf("missing staff must not fail the submission: %v", err)
	}

	itemA := catalog.items["item-a"]
	if itemA.ReviewCount != 2 {
		t.Errorf("item ratings should still apply, got count %d", itemA.ReviewCount)
	}
}

func TestSubmitSessionRating_DoubleSubmissionConflict(t *testing.T) {
	svc, sessions, staff, catalog := newTestService(t)
	seedCatalog(catalog)
	staff.Create(&models.Staff{ID: "staff-1", Name: "Dana"})
	seedSession(sessions, "sess-1", "staff-1")

	first := models.RatingSubmission{
		StaffRating: floatPtr(4),
		ItemRatings: []models.ItemRating{
			{BusinessID: "biz-1", ServiceID: "svc-1", ItemID: "item-a", Rating: 4},
		},
	}
	if _, err := svc.SubmitSessionRating("sess-1", first); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	stAfterFirst := *staff.staff["staff-1"]
	itemAfterFirst := *catalog.items["item-a"]
	serviceAfterFirst := *catalog.services["svc-1"]

	_, err := svc.SubmitSessionRating("sess-1", models.RatingSubmission{StaffRating: floatPtr(1)})
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConflictError on second submission, got %v", err)
	}

	if *staff.staff["staff-1"] != stAfterFirst {
		t.Error("staff aggregates changed after rejected resubmission")
	}
	if *catalog.items["item-a"] != itemAfterFirst {
		t.Error("item aggregates changed after rejected resubmission")
	}
	if *catalog.services["svc-1"] != serviceAfterFirst {
		t.Error("service aggregates changed after rejected resubmission")
	}
}

func TestSubmitSessionRating_RoundTrip(t *testing.T) {
	svc, sessions, _, catalog := newTestService(t)
	seedCatalog(catalog)
	seedSession(sessions, "sess-1", "staff-1")

	submission := models.RatingSubmission{
		StaffRating: floatPtr(5),
		Comment:     "quick and friendly",
		ItemRatings: []models.ItemRating{
			{BusinessID: "biz-1", ServiceID: "svc-1", ItemID: "item-a", Rating: 5},
		},
	}
	if _, err := svc.SubmitSessionRating("sess-1", submission); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	sess, err := sessions.GetByID("sess-1")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if !sess.Rated {
		t.Error("expected rated == true")
	}
	if sess.Ratings == nil {
		t.Fatal("expected ratings payload on session")
	}
	if sess.Ratings.Staff == nil || *sess.Ratings.Staff != 5 {
		t.Errorf("staff rating not persisted verbatim: %+v", sess.Ratings.Staff)
	}
	if sess.Ratings.Comment != "quick and friendly" {
		t.Errorf("comment not persisted verbatim: %q", sess.Ratings.Comment)
	}
	if len(sess.Ratings.ItemRatings) != 1 || sess.Ratings.ItemRatings[0] != submission.ItemRatings[0] {
		t.Errorf("item ratings not persisted verbatim: %+v", sess.Ratings.ItemRatings)
	}
}

func TestVerifySessionRating(t *testing.T) {
	svc, sessions, _, _ := newTestService(t)
	seedSession(sessions, "sess-1", "staff-1")

	t.Run("not found", func(t *testing.T) {
		err := svc.VerifySessionRating("missing")
		var nferr *NotFoundError
		if !errors.As(err, &nferr) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})

	t.Run("sets flag and timestamp", func(t *testing.T) {
		if err := svc.VerifySessionRating("sess-1"); err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		sess, _ := sessions.GetByID("sess-1")
		if !sess.Verified || sess.VerifiedAt == nil {
			t.Error("expected verified flag and timestamp")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		if err := svc.VerifySessionRating("sess-1"); err != nil {
			t.Fatalf("second verify failed: %v", err)
		}
	})

	t.Run("independent of rating state", func(t *testing.T) {
		sess, _ := sessions.GetByID("sess-1")
		if sess.Rated {
			t.Error("verification must not mark the session rated")
		}
	})
}
