package subscription

import (
	"errors"
	"testing"
	"time"

	subscriptionRepo "tillpoint/database/repository/subscription"
	"tillpoint/models"
	"tillpoint/utils"
)

func TestStatusFor(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		endDate time.Time
		want    string
	}{
		{"well in the future", now.AddDate(0, 1, 0), models.SubStatusActive},
		{"inside the warning window", now.Add(3 * 24 * time.Hour), models.SubStatusExpiringSoon},
		{"window boundary", now.Add(7 * 24 * time.Hour), models.SubStatusExpiringSoon},
		{"just past", now.Add(-time.Minute), models.SubStatusExpired},
		{"long expired", now.AddDate(0, -2, 0), models.SubStatusExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusFor(tc.endDate, now); got != tc.want {
				t.Errorf("statusFor(%v) = %s, want %s", tc.endDate, got, tc.want)
			}
		})
	}
}

func TestPlanEnd(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		plan string
		want time.Time
	}{
		{models.PlanMonthly, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)},
		{models.PlanSixMonth, time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)},
		{models.PlanYearly, time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := planEnd(tc.plan, start)
		if err != nil {
			t.Fatalf("planEnd(%s) failed: %v", tc.plan, err)
		}
		if !got.Equal(tc.want) {
			t.Errorf("planEnd(%s) = %v, want %v", tc.plan, got, tc.want)
		}
	}

	_, err := planEnd("weekly", start)
	var verr *utils.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for unknown plan, got %v", err)
	}
}

type fakeSubRepo struct {
	subscriptionRepo.SubscriptionRepository
	subs    map[string]*models.Subscription
	updates map[string]map[string]any
}

func newFakeSubRepo() *fakeSubRepo {
	return &fakeSubRepo{
		subs:    make(map[string]*models.Subscription),
		updates: make(map[string]map[string]any),
	}
}

func (f *fakeSubRepo) GetByID(id string) (*models.Subscription, error) {
	sub, ok := f.subs[id]
	if !ok {
		return nil, subscriptionRepo.ErrNotFound
	}
	cp := *sub
	return &cp, nil
}

func (f *fakeSubRepo) ListByStatus(statuses ...string) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, sub := range f.subs {
		for _, st := range statuses {
			if sub.Status == st {
				out = append(out, *sub)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeSubRepo) Update(id string, fields map[string]any) error {
	sub, ok := f.subs[id]
	if !ok {
		return subscriptionRepo.ErrNotFound
	}
	if status, ok := fields["status"].(string); ok {
		sub.Status = status
	}
	if start, ok := fields["startDate"].(time.Time); ok {
		sub.StartDate = start
	}
	if end, ok := fields["endDate"].(time.Time); ok {
		sub.EndDate = end
	}
	f.updates[id] = fields
	return nil
}

func TestSweep(t *testing.T) {
	repo := newFakeSubRepo()
	now := time.Now()
	repo.subs["healthy"] = &models.Subscription{
		ID: "healthy", Status: models.SubStatusActive, EndDate: now.AddDate(0, 2, 0),
	}
	repo.subs["closing"] = &models.Subscription{
		ID: "closing", Status: models.SubStatusActive, EndDate: now.Add(2 * 24 * time.Hour),
	}
	repo.subs["overdue"] = &models.Subscription{
		ID: "overdue", Status: models.SubStatusExpiringSoon, EndDate: now.Add(-time.Hour),
	}
	repo.subs["awaiting"] = &models.Subscription{
		ID: "awaiting", Status: models.SubStatusPaymentSubmitted, EndDate: now.Add(-time.Hour),
	}

	svc := &DefaultSubscriptionService{Subs: repo}
	changed, err := svc.Sweep()
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if changed != 2 {
		t.Errorf("expected 2 transitions, got %d", changed)
	}
	if repo.subs["healthy"].Status != models.SubStatusActive {
		t.Error("healthy subscription should stay active")
	}
	if repo.subs["closing"].Status != models.SubStatusExpiringSoon {
		t.Errorf("closing subscription: got %s", repo.subs["closing"].Status)
	}
	if repo.subs["overdue"].Status != models.SubStatusExpired {
		t.Errorf("overdue subscription: got %s", repo.subs["overdue"].Status)
	}
	if repo.subs["awaiting"].Status != models.SubStatusPaymentSubmitted {
		t.Error("payment-review statuses must not be swept")
	}
}

func TestApprove(t *testing.T) {
	repo := newFakeSubRepo()
	repo.subs["sub-1"] = &models.Subscription{
		ID: "sub-1", PlanType: models.PlanMonthly, Status: models.SubStatusPaymentSubmitted,
	}
	repo.subs["sub-2"] = &models.Subscription{
		ID: "sub-2", PlanType: models.PlanMonthly, Status: models.SubStatusActive,
	}
	svc := &DefaultSubscriptionService{Subs: repo}

	t.Run("starts period from approval", func(t *testing.T) {
		sub, err := svc.Approve("sub-1")
		if err != nil {
			t.Fatalf("Approve failed: %v", err)
		}
		if sub.Status != models.SubStatusActive {
			t.Errorf("expected active, got %s", sub.Status)
		}
		if !sub.EndDate.After(sub.StartDate) {
			t.Error("end date must follow start date")
		}
	})

	t.Run("rejects without pending payment", func(t *testing.T) {
		_, err := svc.Approve("sub-2")
		var cerr *utils.ConflictError
		if !errors.As(err, &cerr) {
			t.Fatalf("expected ConflictError, got %v", err)
		}
	})

	t.Run("missing subscription", func(t *testing.T) {
		_, err := svc.Approve("nope")
		var nferr *utils.NotFoundError
		if !errors.As(err, &nferr) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})
}
