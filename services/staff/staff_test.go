package staff

import (
	"errors"
	"testing"

	sessionRepo "tillpoint/database/repository/session"
	staffRepo "tillpoint/database/repository/staff"
	"tillpoint/models"
	"tillpoint/utils"
)

// fakeSessions only serves ListRatedByStaff; everything else panics on use.
type fakeSessions struct {
	sessionRepo.SessionRepository
	rated map[string][]models.Session
}

func (f *fakeSessions) ListRatedByStaff(staffID string) ([]models.Session, error) {
	return f.rated[staffID], nil
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

func TestGetLeaderboard_Ordering(t *testing.T) {
	repo := newFakeStaffRepo()
	repo.Create(&models.Staff{ID: "a", Name: "Ada", Rating: 4.2, ReviewCount: 10})
	repo.Create(&models.Staff{ID: "b", Name: "Ben", Rating: 4.8, ReviewCount: 3})
	repo.Create(&models.Staff{ID: "c", Name: "Cam", Rating: 4.2, ReviewCount: 25})
	repo.Create(&models.Staff{ID: "d", Name: "Di", Rating: 0, ReviewCount: 0})

	svc := &DefaultStaffService{Staff: repo}
	entries, err := svc.GetLeaderboard()
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}

	wantOrder := []string{"b", "c", "a", "d"}
	if len(entries) != len(wantOrder) {
		t.Fatalf("expected %d entries, got %d", len(wantOrder), len(entries))
	}
	for i, want := range wantOrder {
		if entries[i].StaffID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, entries[i].StaffID)
		}
	}
}

func TestVerifyPIN(t *testing.T) {
	repo := newFakeStaffRepo()
	hash, err := hashPIN("4821")
	if err != nil {
		t.Fatalf("hashPIN failed: %v", err)
	}
	repo.Create(&models.Staff{ID: "a", Name: "Ada", Email: "ada@example.com", PINHash: hash})

	svc := &DefaultStaffService{Staff: repo}

	t.Run("valid credentials", func(t *testing.T) {
		st, err := svc.VerifyPIN("Ada@Example.com", "4821")
		if err != nil {
			t.Fatalf("VerifyPIN failed: %v", err)
		}
		if st.ID != "a" {
			t.Errorf("wrong staff returned: %s", st.ID)
		}
	})

	t.Run("wrong pin", func(t *testing.T) {
		_, err := svc.VerifyPIN("ada@example.com", "0000")
		var uerr *utils.UnauthorizedError
		if !errors.As(err, &uerr) {
			t.Fatalf("expected UnauthorizedError, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.VerifyPIN("ghost@example.com", "4821")
		var uerr *utils.UnauthorizedError
		if !errors.As(err, &uerr) {
			t.Fatalf("expected UnauthorizedError, got %v", err)
		}
	})
}

func TestGetPerformance(t *testing.T) {
	repo := newFakeStaffRepo()
	repo.Create(&models.Staff{ID: "a", Name: "Ada", Rating: 4.5, ReviewCount: 12})

	score := 5.0
	sessions := &fakeSessions{rated: map[string][]models.Session{
		"a": {
			{ID: "s1", Ratings: &models.RatingPayload{Comment: "great service", Staff: &score}},
			{ID: "s2", Ratings: &models.RatingPayload{}},
		},
	}}

	svc := &DefaultStaffService{Staff: repo, Sessions: sessions}
	perf, err := svc.GetPerformance("a")
	if err != nil {
		t.Fatalf("GetPerformance failed: %v", err)
	}
	if perf.Rating != 4.5 || perf.TotalReviews != 12 || perf.Name != "Ada" {
		t.Errorf("unexpected performance view: %+v", perf)
	}
	if len(perf.Reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(perf.Reviews))
	}
	if perf.Reviews[0].Comment != "great service" || perf.Reviews[0].Rating == nil || *perf.Reviews[0].Rating != 5.0 {
		t.Errorf("unexpected review: %+v", perf.Reviews[0])
	}

	_, err = svc.GetPerformance("missing")
	var nferr *utils.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
