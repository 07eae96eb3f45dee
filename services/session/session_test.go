package session

import (
	"errors"
	"testing"
	"time"

	sessionRepo "tillpoint/database/repository/session"
	"tillpoint/models"
	"tillpoint/utils"
)

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

func validInput() CreateSessionInput {
	return CreateSessionInput{
		Items: []models.SessionItem{
			{ItemID: "item-1", BusinessID: "biz-1", ServiceID: "svc-1", Name: "Espresso", Price: 3.50},
		},
		TotalAmount: 3.50,
	}
}

func TestCreateSession(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := &DefaultSessionService{Sessions: repo}

	t.Run("assigns id and owner", func(t *testing.T) {
		sess, err := svc.CreateSession("staff-1", validInput())
		if err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if sess.ID == "" {
			t.Error("expected generated session id")
		}
		if sess.StaffID != "staff-1" {
			t.Errorf("wrong owner: %s", sess.StaffID)
		}
		if sess.Rated || sess.Verified {
			t.Error("new session must start unrated and unverified")
		}
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		_, err := svc.CreateSession("staff-1", CreateSessionInput{TotalAmount: 1})
		var verr *utils.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("rejects item without catalog path", func(t *testing.T) {
		input := validInput()
		input.Items[0].ServiceID = ""
		_, err := svc.CreateSession("staff-1", input)
		var verr *utils.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestGetSession_Ownership(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := &DefaultSessionService{Sessions: repo}
	created, err := svc.CreateSession("staff-1", validInput())
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	t.Run("owner can read", func(t *testing.T) {
		if _, err := svc.GetSession(created.ID, "staff-1", false); err != nil {
			t.Fatalf("owner read failed: %v", err)
		}
	})

	t.Run("other staff cannot read", func(t *testing.T) {
		_, err := svc.GetSession(created.ID, "staff-2", false)
		var uerr *utils.UnauthorizedError
		if !errors.As(err, &uerr) {
			t.Fatalf("expected UnauthorizedError, got %v", err)
		}
	})

	t.Run("admin reads any", func(t *testing.T) {
		if _, err := svc.GetSession(created.ID, "admin-1", true); err != nil {
			t.Fatalf("admin read failed: %v", err)
		}
	})

	t.Run("missing session", func(t *testing.T) {
		_, err := svc.GetSession("nope", "staff-1", false)
		var nferr *utils.NotFoundError
		if !errors.As(err, &nferr) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})
}
