package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tillpoint/config"
	"tillpoint/handlers"
	"tillpoint/models"
	"tillpoint/utils"
)

type fakeRatingService struct {
	submitted []string
}

func (f *fakeRatingService) SubmitSessionRating(sessionID string, input models.RatingSubmission) (*models.RatingResult, error) {
	f.submitted = append(f.submitted, sessionID)
	return &models.RatingResult{SessionID: sessionID}, nil
}

func (f *fakeRatingService) VerifySessionRating(sessionID string) error { return nil }

func newRatingRouter(svc *fakeRatingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	hb := &handlers.HandlerBundle{
		Rating: &handlers.RatingHandler{RatingSvc: svc, Logger: zap.NewNop()},
	}
	RegisterSessionRoutes(r, hb)
	return r
}

func ratingRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/sess-1/rating", strings.NewReader(`{"staffRating":5}`))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// Rating submission must only be reachable by an authenticated staff member;
// an anonymous caller holding a session ID cannot consume its rating slot.
func TestSubmitRatingRequiresStaffToken(t *testing.T) {
	config.AppConfig.JWTSecret = "routes-test-secret"

	t.Run("anonymous request is rejected", func(t *testing.T) {
		svc := &fakeRatingService{}
		w := httptest.NewRecorder()
		newRatingRouter(svc).ServeHTTP(w, ratingRequest(""))

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if len(svc.submitted) != 0 {
			t.Errorf("rating service was reached without a token: %v", svc.submitted)
		}
	})

	t.Run("admin token is rejected", func(t *testing.T) {
		token, err := utils.GenerateToken("admin-1", "admin", time.Hour)
		if err != nil {
			t.Fatalf("GenerateToken failed: %v", err)
		}

		svc := &fakeRatingService{}
		w := httptest.NewRecorder()
		newRatingRouter(svc).ServeHTTP(w, ratingRequest(token))

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
		if len(svc.submitted) != 0 {
			t.Errorf("rating service was reached by a non-staff caller: %v", svc.submitted)
		}
	})

	t.Run("staff token passes through", func(t *testing.T) {
		token, err := utils.GenerateToken("staff-1", "staff", time.Hour)
		if err != nil {
			t.Fatalf("GenerateToken failed: %v", err)
		}

		svc := &fakeRatingService{}
		w := httptest.NewRecorder()
		newRatingRouter(svc).ServeHTTP(w, ratingRequest(token))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (body %s)", w.Code, w.Body.String())
		}
		if len(svc.submitted) != 1 || svc.submitted[0] != "sess-1" {
			t.Errorf("expected one submission for sess-1, got %v", svc.submitted)
		}
	})
}
