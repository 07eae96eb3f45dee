package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	catalogRepo "tillpoint/database/repository/catalog"
	subscriptionRepo "tillpoint/database/repository/subscription"
	"tillpoint/models"
	"tillpoint/utils"
)

const (
	uploadTimeout      = 30 * time.Second
	expiringSoonWindow = 7 * 24 * time.Hour
)

// planEnd returns the end date for a plan starting at start.
func planEnd(planType string, start time.Time) (time.Time, error) {
	switch planType {
	case models.PlanMonthly:
		return start.AddDate(0, 1, 0), nil
	case models.PlanSixMonth:
		return start.AddDate(0, 6, 0), nil
	case models.PlanYearly:
		return start.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, &utils.ValidationError{Message: fmt.Sprintf("unknown plan type %q", planType)}
	}
}

// statusFor derives the date-tracked status from the end date.
func statusFor(endDate, now time.Time) string {
	switch {
	case endDate.Before(now):
		return models.SubStatusExpired
	case endDate.Sub(now) <= expiringSoonWindow:
		return models.SubStatusExpiringSoon
	default:
		return models.SubStatusActive
	}
}

// dateTracked reports whether the status follows the end date. Payment-review
// statuses are owned by the superadmin flow and left alone.
func dateTracked(status string) bool {
	switch status {
	case models.SubStatusActive, models.SubStatusExpiringSoon, models.SubStatusExpired:
		return true
	}
	return false
}

func (s *DefaultSubscriptionService) Subscribe(adminID, planType string) (*models.Subscription, error) {
	now := time.Now()
	endDate, err := planEnd(planType, now)
	if err != nil {
		return nil, err
	}

	biz, err := s.Catalog.GetBusinessByAdmin(adminID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, &utils.NotFoundError{Resource: "business"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load business for admin %s: %w", adminID, err)
	}

	if existing, err := s.Subs.GetByAdmin(adminID); err == nil {
		if existing.Status != models.SubStatusExpired && existing.Status != models.SubStatusPaymentRejected {
			return nil, &utils.ConflictError{Message: "admin already has a subscription"}
		}
	} else if !errors.Is(err, subscriptionRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing subscription: %w", err)
	}

	sub := &models.Subscription{
		ID:         uuid.NewString(),
		BusinessID: biz.ID,
		AdminID:    adminID,
		PlanType:   planType,
		StartDate:  now,
		EndDate:    endDate,
		Status:     models.SubStatusPendingPayment,
	}
	if err := s.Subs.Create(sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := s.Catalog.UpdateBusiness(biz.ID, map[string]any{"subscriptionId": sub.ID}); err != nil {
		utils.GetLogger().Warn("failed to link subscription to business",
			zap.String("businessID", biz.ID), zap.String("subscriptionID", sub.ID), zap.Error(err))
	}
	return sub, nil
}

func (s *DefaultSubscriptionService) GetForAdmin(adminID string) (*models.Subscription, error) {
	sub, err := s.Subs.GetByAdmin(adminID)
	if errors.Is(err, subscriptionRepo.ErrNotFound) {
		return nil, &utils.NotFoundError{Resource: "subscription"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription for admin %s: %w", adminID, err)
	}
	return s.refreshStatus(sub)
}

// refreshStatus recomputes the date-tracked status and persists a change.
func (s *DefaultSubscriptionService) refreshStatus(sub *models.Subscription) (*models.Subscription, error) {
	if !dateTracked(sub.Status) {
		return sub, nil
	}
	current := statusFor(sub.EndDate, time.Now())
	if current == sub.Status {
		return sub, nil
	}
	if err := s.Subs.Update(sub.ID, map[string]any{"status": current}); err != nil {
		return nil, fmt.Errorf("failed to refresh subscription status: %w", err)
	}
	sub.Status = current
	return sub, nil
}

func (s *DefaultSubscriptionService) SubmitReceipt(adminID string, file any) (*models.Subscription, error) {
	sub, err := s.GetForAdmin(adminID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()
	res, err := s.Storage.Upload(ctx, file, "tillpoint/receipts")
	if err != nil {
		return nil, fmt.Errorf("failed to upload receipt: %w", err)
	}

	now := time.Now()
	fields := map[string]any{
		"receiptImageUrl": res.URL,
		"paymentDate":     now,
		"status":          models.SubStatusPaymentSubmitted,
	}
	if err := s.Subs.Update(sub.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to record receipt: %w", err)
	}
	sub.ReceiptImageURL = res.URL
	sub.PaymentDate = &now
	sub.Status = models.SubStatusPaymentSubmitted
	return sub, nil
}

func (s *DefaultSubscriptionService) Unsubscribe(adminID string) error {
	sub, err := s.Subs.GetByAdmin(adminID)
	if errors.Is(err, subscriptionRepo.ErrNotFound) {
		return &utils.NotFoundError{Resource: "subscription"}
	}
	if err != nil {
		return fmt.Errorf("failed to load subscription for admin %s: %w", adminID, err)
	}
	if err := s.Subs.Delete(sub.ID); err != nil {
		return fmt.Errorf("failed to delete subscription %s: %w", sub.ID, err)
	}
	if err := s.Catalog.UpdateBusiness(sub.BusinessID, map[string]any{"subscriptionId": ""}); err != nil {
		utils.GetLogger().Warn("failed to unlink subscription from business",
			zap.String("businessID", sub.BusinessID), zap.Error(err))
	}
	return nil
}

func (s *DefaultSubscriptionService) GetAll() ([]models.Subscription, error) {
	return s.Subs.GetAll()
}

func (s *DefaultSubscriptionService) GetPending() ([]models.Subscription, error) {
	return s.Subs.ListByStatus(models.SubStatusPaymentSubmitted)
}

// Approve verifies a submitted payment and starts the billing period from now.
func (s *DefaultSubscriptionService) Approve(id string) (*models.Subscription, error) {
	sub, err := s.getByID(id)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.SubStatusPaymentSubmitted {
		return nil, &utils.ConflictError{Message: "subscription has no payment awaiting review"}
	}

	now := time.Now()
	endDate, err := planEnd(sub.PlanType, now)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{
		"status":    models.SubStatusActive,
		"startDate": now,
		"endDate":   endDate,
	}
	if err := s.Subs.Update(id, fields); err != nil {
		return nil, fmt.Errorf("failed to approve subscription %s: %w", id, err)
	}
	sub.Status = models.SubStatusActive
	sub.StartDate = now
	sub.EndDate = endDate
	return sub, nil
}

func (s *DefaultSubscriptionService) Reject(id string) (*models.Subscription, error) {
	sub, err := s.getByID(id)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.SubStatusPaymentSubmitted {
		return nil, &utils.ConflictError{Message: "subscription has no payment awaiting review"}
	}
	if err := s.Subs.Update(id, map[string]any{"status": models.SubStatusPaymentRejected}); err != nil {
		return nil, fmt.Errorf("failed to reject subscription %s: %w", id, err)
	}
	sub.Status = models.SubStatusPaymentRejected
	return sub, nil
}

// ExpireSoon forces a subscription into the warning state.
func (s *DefaultSubscriptionService) ExpireSoon(id string) (*models.Subscription, error) {
	return s.forceStatus(id, models.SubStatusExpiringSoon)
}

// ExpireNow forces a subscription into the expired state.
func (s *DefaultSubscriptionService) ExpireNow(id string) (*models.Subscription, error) {
	return s.forceStatus(id, models.SubStatusExpired)
}

func (s *DefaultSubscriptionService) forceStatus(id, status string) (*models.Subscription, error) {
	sub, err := s.getByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.Subs.Update(id, map[string]any{"status": status}); err != nil {
		return nil, fmt.Errorf("failed to set subscription %s status: %w", id, err)
	}
	sub.Status = status
	return sub, nil
}

// Edit lets a superadmin correct plan, end date, or status directly.
func (s *DefaultSubscriptionService) Edit(id string, input EditSubscriptionInput) (*models.Subscription, error) {
	fields := map[string]any{}
	if input.PlanType != "" {
		if _, err := planEnd(input.PlanType, time.Now()); err != nil {
			return nil, err
		}
		fields["planType"] = input.PlanType
	}
	if input.EndDate != "" {
		endDate, err := time.Parse(time.RFC3339, input.EndDate)
		if err != nil {
			return nil, &utils.ValidationError{Message: "endDate must be RFC 3339"}
		}
		fields["endDate"] = endDate
	}
	if input.Status != "" {
		if !validStatus(input.Status) {
			return nil, &utils.ValidationError{Message: fmt.Sprintf("unknown status %q", input.Status)}
		}
		fields["status"] = input.Status
	}
	if len(fields) == 0 {
		return nil, &utils.ValidationError{Message: "no updatable fields provided"}
	}

	err := s.Subs.Update(id, fields)
	if errors.Is(err, subscriptionRepo.ErrNotFound) {
		return nil, &utils.NotFoundError{Resource: "subscription", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to edit subscription %s: %w", id, err)
	}
	return s.getByID(id)
}

// Sweep refreshes every date-tracked subscription and returns how many changed.
func (s *DefaultSubscriptionService) Sweep() (int, error) {
	subs, err := s.Subs.ListByStatus(models.SubStatusActive, models.SubStatusExpiringSoon)
	if err != nil {
		return 0, fmt.Errorf("failed to list subscriptions for sweep: %w", err)
	}

	now := time.Now()
	changed := 0
	for i := range subs {
		sub := &subs[i]
		current := statusFor(sub.EndDate, now)
		if current == sub.Status {
			continue
		}
		if err := s.Subs.Update(sub.ID, map[string]any{"status": current}); err != nil {
			utils.GetLogger().Warn("failed to sweep subscription",
				zap.String("subscriptionID", sub.ID), zap.Error(err))
			continue
		}
		changed++
	}
	return changed, nil
}

func (s *DefaultSubscriptionService) getByID(id string) (*models.Subscription, error) {
	sub, err := s.Subs.GetByID(id)
	if errors.Is(err, subscriptionRepo.ErrNotFound) {
		return nil, &utils.NotFoundError{Resource: "subscription", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription %s: %w", id, err)
	}
	return sub, nil
}

func validStatus(status string) bool {
	switch status {
	case models.SubStatusActive, models.SubStatusExpiringSoon, models.SubStatusExpired,
		models.SubStatusPendingPayment, models.SubStatusPaymentSubmitted,
		models.SubStatusPaymentVerified, models.SubStatusPaymentRejected:
		return true
	}
	return false
}
