package service

import (
	"context"
	"fmt"
	"time"

	"tripdesk/internal/policy/repository"
	"tripdesk/pkg/config"
	apperrors "tripdesk/pkg/errors"
	"tripdesk/pkg/model"

	"github.com/google/uuid"
)

// ComplianceResult is the outcome of checking a corporate booking against
// travel policy. Violations without RequiresApproval are surfaced as
// warnings only.
type ComplianceResult struct {
	Violations       []model.PolicyViolation `json:"violations"`
	RequiresApproval bool                    `json:"requires_approval"`
}

type PolicyService interface {
	CheckCompliance(total int64, mode model.TravelMode, departure time.Time) ComplianceResult
	SubmitForApproval(ctx context.Context, booking *model.Booking, violations []model.PolicyViolation) (*model.ApprovalRequest, error)
	PendingApprovals(ctx context.Context, limit int, offset int64) ([]*model.ApprovalRequest, int64, error)
}

type policyService struct {
	repo repository.ApprovalRepository
	cfg  *config.Config
	now  func() time.Time
}

func NewPolicyService(repo repository.ApprovalRepository, cfg *config.Config) PolicyService {
	return &policyService{repo: repo, cfg: cfg, now: time.Now}
}

// CheckCompliance evaluates the corporate travel rules. Exceeding the fare
// cap forces manager approval; the remaining rules only warn.
func (s *policyService) CheckCompliance(total int64, mode model.TravelMode, departure time.Time) ComplianceResult {
	var result ComplianceResult

	if total > s.cfg.CorporateFareCap {
		result.Violations = append(result.Violations, model.PolicyViolation{
			Rule:    "fare_cap",
			Message: fmt.Sprintf("Total ₹%d exceeds the corporate fare cap of ₹%d", total, s.cfg.CorporateFareCap),
		})
		result.RequiresApproval = true
	}

	for _, blocked := range s.cfg.CorporateBlockedModes {
		if string(mode) == blocked {
			result.Violations = append(result.Violations, model.PolicyViolation{
				Rule:    "blocked_mode",
				Message: fmt.Sprintf("Travel mode %q is not covered by the corporate policy", mode),
			})
			result.RequiresApproval = true
			break
		}
	}

	if departure.Sub(s.now()) < s.cfg.CorporateMinAdvance {
		result.Violations = append(result.Violations, model.PolicyViolation{
			Rule:    "advance_booking",
			Message: fmt.Sprintf("Corporate bookings should be made at least %s before departure", s.cfg.CorporateMinAdvance),
		})
	}

	return result
}

func (s *policyService) SubmitForApproval(ctx context.Context, booking *model.Booking, violations []model.PolicyViolation) (*model.ApprovalRequest, error) {
	req := &model.ApprovalRequest{
		ID:         uuid.New().String(),
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		Total:      booking.Fare.Total,
		Violations: violations,
		Status:     model.ApprovalPending,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		s.cfg.Log.Error("Failed to submit booking for approval", "booking_id", booking.ID, "error", err)
		return nil, apperrors.Internal("Failed to submit booking for approval", err)
	}

	s.cfg.Log.Info("Booking submitted for approval",
		"booking_id", booking.ID,
		"user_id", booking.UserID,
		"total", booking.Fare.Total,
		"violations", len(violations),
	)
	return req, nil
}

func (s *policyService) PendingApprovals(ctx context.Context, limit int, offset int64) ([]*model.ApprovalRequest, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	count, err := s.repo.CountPending(ctx)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to count approval requests", err)
	}

	requests, err := s.repo.FindPending(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list approval requests", err)
	}
	return requests, count, nil
}
