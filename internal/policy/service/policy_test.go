package service

import (
	"context"
	"testing"
	"time"

	"tripdesk/pkg/config"
	"tripdesk/pkg/logger"
	"tripdesk/pkg/model"
)

type mockApprovalRepository struct {
	created []*model.ApprovalRequest
	pending []*model.ApprovalRequest
}

func (m *mockApprovalRepository) Create(ctx context.Context, req *model.ApprovalRequest) error {
	m.created = append(m.created, req)
	return nil
}

func (m *mockApprovalRepository) FindPending(ctx context.Context, limit int, offset int64) ([]*model.ApprovalRequest, error) {
	return m.pending, nil
}

func (m *mockApprovalRepository) CountPending(ctx context.Context) (int64, error) {
	return int64(len(m.pending)), nil
}

func testPolicyService(repo *mockApprovalRepository) *policyService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		CorporateFareCap:      15000,
		CorporateMinAdvance:   48 * time.Hour,
		CorporateBlockedModes: []string{"cab"},
	}
	fixedNow := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &policyService{repo: repo, cfg: cfg, now: func() time.Time { return fixedNow }}
}

func TestCheckComplianceWithinPolicy(t *testing.T) {
	s := testPolicyService(&mockApprovalRepository{})
	departure := s.now().Add(72 * time.Hour)

	result := s.CheckCompliance(12000, model.ModeFlight, departure)

	if result.RequiresApproval {
		t.Error("expected no approval requirement within policy")
	}
	if len(result.Violations) != 0 {
		t.Errorf("expected no violations, got %+v", result.Violations)
	}
}

func TestCheckComplianceFareCapRequiresApproval(t *testing.T) {
	s := testPolicyService(&mockApprovalRepository{})
	departure := s.now().Add(72 * time.Hour)

	result := s.CheckCompliance(15001, model.ModeFlight, departure)

	if !result.RequiresApproval {
		t.Fatal("expected approval requirement for a fare over the cap")
	}
	if len(result.Violations) != 1 || result.Violations[0].Rule != "fare_cap" {
		t.Errorf("expected a fare_cap violation, got %+v", result.Violations)
	}
}

func TestCheckComplianceFareAtCapPasses(t *testing.T) {
	s := testPolicyService(&mockApprovalRepository{})
	departure := s.now().Add(72 * time.Hour)

	result := s.CheckCompliance(15000, model.ModeFlight, departure)

	if result.RequiresApproval {
		t.Error("a fare exactly at the cap should not require approval")
	}
}

func TestCheckComplianceBlockedModeRequiresApproval(t *testing.T) {
	s := testPolicyService(&mockApprovalRepository{})
	departure := s.now().Add(72 * time.Hour)

	result := s.CheckCompliance(900, model.ModeCab, departure)

	if !result.RequiresApproval {
		t.Fatal("expected approval requirement for a blocked mode")
	}
	if len(result.Violations) != 1 || result.Violations[0].Rule != "blocked_mode" {
		t.Errorf("expected a blocked_mode violation, got %+v", result.Violations)
	}
}

func TestCheckComplianceShortNoticeWarnsOnly(t *testing.T) {
	s := testPolicyService(&mockApprovalRepository{})
	departure := s.now().Add(12 * time.Hour)

	result := s.CheckCompliance(5000, model.ModeFlight, departure)

	if result.RequiresApproval {
		t.Error("short-notice booking should warn, not require approval")
	}
	if len(result.Violations) != 1 || result.Violations[0].Rule != "advance_booking" {
		t.Errorf("expected an advance_booking violation, got %+v", result.Violations)
	}
}

func TestCheckComplianceAccumulatesViolations(t *testing.T) {
	s := testPolicyService(&mockApprovalRepository{})
	departure := s.now().Add(12 * time.Hour)

	result := s.CheckCompliance(20000, model.ModeCab, departure)

	if !result.RequiresApproval {
		t.Fatal("expected approval requirement")
	}
	if len(result.Violations) != 3 {
		t.Errorf("expected fare_cap, blocked_mode and advance_booking, got %+v", result.Violations)
	}
}

func TestSubmitForApprovalCreatesPendingRequest(t *testing.T) {
	repo := &mockApprovalRepository{}
	s := testPolicyService(repo)

	booking := &model.Booking{
		ID:     "book-1",
		UserID: "user-1",
		Fare:   model.FareBreakdown{Total: 20000},
	}
	violations := []model.PolicyViolation{{Rule: "fare_cap", Message: "over cap"}}

	req, err := s.SubmitForApproval(context.Background(), booking, violations)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.ID == "" {
		t.Error("expected a generated request ID")
	}
	if req.Status != model.ApprovalPending {
		t.Errorf("expected PENDING, got %s", req.Status)
	}
	if req.BookingID != "book-1" || req.Total != 20000 {
		t.Errorf("unexpected request contents: %+v", req)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one persisted request, got %d", len(repo.created))
	}
}

func TestPendingApprovalsReturnsCountAndPage(t *testing.T) {
	repo := &mockApprovalRepository{
		pending: []*model.ApprovalRequest{
			{ID: "req-1"},
			{ID: "req-2"},
		},
	}
	s := testPolicyService(repo)

	requests, count, err := s.PendingApprovals(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
	if len(requests) != 2 {
		t.Errorf("expected 2 requests, got %d", len(requests))
	}
}
