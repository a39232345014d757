package service

import (
	"context"
	"testing"
	"time"

	"tripdesk/internal/giftcards/repository"
	"tripdesk/pkg/config"
	apperrors "tripdesk/pkg/errors"
	"tripdesk/pkg/logger"
	"tripdesk/pkg/model"
)

type mockGiftCardRepository struct {
	cards     map[string]*model.GiftCard
	redeemErr error
	redeemed  []int64
	restored  []int64
}

func (m *mockGiftCardRepository) FindByCode(ctx context.Context, code string) (*model.GiftCard, error) {
	card, ok := m.cards[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return card, nil
}

func (m *mockGiftCardRepository) Redeem(ctx context.Context, code string, amount int64) error {
	if m.redeemErr != nil {
		return m.redeemErr
	}
	m.redeemed = append(m.redeemed, amount)
	return nil
}

func (m *mockGiftCardRepository) Restore(ctx context.Context, code string, amount int64) error {
	m.restored = append(m.restored, amount)
	return nil
}

func testGiftCardService(repo *mockGiftCardRepository) *giftCardService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"}),
	}
	fixedNow := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &giftCardService{repo: repo, cfg: cfg, now: func() time.Time { return fixedNow }}
}

func usableCard(code string, balance int64) *model.GiftCard {
	return &model.GiftCard{
		Code:      code,
		Balance:   balance,
		Active:    true,
		ExpiresAt: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidateReturnsUsableCard(t *testing.T) {
	repo := &mockGiftCardRepository{cards: map[string]*model.GiftCard{
		"GC1000": usableCard("GC1000", 1000),
	}}
	s := testGiftCardService(repo)

	card, err := s.Validate(context.Background(), " gc1000 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.Code != "GC1000" || card.Balance != 1000 {
		t.Errorf("unexpected card: %+v", card)
	}
}

func TestValidateUnknownCode(t *testing.T) {
	s := testGiftCardService(&mockGiftCardRepository{cards: map[string]*model.GiftCard{}})

	_, err := s.Validate(context.Background(), "NOPE")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestValidateRejectsUnusableCards(t *testing.T) {
	expired := usableCard("EXPIRED", 500)
	expired.ExpiresAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	inactive := usableCard("INACTIVE", 500)
	inactive.Active = false

	empty := usableCard("EMPTY", 0)

	repo := &mockGiftCardRepository{cards: map[string]*model.GiftCard{
		"EXPIRED":  expired,
		"INACTIVE": inactive,
		"EMPTY":    empty,
	}}
	s := testGiftCardService(repo)

	for _, code := range []string{"EXPIRED", "INACTIVE", "EMPTY"} {
		if _, err := s.Validate(context.Background(), code); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
			t.Errorf("expected INVALID_INPUT for %s, got %v", code, err)
		}
	}
}

func TestRedeemExhaustedBalance(t *testing.T) {
	repo := &mockGiftCardRepository{redeemErr: repository.ErrBalanceExhausted}
	s := testGiftCardService(repo)

	err := s.Redeem(context.Background(), "GC1000", 500)
	if !apperrors.HasCode(err, apperrors.CodeInsufficientFunds) {
		t.Errorf("expected INSUFFICIENT_FUNDS, got %v", err)
	}
}

func TestRedeemRejectsNonPositiveAmount(t *testing.T) {
	s := testGiftCardService(&mockGiftCardRepository{})

	if err := s.Redeem(context.Background(), "GC1000", 0); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for zero amount, got %v", err)
	}
}

func TestRestoreReturnsAmount(t *testing.T) {
	repo := &mockGiftCardRepository{}
	s := testGiftCardService(repo)

	if err := s.Restore(context.Background(), "GC1000", 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.restored) != 1 || repo.restored[0] != 500 {
		t.Errorf("expected one restore of 500, got %v", repo.restored)
	}
}
