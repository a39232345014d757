package service

import (
	"context"
	"errors"
	"time"

	"tripdesk/internal/giftcards/repository"
	"tripdesk/pkg/config"
	apperrors "tripdesk/pkg/errors"
	"tripdesk/pkg/model"
	"tripdesk/pkg/sanitizer"
)

type GiftCardService interface {
	Validate(ctx context.Context, code string) (*model.GiftCard, error)
	Redeem(ctx context.Context, code string, amount int64) error
	Restore(ctx context.Context, code string, amount int64) error
}

type giftCardService struct {
	repo repository.GiftCardRepository
	cfg  *config.Config
	now  func() time.Time
}

func NewGiftCardService(repo repository.GiftCardRepository, cfg *config.Config) GiftCardService {
	return &giftCardService{repo: repo, cfg: cfg, now: time.Now}
}

// Validate loads a card and verifies it can still be redeemed against.
func (s *giftCardService) Validate(ctx context.Context, code string) (*model.GiftCard, error) {
	code = sanitizer.NormalizeCode(code)
	if code == "" {
		return nil, apperrors.InvalidInput("Gift card code cannot be empty")
	}

	card, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Gift card")
		}
		return nil, apperrors.Internal("Failed to look up gift card", err)
	}

	if !card.Usable(s.now()) {
		return nil, apperrors.InvalidInput("Gift card is expired, inactive or empty")
	}
	return card, nil
}

func (s *giftCardService) Redeem(ctx context.Context, code string, amount int64) error {
	code = sanitizer.NormalizeCode(code)
	if code == "" {
		return apperrors.InvalidInput("Gift card code cannot be empty")
	}
	if amount <= 0 {
		return apperrors.InvalidInput("Redemption amount must be positive")
	}

	if err := s.repo.Redeem(ctx, code, amount); err != nil {
		if errors.Is(err, repository.ErrBalanceExhausted) {
			return apperrors.InsufficientFunds("Gift card balance is insufficient")
		}
		s.cfg.Log.Error("Failed to redeem gift card", "code", code, "amount", amount, "error", err)
		return apperrors.Internal("Failed to redeem gift card", err)
	}

	s.cfg.Log.Info("Gift card redeemed", "code", code, "amount", amount)
	return nil
}

func (s *giftCardService) Restore(ctx context.Context, code string, amount int64) error {
	code = sanitizer.NormalizeCode(code)
	if code == "" || amount <= 0 {
		return apperrors.InvalidInput("Invalid gift card restore request")
	}

	if err := s.repo.Restore(ctx, code, amount); err != nil {
		s.cfg.Log.Error("Failed to restore gift card", "code", code, "amount", amount, "error", err)
		return apperrors.Internal("Failed to restore gift card", err)
	}

	s.cfg.Log.Info("Gift card restored", "code", code, "amount", amount)
	return nil
}
