package service

import (
	"context"
	"errors"

	"tripdesk/internal/wallet/repository"
	"tripdesk/pkg/config"
	apperrors "tripdesk/pkg/errors"
	"tripdesk/pkg/model"

	"github.com/google/uuid"
)

type WalletService interface {
	Balance(ctx context.Context, userID string) (int64, error)
	Debit(ctx context.Context, userID string, amount int64, bookingID, reason string) error
	Credit(ctx context.Context, userID string, amount int64, bookingID, reason string) error
	Entries(ctx context.Context, userID string, limit int, offset int64) ([]*model.WalletEntry, error)
}

type walletService struct {
	repo repository.WalletRepository
	cfg  *config.Config
}

func NewWalletService(repo repository.WalletRepository, cfg *config.Config) WalletService {
	return &walletService{repo: repo, cfg: cfg}
}

func (s *walletService) Balance(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, apperrors.InvalidInput("User ID cannot be empty")
	}

	balance, err := s.repo.Balance(ctx, userID)
	if err != nil {
		return 0, apperrors.Internal("Failed to read wallet balance", err)
	}
	return balance, nil
}

func (s *walletService) Debit(ctx context.Context, userID string, amount int64, bookingID, reason string) error {
	if userID == "" {
		return apperrors.InvalidInput("User ID cannot be empty")
	}
	if amount <= 0 {
		return apperrors.InvalidInput("Debit amount must be positive")
	}

	entry := &model.WalletEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Amount:    amount,
		BookingID: bookingID,
		Reason:    reason,
	}

	if err := s.repo.Debit(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return apperrors.InsufficientFunds("Wallet balance is insufficient for this payment")
		}
		s.cfg.Log.Error("Failed to debit wallet", "user_id", userID, "amount", amount, "error", err)
		return apperrors.Internal("Failed to debit wallet", err)
	}

	s.cfg.Log.Info("Wallet debited", "user_id", userID, "amount", amount, "booking_id", bookingID, "reason", reason)
	return nil
}

func (s *walletService) Credit(ctx context.Context, userID string, amount int64, bookingID, reason string) error {
	if userID == "" {
		return apperrors.InvalidInput("User ID cannot be empty")
	}
	if amount <= 0 {
		return apperrors.InvalidInput("Credit amount must be positive")
	}

	entry := &model.WalletEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Amount:    amount,
		BookingID: bookingID,
		Reason:    reason,
	}

	if err := s.repo.Credit(ctx, entry); err != nil {
		s.cfg.Log.Error("Failed to credit wallet", "user_id", userID, "amount", amount, "error", err)
		return apperrors.Internal("Failed to credit wallet", err)
	}

	s.cfg.Log.Info("Wallet credited", "user_id", userID, "amount", amount, "booking_id", bookingID, "reason", reason)
	return nil
}

func (s *walletService) Entries(ctx context.Context, userID string, limit int, offset int64) ([]*model.WalletEntry, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	entries, err := s.repo.Entries(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperrors.Internal("Failed to list wallet entries", err)
	}
	return entries, nil
}
