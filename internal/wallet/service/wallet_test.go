package service

import (
	"context"
	"testing"

	"tripdesk/internal/wallet/repository"
	"tripdesk/pkg/config"
	mongotx "tripdesk/pkg/db/mongo"
	apperrors "tripdesk/pkg/errors"
	"tripdesk/pkg/logger"
	"tripdesk/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockWalletRepository struct {
	balance  int64
	debits   []*model.WalletEntry
	credits  []*model.WalletEntry
	debitErr error
}

func (m *mockWalletRepository) Balance(ctx context.Context, userID string) (int64, error) {
	return m.balance, nil
}

func (m *mockWalletRepository) Debit(ctx context.Context, entry *model.WalletEntry) error {
	if m.debitErr != nil {
		return m.debitErr
	}
	m.debits = append(m.debits, entry)
	return nil
}

func (m *mockWalletRepository) Credit(ctx context.Context, entry *model.WalletEntry) error {
	m.credits = append(m.credits, entry)
	return nil
}

func (m *mockWalletRepository) Entries(ctx context.Context, userID string, limit int, offset int64) ([]*model.WalletEntry, error) {
	return append(m.debits, m.credits...), nil
}

func (m *mockWalletRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	var sc mongo.SessionContext
	return fn(sc)
}

func testWalletService(repo *mockWalletRepository) *walletService {
	return &walletService{
		repo: repo,
		cfg: &config.Config{
			Log: logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"}),
		},
	}
}

func TestDebitRecordsLedgerEntry(t *testing.T) {
	repo := &mockWalletRepository{balance: 5000}
	s := testWalletService(repo)

	err := s.Debit(context.Background(), "user-1", 1200, "book-1", "booking payment")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.debits) != 1 {
		t.Fatalf("expected one debit entry, got %d", len(repo.debits))
	}
	entry := repo.debits[0]
	if entry.ID == "" {
		t.Error("expected a generated entry ID")
	}
	if entry.Amount != 1200 || entry.BookingID != "book-1" || entry.Reason != "booking payment" {
		t.Errorf("unexpected entry: %+v", entry)
	}
}

func TestDebitInsufficientBalance(t *testing.T) {
	repo := &mockWalletRepository{debitErr: repository.ErrInsufficientBalance}
	s := testWalletService(repo)

	err := s.Debit(context.Background(), "user-1", 9999, "book-1", "booking payment")
	if !apperrors.HasCode(err, apperrors.CodeInsufficientFunds) {
		t.Errorf("expected INSUFFICIENT_FUNDS, got %v", err)
	}
}

func TestDebitRejectsNonPositiveAmount(t *testing.T) {
	s := testWalletService(&mockWalletRepository{})

	for _, amount := range []int64{0, -100} {
		err := s.Debit(context.Background(), "user-1", amount, "book-1", "booking payment")
		if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
			t.Errorf("expected INVALID_INPUT for amount %d, got %v", amount, err)
		}
	}
}

func TestCreditRecordsLedgerEntry(t *testing.T) {
	repo := &mockWalletRepository{}
	s := testWalletService(repo)

	err := s.Credit(context.Background(), "user-1", 2500, "book-1", "booking cancellation refund")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.credits) != 1 || repo.credits[0].Amount != 2500 {
		t.Errorf("expected one credit of 2500, got %+v", repo.credits)
	}
}

func TestBalanceRequiresUser(t *testing.T) {
	s := testWalletService(&mockWalletRepository{})

	if _, err := s.Balance(context.Background(), ""); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for empty user, got %v", err)
	}
}
