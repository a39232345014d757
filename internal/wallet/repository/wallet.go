package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripdesk/pkg/config"
	mongotx "tripdesk/pkg/db/mongo"
	"tripdesk/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	WalletCollectionName = "Wallets"
	LedgerCollectionName = "WalletEntries"
)

var ErrInsufficientBalance = errors.New("wallet balance insufficient")

type WalletRepository interface {
	Balance(ctx context.Context, userID string) (int64, error)
	Debit(ctx context.Context, entry *model.WalletEntry) error
	Credit(ctx context.Context, entry *model.WalletEntry) error
	Entries(ctx context.Context, userID string, limit int, offset int64) ([]*model.WalletEntry, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoWalletRepository struct {
	cfg       *config.Config
	wallets   *mongo.Collection
	ledger    *mongo.Collection
	txManager mongotx.TransactionManager
}

func NewMongoWalletRepository(cfg *config.Config) WalletRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoWalletRepository{
		cfg:       cfg,
		wallets:   db.Collection(WalletCollectionName),
		ledger:    db.Collection(LedgerCollectionName),
		txManager: mongotx.NewTransactionManager(cfg.Client.Mongo.Client),
	}
}

func (r *mongoWalletRepository) Balance(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var wallet model.Wallet
	err := r.wallets.FindOne(ctx, bson.M{"_id": userID}).Decode(&wallet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read wallet: %w", err)
	}
	return wallet.Balance, nil
}

// Debit atomically decrements the balance, failing when it would go
// negative, and appends the matching ledger entry.
func (r *mongoWalletRepository) Debit(ctx context.Context, entry *model.WalletEntry) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	entry.Type = model.WalletDebit
	entry.CreatedAt = now

	filter := bson.M{"_id": entry.UserID, "balance": bson.M{"$gte": entry.Amount}}
	update := bson.M{
		"$inc": bson.M{"balance": -entry.Amount},
		"$set": bson.M{"updated_at": now},
	}

	result, err := r.wallets.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to debit wallet: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrInsufficientBalance
	}

	if _, err := r.ledger.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to record wallet debit: %w", err)
	}
	return nil
}

// Credit increments the balance, creating the wallet on first use, and
// appends the matching ledger entry.
func (r *mongoWalletRepository) Credit(ctx context.Context, entry *model.WalletEntry) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	entry.Type = model.WalletCredit
	entry.CreatedAt = now

	update := bson.M{
		"$inc": bson.M{"balance": entry.Amount},
		"$set": bson.M{"updated_at": now},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.wallets.UpdateOne(ctx, bson.M{"_id": entry.UserID}, update, opts); err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}

	if _, err := r.ledger.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to record wallet credit: %w", err)
	}
	return nil
}

func (r *mongoWalletRepository) Entries(ctx context.Context, userID string, limit int, offset int64) ([]*model.WalletEntry, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.ledger.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find wallet entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*model.WalletEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode wallet entries: %w", err)
	}
	return entries, nil
}

func (r *mongoWalletRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func (r *mongoWalletRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
