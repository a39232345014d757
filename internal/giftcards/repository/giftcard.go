package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripdesk/pkg/config"
	"tripdesk/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const CollectionName = "GiftCards"

var (
	ErrNotFound         = errors.New("gift card not found")
	ErrBalanceExhausted = errors.New("gift card balance insufficient")
)

type GiftCardRepository interface {
	FindByCode(ctx context.Context, code string) (*model.GiftCard, error)
	Redeem(ctx context.Context, code string, amount int64) error
	Restore(ctx context.Context, code string, amount int64) error
}

type mongoGiftCardRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoGiftCardRepository(cfg *config.Config) GiftCardRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoGiftCardRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoGiftCardRepository) FindByCode(ctx context.Context, code string) (*model.GiftCard, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var card model.GiftCard
	err := r.collection.FindOne(ctx, bson.M{"_id": code}).Decode(&card)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find gift card: %w", err)
	}
	return &card, nil
}

// Redeem atomically deducts amount from the card, failing when the card is
// inactive or the balance would go negative.
func (r *mongoGiftCardRepository) Redeem(ctx context.Context, code string, amount int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"_id":     code,
		"active":  true,
		"balance": bson.M{"$gte": amount},
	}
	update := bson.M{
		"$inc": bson.M{"balance": -amount},
		"$set": bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to redeem gift card: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrBalanceExhausted
	}
	return nil
}

// Restore returns a previously redeemed amount to the card. Used when a
// later pipeline leg fails and the redemption must be unwound.
func (r *mongoGiftCardRepository) Restore(ctx context.Context, code string, amount int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"balance": amount},
		"$set": bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": code}, update)
	if err != nil {
		return fmt.Errorf("failed to restore gift card: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
