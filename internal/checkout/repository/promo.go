package repository

import (
	"context"
	"errors"
	"fmt"

	"tripdesk/pkg/config"
	"tripdesk/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const PromoCollectionName = "PromoRules"

var ErrPromoNotFound = errors.New("promo rule not found")

type PromoRepository interface {
	FindByCode(ctx context.Context, code string) (*model.PromoRule, error)
}

type mongoPromoRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPromoRepository(cfg *config.Config) PromoRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoPromoRepository{
		cfg:        cfg,
		collection: db.Collection(PromoCollectionName),
	}
}

func (r *mongoPromoRepository) FindByCode(ctx context.Context, code string) (*model.PromoRule, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var rule model.PromoRule
	err := r.collection.FindOne(ctx, bson.M{"_id": code}).Decode(&rule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPromoNotFound
		}
		return nil, fmt.Errorf("failed to find promo rule: %w", err)
	}
	return &rule, nil
}
