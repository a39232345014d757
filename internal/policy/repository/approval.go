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
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "ApprovalRequests"

var ErrNotFound = errors.New("approval request not found")

type ApprovalRepository interface {
	Create(ctx context.Context, req *model.ApprovalRequest) error
	FindPending(ctx context.Context, limit int, offset int64) ([]*model.ApprovalRequest, error)
	CountPending(ctx context.Context) (int64, error)
}

type mongoApprovalRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoApprovalRepository(cfg *config.Config) ApprovalRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoApprovalRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoApprovalRepository) Create(ctx context.Context, req *model.ApprovalRequest) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	req.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create approval request: %w", err)
	}
	return nil
}

func (r *mongoApprovalRepository) FindPending(ctx context.Context, limit int, offset int64) ([]*model.ApprovalRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"status": model.ApprovalPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find approval requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*model.ApprovalRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode approval requests: %w", err)
	}
	return requests, nil
}

func (r *mongoApprovalRepository) CountPending(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"status": model.ApprovalPending})
	if err != nil {
		return 0, fmt.Errorf("failed to count approval requests: %w", err)
	}
	return count, nil
}
