package repository

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"popolo/internal/models"
)

// PortfolioRepository provides Mongo-backed persistence for assembled
// portfolio documents, keyed by destination name so a rerun replaces the
// previous version.
type PortfolioRepository struct {
	col *mongo.Collection
}

// NewPortfolioRepository returns a PortfolioRepository operating on the
// "portfolios" collection.
func NewPortfolioRepository(db *mongo.Database) *PortfolioRepository {
	return &PortfolioRepository{
		col: db.Collection("portfolios"),
	}
}

// Save inserts or replaces the portfolio stored under name.
func (r *PortfolioRepository) Save(ctx context.Context, name, content string) error {
	doc := models.Portfolio{
		ID:        name,
		Content:   content,
		CreatedAt: time.Now(),
	}

	_, err := r.col.ReplaceOne(
		ctx,
		bson.M{"_id": name},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		log.Printf("[Portfolio Repository] upsert %s failed: %v", name, err)
		return err
	}
	log.Printf("[Portfolio Repository] saved %s (%d bytes)", name, len(content))
	return nil
}

// Find returns the stored portfolio for name. A missing document comes back
// as an empty Portfolio and a nil error, so callers can treat "never
// generated" as a normal state.
func (r *PortfolioRepository) Find(ctx context.Context, name string) (models.Portfolio, error) {
	var p models.Portfolio
	err := r.col.FindOne(ctx, bson.M{"_id": name}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.Portfolio{}, nil
	}
	if err != nil {
		return models.Portfolio{}, err
	}
	return p, nil
}
