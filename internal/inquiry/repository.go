// Package inquiry stores contact-form submissions and notifies the shop.
package inquiry

import (
	"context"
	"errors"
	"fmt"

	"github.com/fjod/frocone/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrInquiryNotFound = errors.New("inquiry not found")

type Repository interface {
	Create(ctx context.Context, inq *domain.ContactInquiry) error
	GetByID(ctx context.Context, id string) (*domain.ContactInquiry, error)
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection("contact_inquiries")}
}

func (m *MongoRepository) Create(ctx context.Context, inq *domain.ContactInquiry) error {
	if _, err := m.collection.InsertOne(ctx, inq); err != nil {
		return fmt.Errorf("failed to insert inquiry: %w", err)
	}
	return nil
}

func (m *MongoRepository) GetByID(ctx context.Context, id string) (*domain.ContactInquiry, error) {
	var inq domain.ContactInquiry
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&inq)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("failed to get inquiry: %w", err)
	}
	return &inq, nil
}

func (m *MongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("email")},
	}

	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
