package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/paperdesk/internal/domain/models"
)

// Repository defines the durable persistence operations backed by MongoDB.
type Repository interface {
	SaveFinancialSnapshot(ctx context.Context, snapshot models.FinancialSnapshot) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

// SaveFinancialSnapshot persists a scheduler-generated financial snapshot.
func (r *MongoDBRepository) SaveFinancialSnapshot(ctx context.Context, snapshot models.FinancialSnapshot) error {
	collection := r.client.Database(r.dbName).Collection("financial_snapshots")
	if _, err := collection.InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to insert financial snapshot: %w", err)
	}
	return nil
}

// LedgerStore returns a durable ledger store sharing this connection.
func (r *MongoDBRepository) LedgerStore() *LedgerStore {
	return &LedgerStore{client: r.client, dbName: r.dbName}
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
