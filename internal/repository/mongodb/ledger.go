package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/paperdesk/internal/domain/models"
	"github.com/mamadbah2/paperdesk/internal/repository/ledger"
)

const (
	transactionsCollection = "transactions"
	countersCollection     = "counters"
)

// transactionDoc is the stored shape of a ledger record. Amounts are kept as
// fixed-point strings so no precision is lost in BSON.
type transactionDoc struct {
	ID       int64     `bson:"id"`
	ItemName string    `bson:"item_name,omitempty"`
	Type     string    `bson:"transaction_type"`
	Units    int       `bson:"units,omitempty"`
	Amount   string    `bson:"price"`
	Date     time.Time `bson:"transaction_date"`
}

// LedgerStore is the MongoDB-backed implementation of ledger.Store. Ids come
// from a counters document so they stay monotonically increasing across
// restarts.
type LedgerStore struct {
	client *mongo.Client
	dbName string
}

var _ ledger.Store = (*LedgerStore)(nil)

// Append validates the record, assigns the next sequence id and inserts it.
func (s *LedgerStore) Append(ctx context.Context, tx models.Transaction) (int64, error) {
	if !tx.Type.Valid() {
		return 0, ledger.ErrInvalidTransactionType
	}

	id, err := s.nextID(ctx)
	if err != nil {
		return 0, fmt.Errorf("allocate transaction id: %w", err)
	}

	doc := transactionDoc{
		ID:       id,
		ItemName: tx.ItemName,
		Type:     string(tx.Type),
		Units:    tx.Units,
		Amount:   tx.Amount.String(),
		Date:     tx.Date,
	}

	collection := s.client.Database(s.dbName).Collection(transactionsCollection)
	if _, err := collection.InsertOne(ctx, doc); err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	return id, nil
}

// Scan returns all records with date on or before the cutoff, optionally
// narrowed to one item, ordered by id.
func (s *LedgerStore) Scan(ctx context.Context, filter ledger.Filter) ([]models.Transaction, error) {
	query := bson.M{}
	if !filter.AsOf.IsZero() {
		query["transaction_date"] = bson.M{"$lte": filter.AsOf}
	}
	if filter.ItemName != "" {
		query["item_name"] = filter.ItemName
	}

	collection := s.client.Database(s.dbName).Collection(transactionsCollection)
	cursor, err := collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("scan transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var result []models.Transaction
	for cursor.Next(ctx) {
		var doc transactionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}

		amount, err := decimal.NewFromString(doc.Amount)
		if err != nil {
			return nil, fmt.Errorf("parse transaction amount %q: %w", doc.Amount, err)
		}

		result = append(result, models.Transaction{
			ID:       doc.ID,
			ItemName: doc.ItemName,
			Type:     models.TransactionType(doc.Type),
			Units:    doc.Units,
			Amount:   amount,
			Date:     doc.Date,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("scan transactions: %w", err)
	}
	return result, nil
}

func (s *LedgerStore) nextID(ctx context.Context) (int64, error) {
	collection := s.client.Database(s.dbName).Collection(countersCollection)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := collection.FindOneAndUpdate(ctx,
		bson.M{"_id": transactionsCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}
