// internal/dataset/mongo.go
package dataset

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	ErrNoRecords         = errors.New("no records in collection")
	ErrPreviewNotEnabled = errors.New("raw record preview is not configured")
)

// RecordPreviewer returns one raw source record rendered as text.
type RecordPreviewer interface {
	PreviewRecord(ctx context.Context) (string, error)
}

// MongoPreviewer reads raw listing documents from a MongoDB collection.
type MongoPreviewer struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoPreviewer connects to uri and verifies the server is reachable.
func NewMongoPreviewer(ctx context.Context, uri, database, collection string) (*MongoPreviewer, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoPreviewer{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// PreviewRecord returns the first document of the collection as relaxed
// extended JSON.
func (p *MongoPreviewer) PreviewRecord(ctx context.Context) (string, error) {
	var doc bson.M
	if err := p.collection.FindOne(ctx, bson.D{}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrNoRecords
		}
		return "", fmt.Errorf("find raw record: %w", err)
	}

	out, err := bson.MarshalExtJSONIndent(doc, false, false, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode raw record: %w", err)
	}
	return string(out), nil
}

func (p *MongoPreviewer) Close(ctx context.Context) error {
	return p.client.Disconnect(ctx)
}

// DisabledPreviewer is used when no document store is configured.
type DisabledPreviewer struct{}

func (DisabledPreviewer) PreviewRecord(context.Context) (string, error) {
	return "", ErrPreviewNotEnabled
}
