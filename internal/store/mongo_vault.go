package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/MKhiriev/go-pass-locker/internal/crypto"
	"github.com/MKhiriev/go-pass-locker/internal/logger"
	"github.com/MKhiriev/go-pass-locker/models"
)

const vaultRecordsCollection = "vault_records"

// mongoRecord is the document layout of a vault record.
type mongoRecord struct {
	ID        string    `bson:"_id"`
	OwnerID   string    `bson:"owner_id"`
	Website   string    `bson:"website"`
	Username  string    `bson:"username"`
	Envelope  []byte    `bson:"envelope,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// mongoVaultStore is the MongoDB implementation of [VaultStore].
type mongoVaultStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoVaultStore returns a [VaultStore] over the vault_records
// collection of database and makes sure its indexes exist.
func NewMongoVaultStore(ctx context.Context, client *mongo.Client, database string) (VaultStore, error) {
	s := &mongoVaultStore{
		client:     client,
		collection: client.Database(database).Collection(vaultRecordsCollection),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *mongoVaultStore) ensureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("owner_created_idx"),
	})
	if err != nil {
		return wrapMongoError(fmt.Errorf("error creating indexes: %w", err))
	}
	return nil
}

func (s *mongoVaultStore) Create(ctx context.Context, record models.Record) error {
	doc, err := toMongoRecord(record)
	if err != nil {
		return err
	}

	if _, err = s.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %w", ErrDuplicateID, err)
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoVaultStore.Create").
			Str("owner_id", record.OwnerID).
			Msg("failed to insert vault record")
		return wrapMongoError(err)
	}

	return nil
}

func (s *mongoVaultStore) Get(ctx context.Context, ownerID, id string) (models.Record, error) {
	var doc mongoRecord
	err := s.collection.FindOne(ctx, ownedFilter(ownerID, id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Record{}, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoVaultStore.Get").
			Str("owner_id", ownerID).
			Str("record_id", id).
			Msg("failed to find vault record")
		return models.Record{}, wrapMongoError(err)
	}

	return fromMongoRecord(doc)
}

func (s *mongoVaultStore) Update(ctx context.Context, record models.Record) error {
	envelope, err := crypto.MarshalEnvelope(record.Envelope)
	if err != nil {
		return err
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "website", Value: record.Website},
		{Key: "username", Value: record.Username},
		{Key: "envelope", Value: envelope},
		{Key: "updated_at", Value: record.UpdatedAt},
	}}}

	result, err := s.collection.UpdateOne(ctx, ownedFilter(record.OwnerID, record.ID), update)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoVaultStore.Update").
			Str("owner_id", record.OwnerID).
			Str("record_id", record.ID).
			Msg("failed to update vault record")
		return wrapMongoError(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *mongoVaultStore) Delete(ctx context.Context, ownerID, id string) error {
	result, err := s.collection.DeleteOne(ctx, ownedFilter(ownerID, id))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoVaultStore.Delete").
			Str("owner_id", ownerID).
			Str("record_id", id).
			Msg("failed to delete vault record")
		return wrapMongoError(err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *mongoVaultStore) Search(ctx context.Context, ownerID, query string) ([]models.RecordView, error) {
	return s.findViews(ctx, searchFilter(ownerID, query))
}

func (s *mongoVaultStore) ListAll(ctx context.Context, ownerID string) ([]models.RecordView, error) {
	return s.findViews(ctx, searchFilter(ownerID, ""))
}

func (s *mongoVaultStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

func (s *mongoVaultStore) findViews(ctx context.Context, filter bson.D) ([]models.RecordView, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.D{{Key: "envelope", Value: 0}})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "mongoVaultStore.findViews").Msg("failed to list vault records")
		return nil, wrapMongoError(err)
	}

	var docs []mongoRecord
	if err = cursor.All(ctx, &docs); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "mongoVaultStore.findViews").Msg("failed to decode vault records")
		return nil, wrapMongoError(err)
	}

	views := make([]models.RecordView, 0, len(docs))
	for _, doc := range docs {
		views = append(views, models.RecordView{
			ID:        doc.ID,
			Website:   doc.Website,
			Username:  doc.Username,
			CreatedAt: doc.CreatedAt,
			UpdatedAt: doc.UpdatedAt,
		})
	}

	return views, nil
}

func ownedFilter(ownerID, id string) bson.D {
	return bson.D{{Key: "_id", Value: id}, {Key: "owner_id", Value: ownerID}}
}

// searchFilter matches query literally and case-insensitively against
// website or username.
func searchFilter(ownerID, query string) bson.D {
	filter := bson.D{{Key: "owner_id", Value: ownerID}}
	if query == "" {
		return filter
	}

	pattern := bson.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return append(filter, bson.E{Key: "$or", Value: bson.A{
		bson.D{{Key: "website", Value: pattern}},
		bson.D{{Key: "username", Value: pattern}},
	}})
}

func toMongoRecord(record models.Record) (mongoRecord, error) {
	envelope, err := crypto.MarshalEnvelope(record.Envelope)
	if err != nil {
		return mongoRecord{}, err
	}

	return mongoRecord{
		ID:        record.ID,
		OwnerID:   record.OwnerID,
		Website:   record.Website,
		Username:  record.Username,
		Envelope:  envelope,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func fromMongoRecord(doc mongoRecord) (models.Record, error) {
	envelope, err := crypto.UnmarshalEnvelope(doc.Envelope)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrCorruptedRecord, err)
	}

	return models.Record{
		ID:        doc.ID,
		OwnerID:   doc.OwnerID,
		Website:   doc.Website,
		Username:  doc.Username,
		Envelope:  envelope,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

// wrapMongoError marks network failures and timeouts as [ErrUnavailable].
func wrapMongoError(err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}
