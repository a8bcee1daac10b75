package mongodb

import (
	// Go Internal Packages
	"context"
	stderrors "errors"

	// Local Packages
	errors "network-ops/errors"
	models "network-ops/models"

	// External Packages
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OperationsRepository is the authoritative operation store.
type OperationsRepository struct {
	Client     *mongo.Client
	Database   string
	Collection string
}

func NewOperationsRepository(client *mongo.Client, database string) *OperationsRepository {
	return &OperationsRepository{Client: client, Database: database, Collection: "operations"}
}

func (r *OperationsRepository) collection() *mongo.Collection {
	return r.Client.Database(r.Database).Collection(r.Collection)
}

// Insert assigns a fresh id and stores op as PENDING.
func (r *OperationsRepository) Insert(ctx context.Context, op models.Operation) (models.Operation, error) {
	op.ID = uuid.NewString()
	op.State = models.StatePending

	_, err := r.collection().InsertOne(ctx, op.Transform())
	if err != nil {
		return models.Operation{}, err
	}
	return op, nil
}

// Get fetches a single operation by id
func (r *OperationsRepository) Get(ctx context.Context, id string) (models.Operation, error) {
	var doc models.MongoOperation
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return models.Operation{}, errors.NotFoundErr("operation", id)
	}
	if err != nil {
		return models.Operation{}, err
	}
	return doc.ToOperation(), nil
}

// Find lists operations newest first, one zero-indexed page at a time.
func (r *OperationsRepository) Find(ctx context.Context, filter models.OperationFilter, page models.Page) (models.OperationPage, error) {
	query := bson.M{}
	if filter.Kind != "" {
		query["kind"] = string(filter.Kind)
	}
	if filter.State != "" {
		query["state"] = string(filter.State)
	}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}

	coll := r.collection()
	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return models.OperationPage{}, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(page.Number) * int64(page.Size)).
		SetLimit(int64(page.Size))
	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return models.OperationPage{}, err
	}

	var docs []models.MongoOperation
	if err := cursor.All(ctx, &docs); err != nil {
		return models.OperationPage{}, err
	}

	items := make([]models.Operation, 0, len(docs))
	for i := range docs {
		items = append(items, docs[i].ToOperation())
	}
	return models.OperationPage{Items: items, Number: page.Number, Size: page.Size, Total: total}, nil
}

// CompareAndSwap writes next only while the stored state is still from, so of
// two racing reviewers only the first succeeds.
func (r *OperationsRepository) CompareAndSwap(ctx context.Context, id string, from models.State, next models.Operation) (models.Operation, error) {
	filter, update := casQuery(id, from, next)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	coll := r.collection()
	var out models.MongoOperation
	err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		n, cerr := coll.CountDocuments(ctx, bson.M{"_id": id})
		if cerr != nil {
			return models.Operation{}, cerr
		}
		if n == 0 {
			return models.Operation{}, errors.NotFoundErr("operation", id)
		}
		return models.Operation{}, errors.TransitionErr(id, string(from), string(next.State))
	}
	if err != nil {
		return models.Operation{}, err
	}
	return out.ToOperation(), nil
}

// casQuery matches the record only while it is still in state from, and touches
// nothing but the review fields.
func casQuery(id string, from models.State, next models.Operation) (bson.M, bson.M) {
	doc := next.Transform()
	filter := bson.M{"_id": id, "state": string(from)}
	update := bson.M{"$set": bson.M{
		"state":            doc.State,
		"rejection_reason": doc.RejectionReason,
		"comment":          doc.Comment,
		"updated_at":       doc.UpdatedAt,
	}}
	return filter, update
}
