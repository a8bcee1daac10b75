package mongodb

import (
	// Go Internal Packages
	"context"

	// Local Packages
	models "network-ops/models"

	// External Packages
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DownlineRepository reads the flat downline listing. Each document carries the
// root it was computed for, so one query returns a user's whole downline.
type DownlineRepository struct {
	Client     *mongo.Client
	Database   string
	Collection string
}

func NewDownlineRepository(client *mongo.Client, database string) *DownlineRepository {
	return &DownlineRepository{Client: client, Database: database, Collection: "downline"}
}

func (r *DownlineRepository) FetchDownline(ctx context.Context, rootUsername string) ([]models.DownlineRecord, error) {
	collection := r.Client.Database(r.Database).Collection(r.Collection)
	cursor, err := collection.Find(ctx, bson.M{"root": rootUsername})
	if err != nil {
		return nil, err
	}

	records := make([]models.DownlineRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
