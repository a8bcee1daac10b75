package mongodb

import (
	// Go Internal Packages
	"context"
	stderrors "errors"

	// Local Packages
	errors "network-ops/errors"
	models "network-ops/models"

	// External Packages
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UsersRepository struct {
	Client     *mongo.Client
	Database   string
	Collection string
}

func NewUsersRepository(client *mongo.Client, database string) *UsersRepository {
	return &UsersRepository{Client: client, Database: database, Collection: "users"}
}

// FindUser loads a user with its current rank.
func (r *UsersRepository) FindUser(ctx context.Context, username string) (models.User, error) {
	var user models.User
	collection := r.Client.Database(r.Database).Collection(r.Collection)
	err := collection.FindOne(ctx, bson.M{"_id": username}).Decode(&user)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, errors.NotFoundErr("user", username)
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}
