package auth

import (
	"context"
	"errors"
	"time"

	"Backend-Schoolhub/src/database"
	"Backend-Schoolhub/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAccounts reads users and profiles from their collections.
type MongoAccounts struct {
	users    *mongo.Collection
	schools  *mongo.Collection
	staff    *mongo.Collection
	students *mongo.Collection
}

func NewMongoAccounts(db *mongo.Database) *MongoAccounts {
	return &MongoAccounts{
		users:    db.Collection(database.UsersCollectionName),
		schools:  db.Collection(database.SchoolsCollectionName),
		staff:    db.Collection(database.StaffCollectionName),
		students: db.Collection(database.StudentsCollectionName),
	}
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.M) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out T
	if err := col.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (a *MongoAccounts) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, a.users, bson.M{"email": email})
}

func (a *MongoAccounts) FindSchool(ctx context.Context, id primitive.ObjectID) (*models.School, error) {
	return findOne[models.School](ctx, a.schools, bson.M{"_id": id})
}

func (a *MongoAccounts) FindStaff(ctx context.Context, id primitive.ObjectID) (*models.Staff, error) {
	return findOne[models.Staff](ctx, a.staff, bson.M{"_id": id})
}

func (a *MongoAccounts) FindStudent(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	return findOne[models.Student](ctx, a.students, bson.M{"_id": id})
}
