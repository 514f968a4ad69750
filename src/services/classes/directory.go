package classes

import (
	"context"
	"time"

	"Backend-Schoolhub/src/database"
	"Backend-Schoolhub/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDirectory reads classes and their embedded sections.
type MongoDirectory struct {
	col *mongo.Collection
}

func NewMongoDirectory(db *mongo.Database) *MongoDirectory {
	return &MongoDirectory{col: db.Collection(database.ClassesCollectionName)}
}

// CountOwned counts how many of classIDs belong to schoolID.
func (d *MongoDirectory) CountOwned(ctx context.Context, schoolID primitive.ObjectID, classIDs []primitive.ObjectID) (int64, error) {
	if len(classIDs) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return d.col.CountDocuments(ctx, ownedFilter(schoolID, classIDs))
}

// Lookup loads the classes referenced directly or through one of their sections.
func (d *MongoDirectory) Lookup(ctx context.Context, classIDs, sectionIDs []primitive.ObjectID) (map[primitive.ObjectID]models.Class, error) {
	out := map[primitive.ObjectID]models.Class{}
	filter := lookupFilter(classIDs, sectionIDs)
	if filter == nil {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	cursor, err := d.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var found []models.Class
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}
	for _, c := range found {
		out[c.ID] = c
	}
	return out, nil
}

func ownedFilter(schoolID primitive.ObjectID, classIDs []primitive.ObjectID) bson.M {
	return bson.M{"_id": bson.M{"$in": classIDs}, "schoolId": schoolID}
}

func lookupFilter(classIDs, sectionIDs []primitive.ObjectID) bson.M {
	var or []bson.M
	if len(classIDs) > 0 {
		or = append(or, bson.M{"_id": bson.M{"$in": classIDs}})
	}
	if len(sectionIDs) > 0 {
		or = append(or, bson.M{"sections._id": bson.M{"$in": sectionIDs}})
	}
	if len(or) == 0 {
		return nil
	}
	return bson.M{"$or": or}
}
