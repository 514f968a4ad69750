package classes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLookupFilter(t *testing.T) {
	class := primitive.NewObjectID()
	section := primitive.NewObjectID()

	assert.Nil(t, lookupFilter(nil, nil))
	assert.Equal(t, bson.M{"$or": []bson.M{
		{"_id": bson.M{"$in": []primitive.ObjectID{class}}},
		{"sections._id": bson.M{"$in": []primitive.ObjectID{section}}},
	}}, lookupFilter([]primitive.ObjectID{class}, []primitive.ObjectID{section}))
}

func TestOwnedFilter(t *testing.T) {
	school := primitive.NewObjectID()
	ids := []primitive.ObjectID{primitive.NewObjectID()}
	assert.Equal(t, bson.M{"_id": bson.M{"$in": ids}, "schoolId": school}, ownedFilter(school, ids))
}

func TestEmptyQueriesSkipTheDatabase(t *testing.T) {
	d := &MongoDirectory{}
	n, err := d.CountOwned(context.Background(), primitive.NewObjectID(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	found, err := d.Lookup(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}
