package quizzes

import (
	"errors"
	"testing"

	"Backend-Schoolhub/src/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTranslateInsertError(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}
	assert.ErrorIs(t, translateInsertError(dup), ErrDuplicateSubmission)

	other := errors.New("connection reset")
	assert.Equal(t, other, translateInsertError(other))
}

func TestLeaderboardPipeline(t *testing.T) {
	groupID := primitive.NewObjectID()

	t.Run("sorts by score then submission time", func(t *testing.T) {
		p := leaderboardPipeline(LeaderboardQuery{GroupID: groupID, Skip: 20, Limit: 10})
		require.Len(t, p, 5)

		assert.Equal(t, "$match", p[0][0].Key)
		assert.Equal(t, bson.M{"groupId": groupID}, p[0][0].Value)

		lookup := p[1][0].Value.(bson.M)
		assert.Equal(t, database.StudentsCollectionName, lookup["from"])

		assert.Equal(t, "$sort", p[3][0].Key)
		assert.Equal(t, bson.D{
			{Key: "totalMarksObtained", Value: -1},
			{Key: "submittedAt", Value: 1},
			{Key: "_id", Value: 1},
		}, p[3][0].Value)

		facet := p[4][0].Value.(bson.M)
		rows := facet["rows"].(bson.A)
		assert.Equal(t, bson.M{"$skip": int64(20)}, rows[0])
		assert.Equal(t, bson.M{"$limit": int64(10)}, rows[1])
	})

	t.Run("filters on the joined student", func(t *testing.T) {
		class := primitive.NewObjectID()
		section := primitive.NewObjectID()
		p := leaderboardPipeline(LeaderboardQuery{GroupID: groupID, ClassID: &class, SectionID: &section, Limit: 10})
		require.Len(t, p, 6)
		assert.Equal(t, "$match", p[3][0].Key)
		assert.Equal(t, bson.M{"student.classId": class, "student.sectionId": section}, p[3][0].Value)
		assert.Equal(t, "$sort", p[4][0].Key)
	})
}

func TestGroupFilterDoc(t *testing.T) {
	school := primitive.NewObjectID()
	class := primitive.NewObjectID()

	doc := groupFilterDoc(GroupFilter{SchoolID: &school, Status: "published"})
	assert.Equal(t, bson.M{"schoolId": school, "status": "published"}, doc)

	doc = groupFilterDoc(GroupFilter{AudienceOnly: true, AudienceClassID: &class, Search: "a.b"})
	and := doc["$and"].([]bson.M)
	require.Len(t, and, 3)
	assert.Equal(t, bson.M{"$or": []bson.M{
		{"classIds": bson.M{"$exists": false}},
		{"classIds": bson.M{"$size": 0}},
		{"classIds": class},
	}}, and[0])
	assert.Len(t, and[1]["$or"], 2)

	search := and[2]["$or"].([]bson.M)
	assert.Equal(t, primitive.Regex{Pattern: `a\.b`, Options: "i"}, search[0]["title"])
}
