package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSubmissionIndexIsUniqueOnGroupAndStudent(t *testing.T) {
	models := IndexModels()[QuizSubmissionsCollectionName]
	require.NotEmpty(t, models)

	var found bool
	for _, m := range models {
		if m.Options == nil || m.Options.Name == nil || *m.Options.Name != UniqueSubmissionIndex {
			continue
		}
		found = true
		require.NotNil(t, m.Options.Unique)
		assert.True(t, *m.Options.Unique)
		assert.Equal(t, bson.D{{Key: "groupId", Value: 1}, {Key: "studentId", Value: 1}}, m.Keys)
	}
	assert.True(t, found, "unique submission index missing")
}
