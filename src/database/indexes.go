package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UniqueSubmissionIndex is the one-submission-per-student-per-quiz constraint.
const UniqueSubmissionIndex = "uniq_group_student"

// IndexModels lists the indexes each collection needs.
func IndexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		QuizSubmissionsCollectionName: {
			{
				Keys:    bson.D{{Key: "groupId", Value: 1}, {Key: "studentId", Value: 1}},
				Options: options.Index().SetUnique(true).SetName(UniqueSubmissionIndex),
			},
			{
				Keys:    bson.D{{Key: "groupId", Value: 1}, {Key: "totalMarksObtained", Value: -1}, {Key: "submittedAt", Value: 1}},
				Options: options.Index().SetName("leaderboard"),
			},
		},
		QuizGroupsCollectionName: {
			{
				Keys:    bson.D{{Key: "schoolId", Value: 1}, {Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("school_status"),
			},
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "endTime", Value: 1}},
				Options: options.Index().SetName("status_end"),
			},
		},
		UsersCollectionName: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_email"),
			},
		},
		ClassesCollectionName: {
			{
				Keys:    bson.D{{Key: "schoolId", Value: 1}},
				Options: options.Index().SetName("school"),
			},
		},
	}
}

// EnsureIndexes creates missing indexes. Creating an existing index is a no-op in MongoDB.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range IndexModels() {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
