package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Backend-Schoolhub/src/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Collection names.
const (
	SchoolsCollectionName         = "schools"
	ClassesCollectionName         = "classes"
	StudentsCollectionName        = "students"
	StaffCollectionName           = "staff"
	UsersCollectionName           = "users"
	QuizGroupsCollectionName      = "quizGroups"
	QuizSubmissionsCollectionName = "quizSubmissions"
)

var (
	client     *mongo.Client
	once       sync.Once
	connectErr error

	DB                       *mongo.Database
	SchoolCollection         *mongo.Collection
	ClassCollection          *mongo.Collection
	StudentCollection        *mongo.Collection
	StaffCollection          *mongo.Collection
	UserCollection           *mongo.Collection
	QuizGroupCollection      *mongo.Collection
	QuizSubmissionCollection *mongo.Collection
)

// ConnectMongoDB connects once and binds the collection handles.
func ConnectMongoDB(uri, dbName string) error {
	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, connectErr = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if connectErr != nil {
			connectErr = fmt.Errorf("connect mongo: %w", connectErr)
			return
		}
		if connectErr = client.Ping(ctx, readpref.Primary()); connectErr != nil {
			connectErr = fmt.Errorf("ping mongo: %w", connectErr)
			return
		}

		bind(client.Database(dbName))
		logger.Log.Info("✅ MongoDB connected", zap.String("database", dbName))
	})
	return connectErr
}

func bind(db *mongo.Database) {
	DB = db
	SchoolCollection = db.Collection(SchoolsCollectionName)
	ClassCollection = db.Collection(ClassesCollectionName)
	StudentCollection = db.Collection(StudentsCollectionName)
	StaffCollection = db.Collection(StaffCollectionName)
	UserCollection = db.Collection(UsersCollectionName)
	QuizGroupCollection = db.Collection(QuizGroupsCollectionName)
	QuizSubmissionCollection = db.Collection(QuizSubmissionsCollectionName)
}

// Disconnect closes the client if it was opened.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
