package quizzes

import (
	"context"
	"errors"
	"regexp"
	"time"

	"Backend-Schoolhub/src/database"
	"Backend-Schoolhub/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const queryTimeout = 10 * time.Second

// MongoStore keeps groups and submissions in two collections; the unique
// (groupId, studentId) index lives on the submissions collection.
type MongoStore struct {
	groups      *mongo.Collection
	submissions *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		groups:      db.Collection(database.QuizGroupsCollectionName),
		submissions: db.Collection(database.QuizSubmissionsCollectionName),
	}
}

func (s *MongoStore) InsertGroup(ctx context.Context, g *models.QuizGroup) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	_, err := s.groups.InsertOne(ctx, g)
	return err
}

func (s *MongoStore) FindGroup(ctx context.Context, id primitive.ObjectID) (*models.QuizGroup, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var g models.QuizGroup
	if err := s.groups.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (s *MongoStore) ReplaceGroup(ctx context.Context, g *models.QuizGroup) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.groups.ReplaceOne(ctx, bson.M{"_id": g.ID}, g)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrGroupNotFound
	}
	return nil
}

func (s *MongoStore) DeleteGroup(ctx context.Context, id primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.groups.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// groupFilterDoc translates a GroupFilter into a Mongo query.
func groupFilterDoc(f GroupFilter) bson.M {
	filter := bson.M{}
	if f.SchoolID != nil {
		filter["schoolId"] = *f.SchoolID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	var and []bson.M
	if f.ClassID != nil {
		and = append(and, bson.M{"classIds": *f.ClassID})
	}
	if f.SectionID != nil {
		and = append(and, bson.M{"sectionIds": *f.SectionID})
	}
	if f.AudienceOnly {
		and = append(and, audienceClause("classIds", f.AudienceClassID), audienceClause("sectionIds", f.AudienceSectionID))
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		and = append(and, bson.M{"$or": []bson.M{
			{"title": pattern},
			{"description": pattern},
		}})
	}
	if len(and) > 0 {
		filter["$and"] = and
	}
	return filter
}

// audienceClause matches groups whose list is empty, or contains id when the student has one.
func audienceClause(field string, id *primitive.ObjectID) bson.M {
	open := []bson.M{
		{field: bson.M{"$exists": false}},
		{field: bson.M{"$size": 0}},
	}
	if id != nil {
		open = append(open, bson.M{field: *id})
	}
	return bson.M{"$or": open}
}

func (s *MongoStore) ListGroups(ctx context.Context, f GroupFilter, skip, limit int64) ([]models.QuizGroup, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := groupFilterDoc(f)
	total, err := s.groups.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := s.groups.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	groups := []models.QuizGroup{}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

func (s *MongoStore) FindSubmission(ctx context.Context, groupID, studentID primitive.ObjectID) (*models.QuizSubmission, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var sub models.QuizSubmission
	err := s.submissions.FindOne(ctx, bson.M{"groupId": groupID, "studentId": studentID}).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (s *MongoStore) InsertSubmission(ctx context.Context, sub *models.QuizSubmission) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	if _, err := s.submissions.InsertOne(ctx, sub); err != nil {
		return translateInsertError(err)
	}
	return nil
}

// translateInsertError maps a unique-index violation to ErrDuplicateSubmission.
func translateInsertError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSubmission
	}
	return err
}

func (s *MongoStore) CountSubmissions(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return s.submissions.CountDocuments(ctx, bson.M{"groupId": groupID})
}

func (s *MongoStore) DeleteSubmissions(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.submissions.DeleteMany(ctx, bson.M{"groupId": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// leaderboardPipeline joins students, applies the class/section filters, sorts by
// (totalMarksObtained desc, submittedAt asc) and returns the total next to one page.
func leaderboardPipeline(q LeaderboardQuery) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"groupId": q.GroupID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.StudentsCollectionName,
			"localField":   "studentId",
			"foreignField": "_id",
			"as":           "student",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$student", "preserveNullAndEmptyArrays": true}}},
	}

	match := bson.M{}
	if q.ClassID != nil {
		match["student.classId"] = *q.ClassID
	}
	if q.SectionID != nil {
		match["student.sectionId"] = *q.SectionID
	}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "totalMarksObtained", Value: -1},
			{Key: "submittedAt", Value: 1},
			{Key: "_id", Value: 1},
		}}},
		bson.D{{Key: "$facet", Value: bson.M{
			"total": bson.A{bson.M{"$count": "count"}},
			"rows": bson.A{
				bson.M{"$skip": q.Skip},
				bson.M{"$limit": q.Limit},
				bson.M{"$project": bson.M{
					"studentId":          1,
					"studentName":        "$student.name",
					"rollNumber":         "$student.rollNumber",
					"classId":            "$student.classId",
					"sectionId":          "$student.sectionId",
					"totalMarksObtained": 1,
					"totalMarks":         1,
					"submittedAt":        1,
				}},
			},
		}}},
	)
	return pipeline
}

func (s *MongoStore) Leaderboard(ctx context.Context, q LeaderboardQuery) ([]LeaderboardRow, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.submissions.Aggregate(ctx, leaderboardPipeline(q))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var out []struct {
		Total []struct {
			Count int64 `bson:"count"`
		} `bson:"total"`
		Rows []LeaderboardRow `bson:"rows"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	if len(out) == 0 || len(out[0].Total) == 0 {
		return []LeaderboardRow{}, 0, nil
	}
	return out[0].Rows, out[0].Total[0].Count, nil
}

func (s *MongoStore) ArchiveEnded(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.groups.UpdateMany(ctx,
		bson.M{"status": models.QuizStatusPublished, "endTime": bson.M{"$lt": now}},
		bson.M{"$set": bson.M{"status": models.QuizStatusArchived, "updatedAt": now}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *MongoStore) ArchivedEndedBefore(ctx context.Context, cutoff time.Time) ([]primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.groups.Find(ctx,
		bson.M{"status": models.QuizStatusArchived, "endTime": bson.M{"$lt": cutoff}},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}
