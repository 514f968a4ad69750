package quizzes

import (
	"context"
	"errors"
	"time"

	"Backend-Schoolhub/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrGroupNotFound       = errors.New("quiz group not found")
	ErrSubmissionNotFound  = errors.New("quiz submission not found")
	ErrDuplicateSubmission = errors.New("quiz submission already exists")
)

// GroupFilter narrows a group listing. Nil ids are not applied.
type GroupFilter struct {
	SchoolID  *primitive.ObjectID
	Status    string
	ClassID   *primitive.ObjectID
	SectionID *primitive.ObjectID
	Search    string

	// Audience restricts to groups a student in this class/section may take:
	// groups whose allow-list is empty or contains the id.
	AudienceClassID   *primitive.ObjectID
	AudienceSectionID *primitive.ObjectID
	AudienceOnly      bool
}

// LeaderboardQuery selects one page of ranked submissions.
type LeaderboardQuery struct {
	GroupID   primitive.ObjectID
	ClassID   *primitive.ObjectID
	SectionID *primitive.ObjectID
	Skip      int64
	Limit     int64
}

// LeaderboardRow is a submission joined with its student.
type LeaderboardRow struct {
	SubmissionID       primitive.ObjectID  `bson:"_id"`
	StudentID          primitive.ObjectID  `bson:"studentId"`
	StudentName        string              `bson:"studentName"`
	RollNumber         string              `bson:"rollNumber"`
	ClassID            *primitive.ObjectID `bson:"classId,omitempty"`
	SectionID          *primitive.ObjectID `bson:"sectionId,omitempty"`
	TotalMarksObtained float64             `bson:"totalMarksObtained"`
	TotalMarks         float64             `bson:"totalMarks"`
	SubmittedAt        time.Time           `bson:"submittedAt"`
}

// Store persists quiz groups and submissions. InsertSubmission must return
// ErrDuplicateSubmission when (groupId, studentId) already exists.
type Store interface {
	InsertGroup(ctx context.Context, g *models.QuizGroup) error
	FindGroup(ctx context.Context, id primitive.ObjectID) (*models.QuizGroup, error)
	ReplaceGroup(ctx context.Context, g *models.QuizGroup) error
	DeleteGroup(ctx context.Context, id primitive.ObjectID) (int64, error)
	ListGroups(ctx context.Context, f GroupFilter, skip, limit int64) ([]models.QuizGroup, int64, error)

	FindSubmission(ctx context.Context, groupID, studentID primitive.ObjectID) (*models.QuizSubmission, error)
	InsertSubmission(ctx context.Context, s *models.QuizSubmission) error
	CountSubmissions(ctx context.Context, groupID primitive.ObjectID) (int64, error)
	DeleteSubmissions(ctx context.Context, groupID primitive.ObjectID) (int64, error)
	Leaderboard(ctx context.Context, q LeaderboardQuery) ([]LeaderboardRow, int64, error)

	ArchiveEnded(ctx context.Context, now time.Time) (int64, error)
	ArchivedEndedBefore(ctx context.Context, cutoff time.Time) ([]primitive.ObjectID, error)
}

// ClassDirectory is the Class/Section lookup collaborator.
type ClassDirectory interface {
	CountOwned(ctx context.Context, schoolID primitive.ObjectID, classIDs []primitive.ObjectID) (int64, error)
	// Lookup returns classes matching any of classIDs or owning any of sectionIDs, keyed by class id.
	Lookup(ctx context.Context, classIDs, sectionIDs []primitive.ObjectID) (map[primitive.ObjectID]models.Class, error)
}
