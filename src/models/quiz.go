package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quiz group lifecycle states.
const (
	QuizStatusDraft     = "draft"
	QuizStatusPublished = "published"
	QuizStatusArchived  = "archived"
)

// Question variants.
const (
	QuestionTypeMCQ  = "mcq"
	QuestionTypeFill = "fill"
)

// QuizGroup is a named, school-owned set of questions plus its schedule and audience.
type QuizGroup struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title              string               `bson:"title" json:"title"`
	Description        string               `bson:"description" json:"description"`
	SchoolID           primitive.ObjectID   `bson:"schoolId" json:"schoolId"`
	ClassIDs           []primitive.ObjectID `bson:"classIds" json:"classIds"`
	SectionIDs         []primitive.ObjectID `bson:"sectionIds" json:"sectionIds"`
	Questions          []Question           `bson:"questions" json:"questions"`
	Status             string               `bson:"status" json:"status"`
	StartTime          *time.Time           `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime            *time.Time           `bson:"endTime,omitempty" json:"endTime,omitempty"`
	QuestionSetVersion int                  `bson:"questionSetVersion" json:"questionSetVersion"`
	SourceFile         string               `bson:"sourceFile,omitempty" json:"-"`
	CreatedBy          primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	CreatedByKind      string               `bson:"createdByKind" json:"createdByKind"`
	CreatedAt          time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// TotalMarks sums the marks of every question in the group.
func (g *QuizGroup) TotalMarks() float64 {
	var total float64
	for _, q := range g.Questions {
		total += q.Marks
	}
	return total
}

// FindQuestion returns the question with the given id, or nil.
func (g *QuizGroup) FindQuestion(id primitive.ObjectID) *Question {
	for i := range g.Questions {
		if g.Questions[i].ID == id {
			return &g.Questions[i]
		}
	}
	return nil
}

// Question is embedded in a QuizGroup. CorrectOptionIndex and CorrectAnswer form the answer key.
type Question struct {
	ID                 primitive.ObjectID `bson:"_id" json:"id"`
	Type               string             `bson:"type" json:"type" validate:"required,oneof=mcq fill"`
	Title              string             `bson:"title" json:"title" validate:"required,min=3"`
	Options            []string           `bson:"options,omitempty" json:"options,omitempty"`
	CorrectOptionIndex *int               `bson:"correctOptionIndex,omitempty" json:"correctOptionIndex,omitempty"`
	CorrectAnswer      string             `bson:"correctAnswer,omitempty" json:"correctAnswer,omitempty"`
	Marks              float64            `bson:"marks" json:"marks" validate:"gte=0"`
	Order              int                `bson:"order" json:"order"`
}

// QuizSubmission is one student's single attempt at a quiz group.
// (groupId, studentId) is unique in the collection.
type QuizSubmission struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SchoolID           primitive.ObjectID `bson:"schoolId" json:"schoolId"`
	GroupID            primitive.ObjectID `bson:"groupId" json:"groupId"`
	StudentID          primitive.ObjectID `bson:"studentId" json:"studentId"`
	Answers            []Answer           `bson:"answers" json:"answers"`
	TotalMarksObtained float64            `bson:"totalMarksObtained" json:"totalMarksObtained"`
	TotalMarks         float64            `bson:"totalMarks" json:"totalMarks"`
	QuestionSetVersion int                `bson:"questionSetVersion" json:"questionSetVersion"`
	SubmittedAt        time.Time          `bson:"submittedAt" json:"submittedAt"`
}

// Answer is embedded in a QuizSubmission.
type Answer struct {
	QuestionID    primitive.ObjectID `bson:"questionId" json:"questionId"`
	Type          string             `bson:"type" json:"type"`
	ChosenIndex   *int               `bson:"chosenIndex,omitempty" json:"chosenIndex,omitempty"`
	AnswerText    string             `bson:"answerText,omitempty" json:"answerText,omitempty"`
	ObtainedMarks float64            `bson:"obtainedMarks" json:"obtainedMarks"`
}
