package quizzes

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/utils"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

// BuildQuestions maps authored inputs into canonical questions: ids assigned, marks default 1,
// order defaults to the array position. Nothing is persisted when any question is invalid.
func BuildQuestions(inputs []QuestionInput) ([]models.Question, error) {
	if len(inputs) == 0 {
		return nil, utils.BadRequest("At least one question is required")
	}

	out := make([]models.Question, 0, len(inputs))
	for i, in := range inputs {
		q := models.Question{
			ID:    primitive.NewObjectID(),
			Type:  strings.ToLower(strings.TrimSpace(in.Type)),
			Title: strings.TrimSpace(in.Title),
			Marks: 1,
			Order: i,
		}
		if m, ok := in.Marks.get(); ok {
			q.Marks = m
		}
		if in.Order.given() {
			o, ok := in.Order.whole()
			if !ok {
				return nil, utils.BadRequest("Invalid question at position %d: order must be a whole number", i+1)
			}
			q.Order = o
		}

		switch q.Type {
		case models.QuestionTypeMCQ:
			// options are positional; correctOptionIndex refers to this exact list
			for j, o := range in.Options {
				if o = strings.TrimSpace(o); o == "" {
					return nil, utils.BadRequest("Invalid question at position %d: option %d is blank", i+1, j+1)
				}
				q.Options = append(q.Options, o)
			}
			if in.CorrectOptionIndex.given() {
				idx, ok := in.CorrectOptionIndex.whole()
				if !ok {
					return nil, utils.BadRequest("Invalid question at position %d: correctOptionIndex must be a whole number", i+1)
				}
				q.CorrectOptionIndex = &idx
			}
		case models.QuestionTypeFill:
			q.CorrectAnswer = strings.TrimSpace(in.CorrectAnswer)
		}

		if err := ValidateQuestion(q); err != nil {
			return nil, utils.BadRequest("Invalid question at position %d: %s", i+1, err.Error())
		}
		out = append(out, q)
	}
	return out, nil
}

// ValidateQuestion checks the invariants of one question.
func ValidateQuestion(q models.Question) error {
	if math.IsNaN(q.Marks) || math.IsInf(q.Marks, 0) {
		return errors.New("marks must be a finite number")
	}
	if err := validate.Struct(q); err != nil {
		return errors.New(describeValidation(err))
	}
	switch q.Type {
	case models.QuestionTypeMCQ:
		if len(q.Options) < 2 {
			return errors.New("mcq questions need at least 2 options")
		}
		if q.CorrectOptionIndex == nil {
			return errors.New("correctOptionIndex is required for mcq questions")
		}
		if *q.CorrectOptionIndex < 0 || *q.CorrectOptionIndex >= len(q.Options) {
			return fmt.Errorf("correctOptionIndex %d is out of range for %d options", *q.CorrectOptionIndex, len(q.Options))
		}
	case models.QuestionTypeFill:
		if q.CorrectAnswer == "" {
			return errors.New("correctAnswer is required for fill questions")
		}
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// ValidateWindow rejects an end time that is not after the start time.
func ValidateWindow(start, end *time.Time) error {
	if start != nil && end != nil && !end.After(*start) {
		return utils.BadRequest("endTime must be after startTime")
	}
	return nil
}

func validStatus(s string) bool {
	switch s {
	case models.QuizStatusDraft, models.QuizStatusPublished, models.QuizStatusArchived:
		return true
	}
	return false
}

// parseObjectIDs converts hex ids, dropping blanks and duplicates.
func parseObjectIDs(field string, raw []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(raw))
	seen := make(map[primitive.ObjectID]struct{}, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, utils.BadRequest("Invalid %s: %s", field, s)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}
