package quizzes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AnswerInput is one submitted answer. chosenIndex is read for mcq, answerText for fill.
type AnswerInput struct {
	QuestionID  string   `json:"questionId"`
	ChosenIndex *flexInt `json:"chosenIndex"`
	AnswerText  string   `json:"answerText"`
}

// AttemptQuestion is a question with the answer key removed.
type AttemptQuestion struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Options []string `json:"options,omitempty"`
	Marks   float64  `json:"marks"`
	Order   int      `json:"order"`
}

// AttemptView is what a student sees before answering.
type AttemptView struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Status           string            `json:"status"`
	StartTime        *time.Time        `json:"startTime,omitempty"`
	EndTime          *time.Time        `json:"endTime,omitempty"`
	Questions        []AttemptQuestion `json:"questions"`
	QuestionCount    int               `json:"questionCount"`
	TotalMarks       float64           `json:"totalMarks"`
	RemainingSeconds *int64            `json:"remainingSeconds,omitempty"`
}

// QuestionFeedback explains the marks for one question.
type QuestionFeedback struct {
	QuestionID    string  `json:"questionId"`
	Question      string  `json:"question"`
	Type          string  `json:"type"`
	Answered      bool    `json:"answered"`
	GivenAnswer   string  `json:"givenAnswer"`
	CorrectAnswer string  `json:"correctAnswer"`
	Marks         float64 `json:"marks"`
	ObtainedMarks float64 `json:"obtainedMarks"`
	Correct       bool    `json:"correct"`
}

// SubmitResult is returned after a submission and by the my-submission lookup.
type SubmitResult struct {
	SubmissionID       string             `json:"submissionId"`
	GroupID            string             `json:"groupId"`
	TotalMarksObtained float64            `json:"totalMarksObtained"`
	TotalMarks         float64            `json:"totalMarks"`
	Percentage         string             `json:"percentage"`
	Feedback           []QuestionFeedback `json:"feedback"`
	SubmittedAt        time.Time          `json:"submittedAt"`
}

// GetGroupForAttempt returns a group without its answer key.
func (s *Service) GetGroupForAttempt(ctx context.Context, actor models.Principal, id string) (*AttemptView, error) {
	group, err := s.loadForAttempt(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkTenant(actor, group); err != nil {
		return nil, err
	}
	now := s.now()
	if err := checkAvailability(group, now); err != nil {
		return nil, err
	}

	if actor.Kind == models.KindStudent {
		if err := checkEligible(actor, group); err != nil {
			return nil, err
		}
		studentID, err := primitive.ObjectIDFromHex(actor.ID)
		if err != nil {
			return nil, utils.Forbidden("Invalid student account")
		}
		if err := s.rejectIfSubmitted(ctx, group.ID, studentID); err != nil {
			return nil, err
		}
	}

	return attemptView(group, now), nil
}

// Submit scores and records a student's single attempt.
func (s *Service) Submit(ctx context.Context, actor models.Principal, id string, answers []AnswerInput) (res *SubmitResult, err error) {
	defer func() { observeSubmission(err) }()

	if actor.Kind != models.KindStudent {
		return nil, utils.Forbidden("Only students can submit quizzes")
	}
	studentID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, utils.Forbidden("Invalid student account")
	}

	group, err := s.loadForAttempt(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkTenant(actor, group); err != nil {
		return nil, err
	}
	now := s.now()
	if err := checkAvailability(group, now); err != nil {
		return nil, err
	}
	if err := checkEligible(actor, group); err != nil {
		return nil, err
	}
	if err := s.rejectIfSubmitted(ctx, group.ID, studentID); err != nil {
		return nil, err
	}

	parsed, err := toAnswers(group, answers)
	if err != nil {
		return nil, err
	}
	sheet, err := ScoreAnswers(group, parsed)
	if err != nil {
		return nil, utils.Internal(err)
	}

	sub := &models.QuizSubmission{
		ID:                 primitive.NewObjectID(),
		SchoolID:           group.SchoolID,
		GroupID:            group.ID,
		StudentID:          studentID,
		Answers:            sheet.Answers,
		TotalMarksObtained: sheet.ObtainedMarks,
		TotalMarks:         sheet.TotalMarks,
		QuestionSetVersion: group.QuestionSetVersion,
		SubmittedAt:        now,
	}
	if err := s.store.InsertSubmission(ctx, sub); err != nil {
		if errors.Is(err, ErrDuplicateSubmission) {
			// lost the race against a concurrent submit for the same student
			return nil, s.alreadySubmitted(ctx, group.ID, studentID)
		}
		return nil, utils.Internal(fmt.Errorf("insert submission: %w", err))
	}

	logger.Log.Info("quiz submitted",
		zap.String("groupId", group.ID.Hex()),
		zap.String("studentId", studentID.Hex()),
		zap.Float64("obtained", sheet.ObtainedMarks),
		zap.Float64("total", sheet.TotalMarks),
	)
	return buildResult(group, sub), nil
}

// MySubmission returns the calling student's result for a group.
func (s *Service) MySubmission(ctx context.Context, actor models.Principal, id string) (*SubmitResult, error) {
	if actor.Kind != models.KindStudent {
		return nil, utils.Forbidden("Only students have quiz submissions")
	}
	studentID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, utils.Forbidden("Invalid student account")
	}
	group, err := s.loadForAttempt(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkTenant(actor, group); err != nil {
		return nil, err
	}

	sub, err := s.store.FindSubmission(ctx, group.ID, studentID)
	if err != nil {
		if errors.Is(err, ErrSubmissionNotFound) {
			return nil, utils.NotFound("You have not submitted this quiz")
		}
		return nil, utils.Internal(err)
	}
	return buildResult(group, sub), nil
}

func (s *Service) loadForAttempt(ctx context.Context, id string) (*models.QuizGroup, error) {
	gid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.BadRequest("Invalid quiz id: %s", id)
	}
	group, err := s.cache.Get(ctx, gid, func(ctx context.Context) (*models.QuizGroup, error) {
		return s.store.FindGroup(ctx, gid)
	})
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			return nil, utils.NotFound("Quiz not found")
		}
		return nil, utils.Internal(err)
	}
	return group, nil
}

func (s *Service) rejectIfSubmitted(ctx context.Context, groupID, studentID primitive.ObjectID) error {
	existing, err := s.store.FindSubmission(ctx, groupID, studentID)
	switch {
	case err == nil:
		return utils.AlreadySubmitted(existing.ID.Hex())
	case errors.Is(err, ErrSubmissionNotFound):
		return nil
	default:
		return utils.Internal(err)
	}
}

func (s *Service) alreadySubmitted(ctx context.Context, groupID, studentID primitive.ObjectID) error {
	existing, err := s.store.FindSubmission(ctx, groupID, studentID)
	if err != nil {
		logger.Log.Warn("duplicate submission without readable original",
			zap.String("groupId", groupID.Hex()), zap.String("studentId", studentID.Hex()), zap.Error(err))
		return utils.AlreadySubmitted("")
	}
	return utils.AlreadySubmitted(existing.ID.Hex())
}

func checkTenant(actor models.Principal, g *models.QuizGroup) error {
	if actor.Kind == models.KindSuperadmin {
		return nil
	}
	if normalizeID(actor.OwningSchoolID()) != g.SchoolID.Hex() {
		return utils.Forbidden("Quiz belongs to another school")
	}
	return nil
}

func checkAvailability(g *models.QuizGroup, now time.Time) error {
	if g.Status != models.QuizStatusPublished {
		return utils.Forbidden("Quiz is not available")
	}
	if g.StartTime != nil && now.Before(*g.StartTime) {
		return utils.Forbidden("Quiz has not started yet")
	}
	if g.EndTime != nil && now.After(*g.EndTime) {
		return utils.Forbidden("Quiz has ended")
	}
	return nil
}

func checkEligible(actor models.Principal, g *models.QuizGroup) error {
	if !IsEligible(actor.ClassID, actor.SectionID, hexIDs(g.ClassIDs), hexIDs(g.SectionIDs)) {
		return utils.Forbidden("You are not eligible for this quiz")
	}
	return nil
}

// toAnswers validates question ids and keeps only the field that matters for each type.
func toAnswers(g *models.QuizGroup, inputs []AnswerInput) ([]models.Answer, error) {
	out := make([]models.Answer, 0, len(inputs))
	seen := make(map[primitive.ObjectID]struct{}, len(inputs))
	for _, in := range inputs {
		raw := strings.TrimSpace(in.QuestionID)
		qid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, utils.BadRequest("Invalid question ID: %s", raw)
		}
		q := g.FindQuestion(qid)
		if q == nil {
			return nil, utils.BadRequest("Invalid question ID: %s", raw)
		}
		if _, dup := seen[qid]; dup {
			return nil, utils.BadRequest("Duplicate answer for question ID: %s", raw)
		}
		seen[qid] = struct{}{}

		a := models.Answer{QuestionID: qid, Type: q.Type}
		switch q.Type {
		case models.QuestionTypeMCQ:
			// a fractional index matches no option and stays unanswered
			if idx, ok := in.ChosenIndex.whole(); ok {
				a.ChosenIndex = &idx
			}
		case models.QuestionTypeFill:
			a.AnswerText = strings.TrimSpace(in.AnswerText)
		}
		out = append(out, a)
	}
	return out, nil
}

// orderedQuestions sorts by order, keeping authoring position for ties.
func orderedQuestions(g *models.QuizGroup) []models.Question {
	qs := make([]models.Question, len(g.Questions))
	copy(qs, g.Questions)
	sort.SliceStable(qs, func(i, j int) bool { return qs[i].Order < qs[j].Order })
	return qs
}

func attemptView(g *models.QuizGroup, now time.Time) *AttemptView {
	view := &AttemptView{
		ID:            g.ID.Hex(),
		Title:         g.Title,
		Description:   g.Description,
		Status:        g.Status,
		StartTime:     g.StartTime,
		EndTime:       g.EndTime,
		QuestionCount: len(g.Questions),
		TotalMarks:    g.TotalMarks(),
	}
	for _, q := range orderedQuestions(g) {
		view.Questions = append(view.Questions, AttemptQuestion{
			ID:      q.ID.Hex(),
			Type:    q.Type,
			Title:   q.Title,
			Options: q.Options,
			Marks:   q.Marks,
			Order:   q.Order,
		})
	}
	if g.EndTime != nil {
		remaining := int64(g.EndTime.Sub(now).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		view.RemainingSeconds = &remaining
	}
	return view
}

func buildResult(g *models.QuizGroup, sub *models.QuizSubmission) *SubmitResult {
	given := make(map[primitive.ObjectID]models.Answer, len(sub.Answers))
	for _, a := range sub.Answers {
		given[a.QuestionID] = a
	}

	res := &SubmitResult{
		SubmissionID:       sub.ID.Hex(),
		GroupID:            g.ID.Hex(),
		TotalMarksObtained: sub.TotalMarksObtained,
		TotalMarks:         sub.TotalMarks,
		Percentage:         FormatPercentage(sub.TotalMarksObtained, sub.TotalMarks),
		Feedback:           make([]QuestionFeedback, 0, len(g.Questions)),
		SubmittedAt:        sub.SubmittedAt,
	}
	for _, q := range orderedQuestions(g) {
		fb := QuestionFeedback{
			QuestionID:    q.ID.Hex(),
			Question:      q.Title,
			Type:          q.Type,
			CorrectAnswer: correctAnswerText(q),
			Marks:         q.Marks,
		}
		if a, ok := given[q.ID]; ok {
			fb.Answered = true
			fb.GivenAnswer = givenAnswerText(q, a)
			fb.ObtainedMarks = a.ObtainedMarks
			fb.Correct = isMatch(q, a)
		}
		res.Feedback = append(res.Feedback, fb)
	}
	return res
}

// isMatch reports a correct answer independently of the marks attached to the question.
func isMatch(q models.Question, a models.Answer) bool {
	unit := q
	unit.Marks = 1
	return Score(unit, a) == 1
}

func givenAnswerText(q models.Question, a models.Answer) string {
	if q.Type == models.QuestionTypeMCQ {
		if a.ChosenIndex != nil && *a.ChosenIndex >= 0 && *a.ChosenIndex < len(q.Options) {
			return q.Options[*a.ChosenIndex]
		}
		return ""
	}
	return a.AnswerText
}

func correctAnswerText(q models.Question) string {
	if q.Type == models.QuestionTypeMCQ {
		if q.CorrectOptionIndex != nil && *q.CorrectOptionIndex >= 0 && *q.CorrectOptionIndex < len(q.Options) {
			return q.Options[*q.CorrectOptionIndex]
		}
		return ""
	}
	return q.CorrectAnswer
}
