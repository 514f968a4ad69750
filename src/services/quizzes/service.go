package quizzes

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"Backend-Schoolhub/src/config"
	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// FileStorage keeps the raw files questions were imported from.
type FileStorage interface {
	Save(ctx context.Context, key string, data []byte, contentType string) error
	Remove(ctx context.Context, key string) error
}

// UploadedFile is a question file attached to a create request.
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// GroupInput is the create payload.
type GroupInput struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	ClassIDs    []string        `json:"classIds"`
	SectionIDs  []string        `json:"sectionIds"`
	Status      string          `json:"status"`
	StartTime   *time.Time      `json:"startTime"`
	EndTime     *time.Time      `json:"endTime"`
	Questions   []QuestionInput `json:"questions"`
}

// GroupUpdate carries only the fields to change; nil means untouched.
type GroupUpdate struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	ClassIDs    *[]string        `json:"classIds"`
	SectionIDs  *[]string        `json:"sectionIds"`
	Status      *string          `json:"status"`
	StartTime   *time.Time       `json:"startTime"`
	EndTime     *time.Time       `json:"endTime"`
	Questions   *[]QuestionInput `json:"questions"`
}

// GroupSummary is the staff view of a group, without questions.
type GroupSummary struct {
	ID                 string            `json:"id"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	SchoolID           string            `json:"schoolId"`
	ClassIDs           []string          `json:"classIds"`
	SectionIDs         []string          `json:"sectionIds"`
	Classes            []models.NamedRef `json:"classes,omitempty"`
	Sections           []models.NamedRef `json:"sections,omitempty"`
	Status             string            `json:"status"`
	StartTime          *time.Time        `json:"startTime,omitempty"`
	EndTime            *time.Time        `json:"endTime,omitempty"`
	QuestionCount      int               `json:"questionCount"`
	TotalMarks         float64           `json:"totalMarks"`
	QuestionSetVersion int               `json:"questionSetVersion"`
	CreatedBy          string            `json:"createdBy"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// DeleteResult reports what a cascade delete removed.
type DeleteResult struct {
	GroupID            string `json:"groupId"`
	DeletedGroups      int64  `json:"deletedGroups"`
	DeletedSubmissions int64  `json:"deletedSubmissions"`
}

// ListFilter holds the list query. SchoolID is only honoured for superadmins.
type ListFilter struct {
	Status    string `query:"status"`
	ClassID   string `query:"classId"`
	SectionID string `query:"sectionId"`
	Search    string `query:"search"`
	SchoolID  string `query:"schoolId"`
	models.PaginationParams
}

// Service implements quiz authoring, attempts and leaderboards.
type Service struct {
	store      Store
	classes    ClassDirectory
	cache      *GroupCache
	files      FileStorage
	editPolicy string
	now        func() time.Time
}

// NewService wires the quiz service. cache and files may be nil.
func NewService(store Store, classes ClassDirectory, cache *GroupCache, files FileStorage, editPolicy string) *Service {
	if editPolicy == "" {
		editPolicy = config.EditPolicyForbid
	}
	return &Service{
		store:      store,
		classes:    classes,
		cache:      cache,
		files:      files,
		editPolicy: editPolicy,
		now:        time.Now,
	}
}

// SetClock replaces time.Now.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) Create(ctx context.Context, actor models.Principal, in GroupInput, file *UploadedFile) (*GroupSummary, error) {
	if !actor.Kind.IsStaff() {
		return nil, utils.Forbidden("You are not allowed to create quizzes")
	}
	schoolID, err := primitive.ObjectIDFromHex(actor.OwningSchoolID())
	if err != nil {
		return nil, utils.Forbidden("Your account is not linked to a school")
	}
	creatorID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, utils.Forbidden("Invalid account")
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := validate.Struct(in); err != nil {
		return nil, utils.BadRequest("Invalid quiz: %s", describeValidation(err))
	}

	inputs := in.Questions
	if file != nil {
		if inputs, err = ParseQuestionFile(file.Name, file.ContentType, file.Data); err != nil {
			return nil, err
		}
	}
	questions, err := BuildQuestions(inputs)
	if err != nil {
		return nil, err
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = models.QuizStatusDraft
	}
	if !validStatus(status) {
		return nil, utils.BadRequest("Invalid status: %s", status)
	}
	if err := ValidateWindow(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	classIDs, err := parseObjectIDs("classId", in.ClassIDs)
	if err != nil {
		return nil, err
	}
	sectionIDs, err := parseObjectIDs("sectionId", in.SectionIDs)
	if err != nil {
		return nil, err
	}
	if err := s.checkClassOwnership(ctx, schoolID, classIDs); err != nil {
		return nil, err
	}

	now := s.now()
	group := &models.QuizGroup{
		ID:            primitive.NewObjectID(),
		Title:         in.Title,
		Description:   in.Description,
		SchoolID:      schoolID,
		ClassIDs:      classIDs,
		SectionIDs:    sectionIDs,
		Questions:     questions,
		Status:        status,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		CreatedBy:     creatorID,
		CreatedByKind: string(actor.Kind),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if file != nil && s.files != nil {
		key := fmt.Sprintf("quizzes/%s/%s%s", schoolID.Hex(), uuid.NewString(), strings.ToLower(filepath.Ext(file.Name)))
		if err := s.files.Save(ctx, key, file.Data, file.ContentType); err != nil {
			return nil, utils.Internal(fmt.Errorf("store question file: %w", err))
		}
		group.SourceFile = key
	}

	if err := s.store.InsertGroup(ctx, group); err != nil {
		s.removeFile(ctx, group.SourceFile)
		return nil, utils.Internal(fmt.Errorf("insert quiz group: %w", err))
	}

	groupsCreated.Inc()
	logger.Log.Info("quiz group created",
		zap.String("groupId", group.ID.Hex()),
		zap.String("schoolId", schoolID.Hex()),
		zap.Int("questions", len(questions)),
	)
	return summarize(group), nil
}

func (s *Service) Update(ctx context.Context, actor models.Principal, id string, in GroupUpdate) (*GroupSummary, error) {
	group, err := s.loadGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeManage(actor, group); err != nil {
		return nil, err
	}

	if in.Title != nil {
		group.Title = strings.TrimSpace(*in.Title)
		if group.Title == "" {
			return nil, utils.BadRequest("Invalid quiz: title is required")
		}
	}
	if in.Description != nil {
		group.Description = strings.TrimSpace(*in.Description)
	}
	if in.Status != nil {
		if !validStatus(*in.Status) {
			return nil, utils.BadRequest("Invalid status: %s", *in.Status)
		}
		group.Status = *in.Status
	}
	if in.StartTime != nil {
		group.StartTime = in.StartTime
	}
	if in.EndTime != nil {
		group.EndTime = in.EndTime
	}
	if err := ValidateWindow(group.StartTime, group.EndTime); err != nil {
		return nil, err
	}
	if in.ClassIDs != nil {
		classIDs, err := parseObjectIDs("classId", *in.ClassIDs)
		if err != nil {
			return nil, err
		}
		if err := s.checkClassOwnership(ctx, group.SchoolID, classIDs); err != nil {
			return nil, err
		}
		group.ClassIDs = classIDs
	}
	if in.SectionIDs != nil {
		sectionIDs, err := parseObjectIDs("sectionId", *in.SectionIDs)
		if err != nil {
			return nil, err
		}
		group.SectionIDs = sectionIDs
	}

	if in.Questions != nil {
		questions, err := BuildQuestions(*in.Questions)
		if err != nil {
			return nil, err
		}
		submitted, err := s.store.CountSubmissions(ctx, group.ID)
		if err != nil {
			return nil, utils.Internal(err)
		}
		if submitted > 0 && s.editPolicy == config.EditPolicyForbid {
			return nil, utils.BadRequest("Questions cannot be changed after students have submitted (%d submissions)", submitted)
		}
		group.Questions = questions
		group.QuestionSetVersion++
	}

	group.UpdatedAt = s.now()
	if err := s.store.ReplaceGroup(ctx, group); err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			return nil, utils.NotFound("Quiz not found")
		}
		return nil, utils.Internal(fmt.Errorf("update quiz group: %w", err))
	}
	s.cache.Invalidate(ctx, group.ID)

	logger.Log.Info("quiz group updated", zap.String("groupId", group.ID.Hex()), zap.String("by", actor.ID))
	return summarize(group), nil
}

// Delete removes the group and every submission referencing it.
func (s *Service) Delete(ctx context.Context, actor models.Principal, id string) (*DeleteResult, error) {
	group, err := s.loadGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeManage(actor, group); err != nil {
		return nil, err
	}
	res, err := s.purge(ctx, group)
	if err != nil {
		return nil, utils.Internal(err)
	}
	logger.Log.Info("quiz group deleted",
		zap.String("groupId", res.GroupID),
		zap.Int64("submissions", res.DeletedSubmissions),
	)
	return res, nil
}

// purge deletes submissions, the group, then submissions again: a submit that loaded the
// group before the delete can still insert after the first sweep.
func (s *Service) purge(ctx context.Context, group *models.QuizGroup) (*DeleteResult, error) {
	subs, err := s.store.DeleteSubmissions(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("delete submissions of %s: %w", group.ID.Hex(), err)
	}
	groups, err := s.store.DeleteGroup(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("delete quiz group %s: %w", group.ID.Hex(), err)
	}
	s.cache.Invalidate(ctx, group.ID)
	late, err := s.store.DeleteSubmissions(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("delete late submissions of %s: %w", group.ID.Hex(), err)
	}
	s.removeFile(ctx, group.SourceFile)

	return &DeleteResult{GroupID: group.ID.Hex(), DeletedGroups: groups, DeletedSubmissions: subs + late}, nil
}

func (s *Service) removeFile(ctx context.Context, key string) {
	if key == "" || s.files == nil {
		return
	}
	if err := s.files.Remove(ctx, key); err != nil {
		logger.Log.Warn("remove question file", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) List(ctx context.Context, actor models.Principal, f ListFilter) (*models.PaginatedResponse, error) {
	filter := GroupFilter{Search: strings.TrimSpace(f.Search)}

	switch actor.Kind {
	case models.KindSuperadmin:
		if f.SchoolID != "" {
			id, err := primitive.ObjectIDFromHex(f.SchoolID)
			if err != nil {
				return nil, utils.BadRequest("Invalid schoolId: %s", f.SchoolID)
			}
			filter.SchoolID = &id
		}
	case models.KindSchool, models.KindAdminOffice, models.KindTeacher, models.KindStudent:
		id, err := primitive.ObjectIDFromHex(actor.OwningSchoolID())
		if err != nil {
			return nil, utils.Forbidden("Your account is not linked to a school")
		}
		filter.SchoolID = &id
	default:
		return nil, utils.Forbidden("You are not allowed to list quizzes")
	}

	if f.Status != "" {
		if !validStatus(f.Status) {
			return nil, utils.BadRequest("Invalid status: %s", f.Status)
		}
		filter.Status = f.Status
	}
	var err error
	if filter.ClassID, err = optionalObjectID("classId", f.ClassID); err != nil {
		return nil, err
	}
	if filter.SectionID, err = optionalObjectID("sectionId", f.SectionID); err != nil {
		return nil, err
	}

	if actor.Kind == models.KindStudent {
		filter.Status = models.QuizStatusPublished
		filter.AudienceOnly = true
		filter.AudienceClassID, _ = optionalObjectID("classId", actor.ClassID)
		filter.AudienceSectionID, _ = optionalObjectID("sectionId", actor.SectionID)
	}

	page := f.PaginationParams
	page.Normalize()
	groups, total, err := s.store.ListGroups(ctx, filter, page.GetSkip(), int64(page.Limit))
	if err != nil {
		return nil, utils.Internal(fmt.Errorf("list quiz groups: %w", err))
	}

	items, err := s.withNames(ctx, groups)
	if err != nil {
		return nil, utils.Internal(err)
	}
	return models.NewPaginatedResponse(items, total, page), nil
}

// withNames resolves class and section display names for a page of groups.
func (s *Service) withNames(ctx context.Context, groups []models.QuizGroup) ([]GroupSummary, error) {
	var classIDs, sectionIDs []primitive.ObjectID
	for _, g := range groups {
		classIDs = append(classIDs, g.ClassIDs...)
		sectionIDs = append(sectionIDs, g.SectionIDs...)
	}

	classes := map[primitive.ObjectID]models.Class{}
	if len(classIDs) > 0 || len(sectionIDs) > 0 {
		var err error
		if classes, err = s.classes.Lookup(ctx, classIDs, sectionIDs); err != nil {
			return nil, fmt.Errorf("resolve class names: %w", err)
		}
	}
	sectionNames := map[primitive.ObjectID]string{}
	for _, c := range classes {
		for _, sec := range c.Sections {
			sectionNames[sec.ID] = sec.Name
		}
	}

	out := make([]GroupSummary, 0, len(groups))
	for i := range groups {
		sum := summarize(&groups[i])
		sum.Classes = make([]models.NamedRef, 0, len(groups[i].ClassIDs))
		for _, id := range groups[i].ClassIDs {
			sum.Classes = append(sum.Classes, models.NamedRef{ID: id.Hex(), Name: classes[id].Name})
		}
		sum.Sections = make([]models.NamedRef, 0, len(groups[i].SectionIDs))
		for _, id := range groups[i].SectionIDs {
			sum.Sections = append(sum.Sections, models.NamedRef{ID: id.Hex(), Name: sectionNames[id]})
		}
		out = append(out, *sum)
	}
	return out, nil
}

func (s *Service) checkClassOwnership(ctx context.Context, schoolID primitive.ObjectID, classIDs []primitive.ObjectID) error {
	if len(classIDs) == 0 {
		return nil
	}
	owned, err := s.classes.CountOwned(ctx, schoolID, classIDs)
	if err != nil {
		return utils.Internal(fmt.Errorf("check class ownership: %w", err))
	}
	if owned != int64(len(classIDs)) {
		return utils.BadRequest("One or more classes do not exist in this school")
	}
	return nil
}

// loadGroup reads straight from the store; writes never go through the cache.
func (s *Service) loadGroup(ctx context.Context, id string) (*models.QuizGroup, error) {
	gid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.BadRequest("Invalid quiz id: %s", id)
	}
	group, err := s.store.FindGroup(ctx, gid)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			return nil, utils.NotFound("Quiz not found")
		}
		return nil, utils.Internal(err)
	}
	return group, nil
}

// authorizeManage: school accounts must own and have created the group, staff must belong
// to its school, superadmins always pass.
func authorizeManage(actor models.Principal, g *models.QuizGroup) error {
	school := g.SchoolID.Hex()
	switch actor.Kind {
	case models.KindSuperadmin:
		return nil
	case models.KindSchool:
		if normalizeID(actor.ID) == school && normalizeID(actor.ID) == g.CreatedBy.Hex() {
			return nil
		}
	case models.KindAdminOffice, models.KindTeacher:
		if normalizeID(actor.SchoolID) == school {
			return nil
		}
	}
	return utils.Forbidden("You are not allowed to modify this quiz")
}

func optionalObjectID(field, raw string) (*primitive.ObjectID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, utils.BadRequest("Invalid %s: %s", field, raw)
	}
	return &id, nil
}

func summarize(g *models.QuizGroup) *GroupSummary {
	return &GroupSummary{
		ID:                 g.ID.Hex(),
		Title:              g.Title,
		Description:        g.Description,
		SchoolID:           g.SchoolID.Hex(),
		ClassIDs:           hexIDs(g.ClassIDs),
		SectionIDs:         hexIDs(g.SectionIDs),
		Status:             g.Status,
		StartTime:          g.StartTime,
		EndTime:            g.EndTime,
		QuestionCount:      len(g.Questions),
		TotalMarks:         g.TotalMarks(),
		QuestionSetVersion: g.QuestionSetVersion,
		CreatedBy:          g.CreatedBy.Hex(),
		CreatedAt:          g.CreatedAt,
		UpdatedAt:          g.UpdatedAt,
	}
}

// ShareLink returns the address students open to take the quiz. Any staff member of the
// owning school may request it.
func (s *Service) ShareLink(ctx context.Context, actor models.Principal, id, baseURL string) (string, error) {
	if !actor.Kind.IsStaff() && actor.Kind != models.KindSuperadmin {
		return "", utils.Forbidden("You are not allowed to share this quiz")
	}
	group, err := s.loadGroup(ctx, id)
	if err != nil {
		return "", err
	}
	if err := checkTenant(actor, group); err != nil {
		return "", err
	}
	return strings.TrimRight(baseURL, "/") + "/quiz/" + group.ID.Hex(), nil
}
