package quizzes

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"Backend-Schoolhub/src/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory Store that enforces the (groupId, studentId) uniqueness.
type memStore struct {
	mu          sync.Mutex
	groups      map[primitive.ObjectID]models.QuizGroup
	submissions []models.QuizSubmission
	students    map[primitive.ObjectID]models.Student
}

func newMemStore() *memStore {
	return &memStore{
		groups:   map[primitive.ObjectID]models.QuizGroup{},
		students: map[primitive.ObjectID]models.Student{},
	}
}

func (m *memStore) InsertGroup(_ context.Context, g *models.QuizGroup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	m.groups[g.ID] = *g
	return nil
}

func (m *memStore) FindGroup(_ context.Context, id primitive.ObjectID) (*models.QuizGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.groups[id]
	if !ok {
		return nil, ErrGroupNotFound
	}
	return &g, nil
}

func (m *memStore) ReplaceGroup(_ context.Context, g *models.QuizGroup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.groups[g.ID]; !ok {
		return ErrGroupNotFound
	}
	m.groups[g.ID] = *g
	return nil
}

func (m *memStore) DeleteGroup(_ context.Context, id primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.groups[id]; !ok {
		return 0, nil
	}
	delete(m.groups, id)
	return 1, nil
}

func containsOID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func audienceMatch(ids []primitive.ObjectID, id *primitive.ObjectID) bool {
	return len(ids) == 0 || (id != nil && containsOID(ids, *id))
}

func (m *memStore) ListGroups(_ context.Context, f GroupFilter, skip, limit int64) ([]models.QuizGroup, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []models.QuizGroup
	for _, g := range m.groups {
		if f.SchoolID != nil && g.SchoolID != *f.SchoolID {
			continue
		}
		if f.Status != "" && g.Status != f.Status {
			continue
		}
		if f.ClassID != nil && !containsOID(g.ClassIDs, *f.ClassID) {
			continue
		}
		if f.SectionID != nil && !containsOID(g.SectionIDs, *f.SectionID) {
			continue
		}
		if f.AudienceOnly && (!audienceMatch(g.ClassIDs, f.AudienceClassID) || !audienceMatch(g.SectionIDs, f.AudienceSectionID)) {
			continue
		}
		matched = append(matched, g)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if skip >= total {
		return []models.QuizGroup{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return matched[skip:end], total, nil
}

func (m *memStore) FindSubmission(_ context.Context, groupID, studentID primitive.ObjectID) (*models.QuizSubmission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.submissions {
		if s.GroupID == groupID && s.StudentID == studentID {
			s := s
			return &s, nil
		}
	}
	return nil, ErrSubmissionNotFound
}

func (m *memStore) InsertSubmission(_ context.Context, sub *models.QuizSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.submissions {
		if s.GroupID == sub.GroupID && s.StudentID == sub.StudentID {
			return ErrDuplicateSubmission
		}
	}
	m.submissions = append(m.submissions, *sub)
	return nil
}

func (m *memStore) CountSubmissions(_ context.Context, groupID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, s := range m.submissions {
		if s.GroupID == groupID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) DeleteSubmissions(_ context.Context, groupID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.submissions[:0]
	var n int64
	for _, s := range m.submissions {
		if s.GroupID == groupID {
			n++
			continue
		}
		kept = append(kept, s)
	}
	m.submissions = kept
	return n, nil
}

func (m *memStore) Leaderboard(_ context.Context, q LeaderboardQuery) ([]LeaderboardRow, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rows []LeaderboardRow
	for _, s := range m.submissions {
		if s.GroupID != q.GroupID {
			continue
		}
		st := m.students[s.StudentID]
		if q.ClassID != nil && (st.ClassID == nil || *st.ClassID != *q.ClassID) {
			continue
		}
		if q.SectionID != nil && (st.SectionID == nil || *st.SectionID != *q.SectionID) {
			continue
		}
		rows = append(rows, LeaderboardRow{
			SubmissionID:       s.ID,
			StudentID:          s.StudentID,
			StudentName:        st.Name,
			RollNumber:         st.RollNumber,
			ClassID:            st.ClassID,
			SectionID:          st.SectionID,
			TotalMarksObtained: s.TotalMarksObtained,
			TotalMarks:         s.TotalMarks,
			SubmittedAt:        s.SubmittedAt,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalMarksObtained != rows[j].TotalMarksObtained {
			return rows[i].TotalMarksObtained > rows[j].TotalMarksObtained
		}
		return rows[i].SubmittedAt.Before(rows[j].SubmittedAt)
	})

	total := int64(len(rows))
	if q.Skip >= total {
		return []LeaderboardRow{}, total, nil
	}
	end := q.Skip + q.Limit
	if end > total {
		end = total
	}
	return rows[q.Skip:end], total, nil
}

func (m *memStore) ArchiveEnded(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, g := range m.groups {
		if g.Status == models.QuizStatusPublished && g.EndTime != nil && g.EndTime.Before(now) {
			g.Status = models.QuizStatusArchived
			m.groups[id] = g
			n++
		}
	}
	return n, nil
}

func (m *memStore) ArchivedEndedBefore(_ context.Context, cutoff time.Time) ([]primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []primitive.ObjectID
	for id, g := range m.groups {
		if g.Status == models.QuizStatusArchived && g.EndTime != nil && g.EndTime.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// mockDirectory is a testify mock of ClassDirectory.
type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) CountOwned(ctx context.Context, schoolID primitive.ObjectID, classIDs []primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, schoolID, classIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDirectory) Lookup(ctx context.Context, classIDs, sectionIDs []primitive.ObjectID) (map[primitive.ObjectID]models.Class, error) {
	args := m.Called(ctx, classIDs, sectionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[primitive.ObjectID]models.Class), args.Error(1)
}

// memFiles records saved objects.
type memFiles struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemFiles() *memFiles { return &memFiles{objects: map[string][]byte{}} }

func (f *memFiles) Save(_ context.Context, key string, data []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return nil
}

func (f *memFiles) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

var (
	schoolA  = primitive.NewObjectID()
	schoolB  = primitive.NewObjectID()
	teacherA = primitive.NewObjectID()
	class1   = primitive.NewObjectID()
	class2   = primitive.NewObjectID()
	section1 = primitive.NewObjectID()
	fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
)

func teacherOf(school primitive.ObjectID) models.Principal {
	return models.Principal{Kind: models.KindTeacher, ID: teacherA.Hex(), SchoolID: school.Hex()}
}

func studentIn(school primitive.ObjectID, class, section *primitive.ObjectID) models.Principal {
	p := models.Principal{Kind: models.KindStudent, ID: primitive.NewObjectID().Hex(), SchoolID: school.Hex()}
	if class != nil {
		p.ClassID = class.Hex()
	}
	if section != nil {
		p.SectionID = section.Hex()
	}
	return p
}

func newTestService(policy string) (*Service, *memStore, *mockDirectory) {
	store := newMemStore()
	dir := new(mockDirectory)
	svc := NewService(store, dir, nil, nil, policy)
	svc.SetClock(func() time.Time { return fixedNow })
	return svc, store, dir
}

func fptr(v float64) *flexFloat { return floatPtr(v) }
func iptr(v int) *flexInt       { return intPtr(v) }

// twoQuestionInputs is one mcq worth 2 (answer index 1) and one fill worth 1 (answer "Paris").
func twoQuestionInputs() []QuestionInput {
	return []QuestionInput{
		{Type: "mcq", Title: "Largest planet?", Options: []string{"Mars", "Jupiter", "Venus"}, CorrectOptionIndex: iptr(1), Marks: fptr(2)},
		{Type: "fill", Title: "Capital of France?", CorrectAnswer: "Paris", Marks: fptr(1)},
	}
}

// seedGroup stores a published group for school in the store and returns it.
func seedGroup(t testing.TB, store *memStore, school primitive.ObjectID, mutate func(*models.QuizGroup)) *models.QuizGroup {
	t.Helper()
	questions, err := BuildQuestions(twoQuestionInputs())
	require.NoError(t, err)
	g := &models.QuizGroup{
		ID:        primitive.NewObjectID(),
		Title:     "Weekly quiz",
		SchoolID:  school,
		Questions: questions,
		Status:    models.QuizStatusPublished,
		CreatedBy: teacherA,
		CreatedAt: fixedNow.Add(-time.Hour),
		UpdatedAt: fixedNow.Add(-time.Hour),
	}
	if mutate != nil {
		mutate(g)
	}
	require.NoError(t, store.InsertGroup(context.Background(), g))
	return g
}
