package quizzes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/utils"
)

// LeaderboardParams is the leaderboard query string.
type LeaderboardParams struct {
	GroupID   string `query:"groupId"`
	ClassID   string `query:"classId"`
	SectionID string `query:"sectionId"`
	models.PaginationParams
}

type LeaderboardEntry struct {
	Rank               int64     `json:"rank"`
	SubmissionID       string    `json:"submissionId"`
	StudentID          string    `json:"studentId"`
	StudentName        string    `json:"studentName"`
	RollNumber         string    `json:"rollNumber,omitempty"`
	ClassID            string    `json:"classId,omitempty"`
	SectionID          string    `json:"sectionId,omitempty"`
	TotalMarksObtained float64   `json:"totalMarksObtained"`
	TotalMarks         float64   `json:"totalMarks"`
	Percentage         string    `json:"percentage"`
	SubmittedAt        time.Time `json:"submittedAt"`
}

// Leaderboard ranks a group's submissions by score, earlier submissions first on ties.
// Rank is the position in the filtered ordering, so equal scores get consecutive ranks.
func (s *Service) Leaderboard(ctx context.Context, actor models.Principal, p LeaderboardParams) (*models.PaginatedResponse, error) {
	if strings.TrimSpace(p.GroupID) == "" {
		return nil, utils.BadRequest("groupId is required")
	}
	group, err := s.loadGroup(ctx, strings.TrimSpace(p.GroupID))
	if err != nil {
		return nil, err
	}
	if err := checkTenant(actor, group); err != nil {
		return nil, err
	}

	q := LeaderboardQuery{GroupID: group.ID}
	if q.ClassID, err = optionalObjectID("classId", p.ClassID); err != nil {
		return nil, err
	}
	if q.SectionID, err = optionalObjectID("sectionId", p.SectionID); err != nil {
		return nil, err
	}

	page := p.PaginationParams
	page.Normalize()
	q.Skip = page.GetSkip()
	q.Limit = int64(page.Limit)

	rows, total, err := s.store.Leaderboard(ctx, q)
	if err != nil {
		return nil, utils.Internal(fmt.Errorf("leaderboard for %s: %w", group.ID.Hex(), err))
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for i, r := range rows {
		e := LeaderboardEntry{
			Rank:               q.Skip + int64(i) + 1,
			SubmissionID:       r.SubmissionID.Hex(),
			StudentID:          r.StudentID.Hex(),
			StudentName:        r.StudentName,
			RollNumber:         r.RollNumber,
			TotalMarksObtained: r.TotalMarksObtained,
			TotalMarks:         r.TotalMarks,
			Percentage:         FormatPercentage(r.TotalMarksObtained, r.TotalMarks),
			SubmittedAt:        r.SubmittedAt,
		}
		if r.ClassID != nil {
			e.ClassID = r.ClassID.Hex()
		}
		if r.SectionID != nil {
			e.SectionID = r.SectionID.Hex()
		}
		entries = append(entries, e)
	}
	return models.NewPaginatedResponse(entries, total, page), nil
}
