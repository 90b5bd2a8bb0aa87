package dto

import (
	"time"

	"github.com/yigit/capstone/internal/app/models"
)

// StageRecordResponse is one review stage as returned to clients
type StageRecordResponse struct {
	ID        string    `json:"id"`
	ReviewID  string    `json:"reviewId"`
	Score     *int      `json:"score"`
	Remarks   *string   `json:"remarks"`
	Status    *string   `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewResponse is a review with its stage slots. Slots outside the
// requested projection are omitted.
type ReviewResponse struct {
	ID          string               `json:"id"`
	ReviewZero  *StageRecordResponse `json:"reviewZero,omitempty"`
	ReviewOne   *StageRecordResponse `json:"reviewOne,omitempty"`
	ReviewTwo   *StageRecordResponse `json:"reviewTwo,omitempty"`
	ReviewThree *StageRecordResponse `json:"reviewThree,omitempty"`
	ReviewModel *StageRecordResponse `json:"reviewModel,omitempty"`
	ReviewFinal *StageRecordResponse `json:"reviewFinal,omitempty"`
}

// StudentBrief is the abbreviated student shape used in project listings
type StudentBrief struct {
	FullName string `json:"fullName"`
	RegNo    string `json:"regNo"`
}

// StudentContact is the student shape shown to a guide
type StudentContact struct {
	FullName string `json:"fullName"`
	RegNo    string `json:"regNo"`
	PhoneNo  string `json:"phoneNo"`
	Email    string `json:"email"`
}

// StudentDetail is the full student shape of a single project
type StudentDetail struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Batch    string `json:"batch"`
	RegNo    string `json:"regNo"`
	PhoneNo  string `json:"phoneNo"`
}

// StaffBrief is the guide shape nested in a project
type StaffBrief struct {
	FullName string `json:"fullName"`
}

// ProjectSummaryResponse is a project in the all-projects and by-stage listings
type ProjectSummaryResponse struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	StaffID  string          `json:"staffId"`
	Students []StudentBrief  `json:"students"`
	Staff    *StaffBrief     `json:"staff,omitempty"`
	Review   *ReviewResponse `json:"review,omitempty"`
}

// GuideProjectResponse is a project in a guide's own listing
type GuideProjectResponse struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	StaffID  string           `json:"staffId"`
	Students []StudentContact `json:"students"`
	Review   *ReviewResponse  `json:"review,omitempty"`
}

// ProjectDetailResponse is a single project with every nested field
type ProjectDetailResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	StaffID   string          `json:"staffId"`
	Students  []StudentDetail `json:"students"`
	Staff     *StaffBrief     `json:"staff,omitempty"`
	Review    *ReviewResponse `json:"review,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewStageRecordResponse converts a stage record; nil stays nil
func NewStageRecordResponse(rec *models.StageRecord) *StageRecordResponse {
	if rec == nil {
		return nil
	}
	return &StageRecordResponse{
		ID:        rec.ID,
		ReviewID:  rec.ReviewID,
		Score:     rec.Score,
		Remarks:   rec.Remarks,
		Status:    rec.Status,
		UpdatedAt: rec.UpdatedAt,
	}
}

// NewReviewResponse converts a review with whichever stages are loaded
func NewReviewResponse(r *models.Review) *ReviewResponse {
	if r == nil {
		return nil
	}
	resp := &ReviewResponse{ID: r.ID}
	for _, stage := range models.Stages {
		rec := NewStageRecordResponse(r.Stage(stage))
		if rec == nil {
			continue
		}
		switch stage {
		case models.StageZero:
			resp.ReviewZero = rec
		case models.StageOne:
			resp.ReviewOne = rec
		case models.StageTwo:
			resp.ReviewTwo = rec
		case models.StageThree:
			resp.ReviewThree = rec
		case models.StageModel:
			resp.ReviewModel = rec
		case models.StageFinal:
			resp.ReviewFinal = rec
		}
	}
	return resp
}

func newStaffBrief(s *models.Staff) *StaffBrief {
	if s == nil {
		return nil
	}
	return &StaffBrief{FullName: s.FullName}
}

// NewProjectSummaries converts projects for the all-projects and by-stage listings
func NewProjectSummaries(projects []*models.Project) []ProjectSummaryResponse {
	out := make([]ProjectSummaryResponse, 0, len(projects))
	for _, p := range projects {
		students := make([]StudentBrief, 0, len(p.Students))
		for _, s := range p.Students {
			students = append(students, StudentBrief{FullName: s.FullName, RegNo: s.RegNo})
		}
		out = append(out, ProjectSummaryResponse{
			ID:       p.ID,
			Title:    p.Title,
			StaffID:  p.StaffID,
			Students: students,
			Staff:    newStaffBrief(p.Staff),
			Review:   NewReviewResponse(p.Review),
		})
	}
	return out
}

// NewGuideProjects converts projects for a guide's listing
func NewGuideProjects(projects []*models.Project) []GuideProjectResponse {
	out := make([]GuideProjectResponse, 0, len(projects))
	for _, p := range projects {
		students := make([]StudentContact, 0, len(p.Students))
		for _, s := range p.Students {
			students = append(students, StudentContact{
				FullName: s.FullName,
				RegNo:    s.RegNo,
				PhoneNo:  s.PhoneNo,
				Email:    s.Email,
			})
		}
		out = append(out, GuideProjectResponse{
			ID:       p.ID,
			Title:    p.Title,
			StaffID:  p.StaffID,
			Students: students,
			Review:   NewReviewResponse(p.Review),
		})
	}
	return out
}

// NewProjectDetail converts a single project with full nested detail
func NewProjectDetail(p *models.Project) *ProjectDetailResponse {
	if p == nil {
		return nil
	}
	students := make([]StudentDetail, 0, len(p.Students))
	for _, s := range p.Students {
		students = append(students, StudentDetail{
			ID:       s.ID,
			FullName: s.FullName,
			Email:    s.Email,
			Batch:    s.Batch,
			RegNo:    s.RegNo,
			PhoneNo:  s.PhoneNo,
		})
	}
	return &ProjectDetailResponse{
		ID:        p.ID,
		Title:     p.Title,
		StaffID:   p.StaffID,
		Students:  students,
		Staff:     newStaffBrief(p.Staff),
		Review:    NewReviewResponse(p.Review),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
