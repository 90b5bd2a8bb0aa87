package models

import "time"

// Stage is one of the six fixed review checkpoints of a project.
type Stage string

const (
	StageZero  Stage = "zero"
	StageOne   Stage = "one"
	StageTwo   Stage = "two"
	StageThree Stage = "three"
	StageModel Stage = "model"
	StageFinal Stage = "final"
)

// Stages lists every stage in review order.
var Stages = []Stage{StageZero, StageOne, StageTwo, StageThree, StageModel, StageFinal}

// ParseStage validates a stage token. Tokens are case-sensitive.
func ParseStage(token string) (Stage, bool) {
	switch s := Stage(token); s {
	case StageZero, StageOne, StageTwo, StageThree, StageModel, StageFinal:
		return s, true
	}
	return "", false
}

// Table returns the name of the table backing this stage.
func (s Stage) Table() string {
	return "review_" + string(s)
}

// Field returns the JSON field under which the stage appears on a review.
func (s Stage) Field() string {
	switch s {
	case StageZero:
		return "reviewZero"
	case StageOne:
		return "reviewOne"
	case StageTwo:
		return "reviewTwo"
	case StageThree:
		return "reviewThree"
	case StageModel:
		return "reviewModel"
	case StageFinal:
		return "reviewFinal"
	}
	return ""
}

// StageRecord is the content of a single review stage. All six stage tables
// share this shape.
type StageRecord struct {
	ID        string    `json:"id" db:"id"`
	ReviewID  string    `json:"reviewId" db:"review_id"`
	Score     *int      `json:"score" db:"score"`
	Remarks   *string   `json:"remarks" db:"remarks"`
	Status    *string   `json:"status" db:"status"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Review is the 1:1 companion of a Project holding one record per stage.
type Review struct {
	ID        string                 `json:"id" db:"id"`
	ProjectID string                 `json:"projectId" db:"project_id"`
	Stages    map[Stage]*StageRecord `json:"-"`
}

// Stage returns the record occupying the given slot, or nil if it is empty.
func (r *Review) Stage(s Stage) *StageRecord {
	if r == nil || r.Stages == nil {
		return nil
	}
	return r.Stages[s]
}

// SetStage places a record into the given slot.
func (r *Review) SetStage(s Stage, rec *StageRecord) {
	if r.Stages == nil {
		r.Stages = make(map[Stage]*StageRecord, len(Stages))
	}
	r.Stages[s] = rec
}
