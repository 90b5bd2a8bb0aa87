package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/yigit/capstone/internal/app/models"
	"github.com/yigit/capstone/internal/app/repositories"
	"github.com/yigit/capstone/internal/pkg/apperrors"
	"github.com/yigit/capstone/internal/pkg/logger"
	"github.com/yigit/capstone/internal/pkg/metrics"
)

// stageFieldColumns maps the JSON keys a client may send to stage columns
var stageFieldColumns = map[string]string{
	"score":   "score",
	"remarks": "remarks",
	"status":  "status",
}

// ReviewService defines the review stage updater
type ReviewService interface {
	// UpdateStage applies a partial update to one stage of a review and returns
	// the stored record with a confirmation message naming the stage.
	UpdateStage(ctx context.Context, reviewID, stageToken string, body map[string]json.RawMessage) (*models.StageRecord, string, error)
}

type reviewServiceImpl struct {
	reviewRepo repositories.IReviewRepository
	metrics    *metrics.Metrics
}

// NewReviewService creates a new review service
func NewReviewService(reviewRepo repositories.IReviewRepository, m *metrics.Metrics) ReviewService {
	return &reviewServiceImpl{
		reviewRepo: reviewRepo,
		metrics:    m,
	}
}

// parseStageFields converts a JSON object into column values. JSON null
// clears a field.
func parseStageFields(body map[string]json.RawMessage) (map[string]interface{}, error) {
	if len(body) == 0 {
		return nil, apperrors.NewValidationError("No stage fields to update")
	}

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make(map[string]interface{}, len(body))
	for _, key := range keys {
		column, ok := stageFieldColumns[key]
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown stage field: %s", key))
		}
		raw := body[key]
		if string(raw) == "null" {
			fields[column] = nil
			continue
		}

		switch key {
		case "score":
			var score int64
			if err := json.Unmarshal(raw, &score); err != nil {
				return nil, apperrors.NewValidationError("score must be an integer")
			}
			// stage score columns are INTEGER
			if score < math.MinInt32 || score > math.MaxInt32 {
				return nil, apperrors.NewValidationError("score is out of range")
			}
			fields[column] = int(score)
		default:
			var text string
			if err := json.Unmarshal(raw, &text); err != nil {
				return nil, apperrors.NewValidationError(fmt.Sprintf("%s must be a string", key))
			}
			fields[column] = text
		}
	}
	return fields, nil
}

func (s *reviewServiceImpl) UpdateStage(ctx context.Context, reviewID, stageToken string, body map[string]json.RawMessage) (*models.StageRecord, string, error) {
	stage, err := parseStageToken(stageToken)
	if err != nil {
		return nil, "", err
	}

	fields, err := parseStageFields(body)
	if err != nil {
		return nil, "", err
	}

	review, err := s.reviewRepo.GetWithStages(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", apperrors.NewNotFoundError(apperrors.ErrReviewNotFound, msgReviewStageNotFound)
		}
		return nil, "", fmt.Errorf("error loading review: %w", err)
	}

	slot := review.Stage(stage)
	if slot == nil {
		logger.Warn().Str("reviewID", reviewID).Str("stage", string(stage)).Msg("Review has no record for stage")
		return nil, "", apperrors.NewNotFoundError(apperrors.ErrReviewStageNotFound, msgReviewStageNotFound)
	}

	updated, err := s.reviewRepo.UpdateStage(ctx, stage, slot.ID, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", apperrors.NewNotFoundError(apperrors.ErrReviewStageNotFound, msgReviewStageNotFound)
		}
		return nil, "", fmt.Errorf("error updating review stage: %w", err)
	}

	s.metrics.StageUpdated(string(stage))
	return updated, fmt.Sprintf("review %s updated successfully", stage), nil
}
