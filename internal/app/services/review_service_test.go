package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/capstone/internal/app/models"
	"github.com/yigit/capstone/internal/pkg/apperrors"
	"github.com/yigit/capstone/internal/pkg/metrics"
)

func body(t *testing.T, raw string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestUpdateStage_OnlyTargetStageChanges(t *testing.T) {
	store := newFakeStore()
	store.addStaff("g1")
	p := store.addProject("g1")
	review := store.reviewOf(p.ID)
	m := metrics.New(prometheus.NewRegistry())
	svc := NewReviewService(&fakeReviewRepo{store: store}, m)

	rec, msg, err := svc.UpdateStage(context.Background(), review.ID, "model", body(t, `{"score":8}`))
	require.NoError(t, err)
	assert.Equal(t, "review model updated successfully", msg)
	require.NotNil(t, rec.Score)
	assert.Equal(t, 8, *rec.Score)
	assert.Equal(t, review.Stage(models.StageModel).ID, rec.ID)

	for _, stage := range models.Stages {
		stored := store.reviews[review.ID].Stage(stage)
		if stage == models.StageModel {
			assert.Equal(t, 8, *stored.Score)
			continue
		}
		assert.Nil(t, stored.Score, stage)
		assert.Nil(t, stored.Remarks, stage)
		assert.Nil(t, stored.Status, stage)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageUpdates.WithLabelValues("model")))
}

func TestUpdateStage_PartialAndNullFields(t *testing.T) {
	store := newFakeStore()
	store.addStaff("g1")
	review := store.reviewOf(store.addProject("g1").ID)
	svc := NewReviewService(&fakeReviewRepo{store: store}, nil)
	ctx := context.Background()

	_, _, err := svc.UpdateStage(ctx, review.ID, "two", body(t, `{"score":7,"remarks":"good","status":"approved"}`))
	require.NoError(t, err)

	rec, _, err := svc.UpdateStage(ctx, review.ID, "two", body(t, `{"remarks":null}`))
	require.NoError(t, err)
	assert.Equal(t, 7, *rec.Score)
	assert.Nil(t, rec.Remarks)
	assert.Equal(t, "approved", *rec.Status)
}

func TestUpdateStage_Errors(t *testing.T) {
	store := newFakeStore()
	store.addStaff("g1")
	review := store.reviewOf(store.addProject("g1").ID)
	emptySlot := store.reviewOf(store.addProject("g1").ID)
	emptySlot.Stages[models.StageThree] = nil

	tests := []struct {
		name     string
		reviewID string
		stage    string
		body     string
		target   error
		message  string
	}{
		{"missing stage", review.ID, "", `{"score":1}`, apperrors.ErrValidationFailed, "Stage query parameter is required"},
		{"invalid stage", review.ID, "Final", `{"score":1}`, apperrors.ErrValidationFailed, "Invalid stage value"},
		{"empty body", review.ID, "one", `{}`, apperrors.ErrValidationFailed, "No stage fields to update"},
		{"unknown field", review.ID, "one", `{"grade":"A"}`, apperrors.ErrValidationFailed, "Unknown stage field: grade"},
		{"fractional score", review.ID, "one", `{"score":7.5}`, apperrors.ErrValidationFailed, "score must be an integer"},
		{"string score", review.ID, "one", `{"score":"7"}`, apperrors.ErrValidationFailed, "score must be an integer"},
		{"score above integer column", review.ID, "one", `{"score":3000000000}`, apperrors.ErrValidationFailed, "score is out of range"},
		{"score below integer column", review.ID, "one", `{"score":-2147483649}`, apperrors.ErrValidationFailed, "score is out of range"},
		{"numeric remarks", review.ID, "one", `{"remarks":3}`, apperrors.ErrValidationFailed, "remarks must be a string"},
		{"unknown review", "r-missing", "one", `{"score":1}`, apperrors.ErrResourceNotFound, "Review stage not found"},
		{"empty slot", emptySlot.ID, "three", `{"score":1}`, apperrors.ErrReviewStageNotFound, "Review stage not found"},
	}

	svc := NewReviewService(&fakeReviewRepo{store: store}, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.UpdateStage(context.Background(), tt.reviewID, tt.stage, body(t, tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}
