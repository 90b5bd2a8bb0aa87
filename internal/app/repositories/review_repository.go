package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/capstone/internal/app/models"
	"github.com/yigit/capstone/internal/pkg/logger"
)

// IReviewRepository defines the interface for review and stage persistence
type IReviewRepository interface {
	GetWithStages(ctx context.Context, reviewID string) (*models.Review, error)
	UpdateStage(ctx context.Context, stage models.Stage, recordID string, fields map[string]interface{}) (*models.StageRecord, error)
}

var stageColumns = []string{"id", "review_id", "score", "remarks", "status", "updated_at"}

// ReviewRepository handles review database operations
type ReviewRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanStageRecord(row pgx.Row) (*models.StageRecord, error) {
	rec := &models.StageRecord{}
	if err := row.Scan(&rec.ID, &rec.ReviewID, &rec.Score, &rec.Remarks, &rec.Status, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetWithStages retrieves a review with all six stage slots filled from storage.
// Slots without a row stay empty.
func (r *ReviewRepository) GetWithStages(ctx context.Context, reviewID string) (*models.Review, error) {
	sql, args, err := r.sb.Select("id", "project_id").
		From("reviews").
		Where(squirrel.Eq{"id": reviewID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get review query: %w", err)
	}

	review := &models.Review{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&review.ID, &review.ProjectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting review: %w", err)
	}

	byID := map[string]*models.Review{review.ID: review}
	if err := loadStages(ctx, r.db, r.sb, byID, models.Stages); err != nil {
		return nil, err
	}
	return review, nil
}

// UpdateStage writes the given column values into one stage row and returns
// the row as stored.
func (r *ReviewRepository) UpdateStage(ctx context.Context, stage models.Stage, recordID string, fields map[string]interface{}) (*models.StageRecord, error) {
	set := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		set[k] = v
	}
	set["updated_at"] = time.Now().UTC()

	sql, args, err := r.sb.Update(stage.Table()).
		SetMap(set).
		Where(squirrel.Eq{"id": recordID}).
		Suffix("RETURNING id, review_id, score, remarks, status, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update stage query: %w", err)
	}

	rec, err := scanStageRecord(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("stage", string(stage)).Str("recordID", recordID).Msg("Error executing update stage query")
		return nil, fmt.Errorf("error updating review stage: %w", err)
	}
	return rec, nil
}

// loadStages fills the requested stage slots of the given reviews, keyed by review id.
func loadStages(ctx context.Context, q DBTX, sb squirrel.StatementBuilderType, reviews map[string]*models.Review, stages []models.Stage) error {
	if len(reviews) == 0 {
		return nil
	}
	ids := make([]string, 0, len(reviews))
	for id := range reviews {
		ids = append(ids, id)
	}

	for _, stage := range stages {
		sql, args, err := sb.Select(stageColumns...).
			From(stage.Table()).
			Where(squirrel.Eq{"review_id": ids}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build %s query: %w", stage.Table(), err)
		}

		rows, err := q.Query(ctx, sql, args...)
		if err != nil {
			logger.Error().Err(err).Str("stage", string(stage)).Msg("Error querying review stage")
			return fmt.Errorf("error querying %s: %w", stage.Table(), err)
		}
		for rows.Next() {
			rec, err := scanStageRecord(rows)
			if err != nil {
				rows.Close()
				return fmt.Errorf("error scanning %s row: %w", stage.Table(), err)
			}
			if review, ok := reviews[rec.ReviewID]; ok {
				review.SetStage(stage, rec)
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating %s rows: %w", stage.Table(), err)
		}
	}
	return nil
}
