package adapters

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/jspector2018/podifyai/application/ports/outbound"
	"github.com/jspector2018/podifyai/domain"
)

const (
	insertConversionQuery = `INSERT INTO conversions (id, user_id, title, pdf_url, style, voice, status, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	// Both terminal updates are guarded on status so a record is moved out
	// of processing at most once and never leaves a terminal state.
	markCompleteQuery = `UPDATE conversions SET audio_url = $2, script = $3, duration_seconds = $4, status = 'complete' WHERE id = $1 AND status = 'processing'`
	markFailedQuery   = `UPDATE conversions SET status = 'failed' WHERE id = $1 AND status = 'processing'`

	listConversionsQuery = `SELECT id, user_id, title, pdf_url, audio_url, style, voice, script, duration_seconds, status, created_at FROM conversions WHERE user_id = $1 ORDER BY created_at DESC`
)

type postgresConversionRepository struct {
	db     *sql.DB
	logger outbound.LoggerPort
}

func NewPostgresConversionRepository(db *sql.DB, logger outbound.LoggerPort) outbound.ConversionRepositoryPort {
	return &postgresConversionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *postgresConversionRepository) Create(ctx context.Context, conv domain.NewConversion) (domain.Conversion, error) {
	created := domain.Conversion{
		ID:        uuid.NewString(),
		UserID:    conv.UserID,
		Title:     conv.Title,
		PDFURL:    conv.PDFURL,
		Style:     conv.Style,
		Voice:     conv.Voice,
		Status:    domain.StatusProcessing,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx, insertConversionQuery,
		created.ID, created.UserID, created.Title, created.PDFURL,
		string(created.Style), string(created.Voice), string(created.Status), created.CreatedAt)
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to insert conversion", map[string]interface{}{
			"user_id": conv.UserID,
		})
		return domain.Conversion{}, err
	}

	return created, nil
}

func (r *postgresConversionRepository) MarkComplete(ctx context.Context, id string, result domain.ConversionResult) error {
	res, err := r.db.ExecContext(ctx, markCompleteQuery,
		id, result.AudioURL, result.Script, result.DurationSeconds)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("conversion %s is not in processing state", id)
	}

	return nil
}

func (r *postgresConversionRepository) MarkFailed(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, markFailedQuery, id)
	return err
}

func (r *postgresConversionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Conversion, error) {
	rows, err := r.db.QueryContext(ctx, listConversionsQuery, userID)
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to query conversions", map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Error(err, "Failed to close rows")
		}
	}()

	var conversions []domain.Conversion
	for rows.Next() {
		var (
			conv     domain.Conversion
			style    string
			voice    string
			status   string
			audioURL sql.NullString
			script   sql.NullString
			duration sql.NullInt64
		)
		err := rows.Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.PDFURL,
			&audioURL, &style, &voice, &script, &duration, &status, &conv.CreatedAt)
		if err != nil {
			return nil, err
		}

		conv.Style = domain.Style(style)
		conv.Voice = domain.Voice(voice)
		conv.Status = domain.ConversionStatus(status)
		conv.AudioURL = audioURL.String
		conv.Script = script.String
		conv.DurationSeconds = int(duration.Int64)

		conversions = append(conversions, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return conversions, nil
}
