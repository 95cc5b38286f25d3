package adapters

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jspector2018/podifyai/application/ports/outbound"
)

const (
	selectUsageCountQuery = `SELECT count FROM usage WHERE user_id = $1 AND month = $2`

	// Single-statement upsert so two concurrent completions for the same
	// user and month cannot lose an increment.
	upsertUsageQuery = `INSERT INTO usage (user_id, month, count) VALUES ($1, $2, 1) ON CONFLICT (user_id, month) DO UPDATE SET count = usage.count + 1`
)

type postgresUsageLedger struct {
	db     *sql.DB
	logger outbound.LoggerPort
}

func NewPostgresUsageLedger(db *sql.DB, logger outbound.LoggerPort) outbound.UsageLedgerPort {
	return &postgresUsageLedger{
		db:     db,
		logger: logger,
	}
}

func (l *postgresUsageLedger) MonthlyCount(ctx context.Context, userID, month string) (int, error) {
	var count int
	err := l.db.QueryRowContext(ctx, selectUsageCountQuery, userID, month).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		l.logger.ErrorWithFields(err, "Failed to read usage count", map[string]interface{}{
			"user_id": userID,
			"month":   month,
		})
		return 0, err
	}

	return count, nil
}

func (l *postgresUsageLedger) RecordCompletion(ctx context.Context, userID, month string) error {
	_, err := l.db.ExecContext(ctx, upsertUsageQuery, userID, month)
	return err
}
