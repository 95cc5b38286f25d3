package outbound

import "context"

// UsageLedgerPort tracks completed conversions per user and calendar month.
// RecordCompletion must be a single atomic upsert-increment so that
// concurrent requests for the same user never lose a count.
type UsageLedgerPort interface {
	MonthlyCount(ctx context.Context, userID, month string) (int, error)
	RecordCompletion(ctx context.Context, userID, month string) error
}
