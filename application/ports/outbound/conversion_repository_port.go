package outbound

import (
	"context"

	"github.com/jspector2018/podifyai/domain"
)

// ConversionRepositoryPort owns the conversions table. A conversion is
// created in the processing state and moved exactly once to a terminal
// state; the Mark methods must refuse to touch a record that is already
// terminal.
type ConversionRepositoryPort interface {
	Create(ctx context.Context, conv domain.NewConversion) (domain.Conversion, error)
	MarkComplete(ctx context.Context, id string, result domain.ConversionResult) error
	MarkFailed(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Conversion, error)
}
