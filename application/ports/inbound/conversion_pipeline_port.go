package inbound

import (
	"context"

	"github.com/jspector2018/podifyai/domain"
)

type ConvertRequest struct {
	UserID   string
	FileName string
	PDF      []byte
	Style    domain.Style
	Voice    domain.Voice
}

type ConvertResult struct {
	ConversionID string
	AudioURL     string
	Script       string
}

// ConversionPipelinePort runs the whole PDF-to-podcast workflow for one
// request: quota check, extraction, script generation, speech synthesis,
// artifact storage and usage bookkeeping, strictly in that order.
type ConversionPipelinePort interface {
	Convert(ctx context.Context, req ConvertRequest) (ConvertResult, error)
	ListConversions(ctx context.Context, userID string) ([]domain.Conversion, error)
}
