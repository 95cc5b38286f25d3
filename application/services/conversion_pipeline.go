package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"

	"github.com/jspector2018/podifyai/application/ports/inbound"
	"github.com/jspector2018/podifyai/application/ports/outbound"
	"github.com/jspector2018/podifyai/domain"
)

const (
	// Documents whose trimmed text has fewer characters than this are
	// treated as unreadable before any provider call is made.
	minExtractedChars = 100

	markFailedTimeout = 10 * time.Second
)

type ConversionPipelineConfig struct {
	PDFBucket    string
	AudioBucket  string
	MonthlyLimit int
}

type conversionPipeline struct {
	logger      outbound.LoggerPort
	workerPool  *ants.Pool
	extractor   outbound.TextExtractorPort
	scripts     outbound.ScriptGeneratorPort
	audio       outbound.AudioGeneratorPort
	blobs       outbound.BlobStorePort
	conversions outbound.ConversionRepositoryPort
	ledger      outbound.UsageLedgerPort
	cfg         ConversionPipelineConfig
	now         func() time.Time
}

func NewConversionPipeline(
	logger outbound.LoggerPort,
	workerPool *ants.Pool,
	extractor outbound.TextExtractorPort,
	scripts outbound.ScriptGeneratorPort,
	audio outbound.AudioGeneratorPort,
	blobs outbound.BlobStorePort,
	conversions outbound.ConversionRepositoryPort,
	ledger outbound.UsageLedgerPort,
	cfg ConversionPipelineConfig,
) inbound.ConversionPipelinePort {
	return &conversionPipeline{
		logger:      logger,
		workerPool:  workerPool,
		extractor:   extractor,
		scripts:     scripts,
		audio:       audio,
		blobs:       blobs,
		conversions: conversions,
		ledger:      ledger,
		cfg:         cfg,
		now:         time.Now,
	}
}

func (p *conversionPipeline) Convert(ctx context.Context, req inbound.ConvertRequest) (inbound.ConvertResult, error) {
	if len(req.PDF) == 0 {
		return inbound.ConvertResult{}, domain.NewValidationError("pdf file is required")
	}
	if _, ok := req.Style.Config(); !ok {
		return inbound.ConvertResult{}, domain.NewValidationError(fmt.Sprintf("unknown style %q", req.Style))
	}
	voiceID, ok := req.Voice.ProviderID()
	if !ok {
		return inbound.ConvertResult{}, domain.NewValidationError(fmt.Sprintf("unknown voice %q", req.Voice))
	}

	month := domain.MonthKey(p.now())
	count, err := p.ledger.MonthlyCount(ctx, req.UserID, month)
	if err != nil {
		return inbound.ConvertResult{}, domain.NewPersistenceError("failed to read usage", err)
	}
	if count >= p.cfg.MonthlyLimit {
		return inbound.ConvertResult{}, domain.NewQuotaExceededError(
			"Monthly limit reached. Upgrade to Pro for unlimited conversions.")
	}

	text, err := p.extractor.Extract(req.PDF)
	if err != nil {
		return inbound.ConvertResult{}, domain.NewExtractionError(
			"PDF appears to be empty or contains no extractable text", err)
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minExtractedChars {
		return inbound.ConvertResult{}, domain.NewExtractionError(
			"PDF appears to be empty or contains no extractable text", nil)
	}

	// The source PDF is stored up front and kept even when a later step
	// fails, so a failed conversion can still be inspected.
	pdfPath := fmt.Sprintf("%s/%d-%s", req.UserID, p.now().UnixMilli(), req.FileName)
	pdfURL, err := p.blobs.Store(ctx, outbound.StoreBlobRequest{
		Bucket:      p.cfg.PDFBucket,
		Path:        pdfPath,
		ContentType: "application/pdf",
		Content:     req.PDF,
	})
	if err != nil {
		return inbound.ConvertResult{}, domain.NewPersistenceError("failed to upload PDF", err)
	}

	conv, err := p.conversions.Create(ctx, domain.NewConversion{
		UserID: req.UserID,
		Title:  strings.TrimSuffix(req.FileName, ".pdf"),
		PDFURL: pdfURL,
		Style:  req.Style,
		Voice:  req.Voice,
	})
	if err != nil {
		return inbound.ConvertResult{}, domain.NewPersistenceError("failed to create conversion record", err)
	}

	script, err := p.scripts.Generate(ctx, outbound.GenerateScriptRequest{
		Text:  text,
		Style: req.Style,
	})
	if err != nil {
		p.markFailed(conv.ID)
		return inbound.ConvertResult{}, domain.NewGenerationError("failed to generate script", err)
	}

	audioContent, err := p.audio.Generate(ctx, outbound.GenerateAudioRequest{
		Text:    script,
		VoiceID: voiceID,
	})
	if err != nil {
		p.markFailed(conv.ID)
		return inbound.ConvertResult{}, domain.NewSynthesisError("failed to generate audio", err)
	}

	audioPath := fmt.Sprintf("%s/%d.mp3", req.UserID, p.now().UnixMilli())
	audioURL, err := p.blobs.Store(ctx, outbound.StoreBlobRequest{
		Bucket:      p.cfg.AudioBucket,
		Path:        audioPath,
		ContentType: "audio/mpeg",
		Content:     audioContent,
	})
	if err != nil {
		p.markFailed(conv.ID)
		return inbound.ConvertResult{}, domain.NewPersistenceError("failed to upload audio", err)
	}

	err = p.conversions.MarkComplete(ctx, conv.ID, domain.ConversionResult{
		AudioURL:        audioURL,
		Script:          script,
		DurationSeconds: domain.EstimateDurationSeconds(script),
	})
	if err != nil {
		p.markFailed(conv.ID)
		return inbound.ConvertResult{}, domain.NewPersistenceError("failed to update conversion record", err)
	}

	// A lost increment here under-counts usage for the month; the
	// conversion itself already succeeded, so the error is not surfaced.
	if err := p.ledger.RecordCompletion(ctx, req.UserID, month); err != nil {
		p.logger.ErrorWithFields(err, "Failed to record usage", map[string]interface{}{
			"user_id": req.UserID,
			"month":   month,
		})
	}

	return inbound.ConvertResult{
		ConversionID: conv.ID,
		AudioURL:     audioURL,
		Script:       script,
	}, nil
}

func (p *conversionPipeline) ListConversions(ctx context.Context, userID string) ([]domain.Conversion, error) {
	conversions, err := p.conversions.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to fetch conversions", err)
	}
	return conversions, nil
}

// markFailed is best-effort: the record update runs on the worker pool with
// its own deadline so the caller's error response is not delayed, and falls
// back to a synchronous update when the pool rejects the task.
func (p *conversionPipeline) markFailed(conversionID string) {
	update := func() {
		ctx, cancel := context.WithTimeout(context.Background(), markFailedTimeout)
		defer cancel()
		if err := p.conversions.MarkFailed(ctx, conversionID); err != nil {
			p.logger.ErrorWithFields(err, "Failed to mark conversion as failed", map[string]interface{}{
				"conversion_id": conversionID,
			})
		}
	}

	if err := p.workerPool.Submit(update); err != nil {
		p.logger.Error(err, "Failed to submit task to worker pool")
		update()
	}
}
