package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jspector2018/podifyai/application/ports/inbound"
	"github.com/jspector2018/podifyai/application/ports/outbound"
	"github.com/jspector2018/podifyai/domain"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(pdf []byte) (string, error) {
	return f.text, f.err
}

type fakeScriptGenerator struct {
	script   string
	err      error
	requests []outbound.GenerateScriptRequest
}

func (f *fakeScriptGenerator) Generate(ctx context.Context, req outbound.GenerateScriptRequest) (string, error) {
	f.requests = append(f.requests, req)
	return f.script, f.err
}

type fakeAudioGenerator struct {
	audio    []byte
	err      error
	requests []outbound.GenerateAudioRequest
}

func (f *fakeAudioGenerator) Generate(ctx context.Context, req outbound.GenerateAudioRequest) ([]byte, error) {
	f.requests = append(f.requests, req)
	return f.audio, f.err
}

type fakeBlobStore struct {
	requests []outbound.StoreBlobRequest
	failOn   string
}

func (f *fakeBlobStore) Store(ctx context.Context, req outbound.StoreBlobRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.failOn != "" && req.Bucket == f.failOn {
		return "", errors.New("blob store unavailable")
	}
	return "https://" + req.Bucket + ".s3.us-east-1.amazonaws.com/" + req.Path, nil
}

type fakeConversionRepository struct {
	mu        sync.Mutex
	created   []domain.Conversion
	createErr error
	completed map[string]domain.ConversionResult
	markErr   error
	failed    []string
	list      []domain.Conversion
}

func newFakeConversionRepository() *fakeConversionRepository {
	return &fakeConversionRepository{completed: make(map[string]domain.ConversionResult)}
}

func (f *fakeConversionRepository) Create(ctx context.Context, conv domain.NewConversion) (domain.Conversion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return domain.Conversion{}, f.createErr
	}
	created := domain.Conversion{
		ID:        "conv-1",
		UserID:    conv.UserID,
		Title:     conv.Title,
		PDFURL:    conv.PDFURL,
		Style:     conv.Style,
		Voice:     conv.Voice,
		Status:    domain.StatusProcessing,
		CreatedAt: time.Now(),
	}
	f.created = append(f.created, created)
	return created, nil
}

func (f *fakeConversionRepository) MarkComplete(ctx context.Context, id string, result domain.ConversionResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	f.completed[id] = result
	return nil
}

func (f *fakeConversionRepository) MarkFailed(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed = append(f.failed, id)
	return nil
}

func (f *fakeConversionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Conversion, error) {
	return f.list, nil
}

func (f *fakeConversionRepository) failedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.failed...)
}

type fakeUsageLedger struct {
	count      int
	countErr   error
	recorded   []string
	recordErr  error
	lastUserID string
}

func (f *fakeUsageLedger) MonthlyCount(ctx context.Context, userID, month string) (int, error) {
	return f.count, f.countErr
}

func (f *fakeUsageLedger) RecordCompletion(ctx context.Context, userID, month string) error {
	f.lastUserID = userID
	f.recorded = append(f.recorded, month)
	return f.recordErr
}

type nopLogger struct{}

func (nopLogger) Info(msg string)                                                      {}
func (nopLogger) InfoWithFields(msg string, fields map[string]interface{})             {}
func (nopLogger) Error(err error, msg string)                                          {}
func (nopLogger) ErrorWithFields(err error, msg string, fields map[string]interface{}) {}
func (nopLogger) Debug(msg string)                                                     {}
func (nopLogger) DebugWithFields(msg string, fields map[string]interface{})            {}
func (nopLogger) Warn(msg string)                                                      {}
func (nopLogger) WarnWithFields(msg string, fields map[string]interface{})             {}

type pipelineFixture struct {
	extractor *fakeExtractor
	scripts   *fakeScriptGenerator
	audio     *fakeAudioGenerator
	blobs     *fakeBlobStore
	repo      *fakeConversionRepository
	ledger    *fakeUsageLedger
	pipeline  inbound.ConversionPipelinePort
	pool      *ants.Pool
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	pool, err := ants.NewPool(4)
	require.NoError(t, err)
	t.Cleanup(pool.Release)

	f := &pipelineFixture{
		extractor: &fakeExtractor{text: strings.Repeat("extracted text ", 20)},
		scripts:   &fakeScriptGenerator{script: strings.Repeat("word ", 300)},
		audio:     &fakeAudioGenerator{audio: []byte("mp3-bytes")},
		blobs:     &fakeBlobStore{},
		repo:      newFakeConversionRepository(),
		ledger:    &fakeUsageLedger{},
		pool:      pool,
	}

	pipeline := NewConversionPipeline(
		nopLogger{}, pool,
		f.extractor, f.scripts, f.audio, f.blobs, f.repo, f.ledger,
		ConversionPipelineConfig{
			PDFBucket:    "pdfs",
			AudioBucket:  "audio",
			MonthlyLimit: 3,
		},
	)
	// Pin the clock so month keys and blob paths are deterministic.
	pipeline.(*conversionPipeline).now = func() time.Time {
		return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	f.pipeline = pipeline
	return f
}

func validRequest() inbound.ConvertRequest {
	return inbound.ConvertRequest{
		UserID:   "user-1",
		FileName: "quarterly-report.pdf",
		PDF:      []byte("%PDF-1.4 fake"),
		Style:    domain.StyleQuick,
		Voice:    domain.VoiceRachel,
	}
}

func requireErrorKind(t *testing.T, err error, kind domain.ErrorKind) {
	t.Helper()
	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, kind, domainErr.Kind)
}

func TestConvertSuccess(t *testing.T) {
	f := newPipelineFixture(t)

	res, err := f.pipeline.Convert(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "conv-1", res.ConversionID)
	assert.Equal(t, f.scripts.script, res.Script)
	assert.Contains(t, res.AudioURL, "audio.s3")

	require.Len(t, f.repo.created, 1)
	assert.Equal(t, "quarterly-report", f.repo.created[0].Title)
	assert.Contains(t, f.repo.created[0].PDFURL, "pdfs.s3")

	result, ok := f.repo.completed["conv-1"]
	require.True(t, ok)
	assert.Equal(t, 120, result.DurationSeconds)
	assert.Equal(t, f.scripts.script, result.Script)
	assert.Equal(t, res.AudioURL, result.AudioURL)

	require.Len(t, f.blobs.requests, 2)
	assert.Equal(t, "application/pdf", f.blobs.requests[0].ContentType)
	assert.Equal(t, "audio/mpeg", f.blobs.requests[1].ContentType)

	assert.Equal(t, []string{"2024-03"}, f.ledger.recorded)
	assert.Equal(t, "user-1", f.ledger.lastUserID)
	assert.Empty(t, f.repo.failedIDs())
}

func TestConvertQuotaExceeded(t *testing.T) {
	f := newPipelineFixture(t)
	f.ledger.count = 3

	_, err := f.pipeline.Convert(context.Background(), validRequest())
	requireErrorKind(t, err, domain.ErrQuotaExceeded)

	assert.Empty(t, f.repo.created)
	assert.Empty(t, f.blobs.requests)
	assert.Empty(t, f.scripts.requests)
}

func TestConvertUnderQuotaProceeds(t *testing.T) {
	f := newPipelineFixture(t)
	f.ledger.count = 2

	_, err := f.pipeline.Convert(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03"}, f.ledger.recorded)
}

func TestConvertShortTextAbortsBeforeGeneration(t *testing.T) {
	f := newPipelineFixture(t)
	f.extractor.text = "too short"

	_, err := f.pipeline.Convert(context.Background(), validRequest())
	requireErrorKind(t, err, domain.ErrExtraction)

	assert.Empty(t, f.repo.created)
	assert.Empty(t, f.blobs.requests)
	assert.Empty(t, f.scripts.requests)
	assert.Empty(t, f.audio.requests)
}

func TestConvertShortMultiByteTextAbortsBeforeGeneration(t *testing.T) {
	f := newPipelineFixture(t)
	// 50 characters but 150 bytes; the minimum counts characters.
	f.extractor.text = strings.Repeat("日", 50)

	_, err := f.pipeline.Convert(context.Background(), validRequest())
	requireErrorKind(t, err, domain.ErrExtraction)

	assert.Empty(t, f.repo.created)
	assert.Empty(t, f.scripts.requests)
	assert.Empty(t, f.audio.requests)
}

func TestConvertMultiByteTextAboveMinimumProceeds(t *testing.T) {
	f := newPipelineFixture(t)
	f.extractor.text = strings.Repeat("日", 120)

	_, err := f.pipeline.Convert(context.Background(), validRequest())
	require.NoError(t, err)
	require.Len(t, f.scripts.requests, 1)
}

func TestConvertExtractionFailure(t *testing.T) {
	f := newPipelineFixture(t)
	f.extractor.err = errors.New("no text layer")

	_, err := f.pipeline.Convert(context.Background(), validRequest())
	requireErrorKind(t, err, domain.ErrExtraction)
	assert.Empty(t, f.repo.created)
}

func TestConvertInvalidStyle(t *testing.T) {
	f := newPipelineFixture(t)
	req := validRequest()
	req.Style = "verbose"

	_, err := f.pipeline.Convert(context.Background(), req)
	requireErrorKind(t, err, domain.ErrValidation)
}

func TestConvertInvalidVoice(t *testing.T) {
	f := newPipelineFixture(t)
	req := validRequest()
	req.Voice = "morgan"

	_, err := f.pipeline.Convert(context.Background(), req)
	requireErrorKind(t, err, domain.ErrValidation)
}

func TestConvertEmptyPDF(t *testing.T) {
	f := newPipelineFixture(t)
	req := validRequest()
	req.PDF = nil

	_, err := f.pipeline.Convert(context.Background(), req)
	requireErrorKind(t, err, domain.ErrValidation)
}

func TestConvertGenerationFailureMarksRecordFailed(t *testing.T) {
	f := newPipelineFixture(t)
	f.scripts.err = errors.New("provider returned no choices")

	_, err := f.pipeline.Convert(context.Background(), validRequest())
	requireErrorKind(t, err, domain.ErrGeneration)

	assert.Empty(t, f.audio.requests)
	require.Eventually(t, func() bool {
		return len(f.repo.failedIDs()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "conv-1", f.repo.failedIDs()[0])
	assert.Empty(t, f.ledger.recorded)
}

func TestConvertSynthesisFailureMarksRecordFailed(t *testing.T) {
	f := newPipelineFixture(t)
	f.audio.err = errors.New("voice service 500")

	_, err := f.pipeline.Convert(context.Background(), validRequest())
	requireErrorKind(t, err, domain.ErrSynthesis)

	require.Eventually(t, func() bool {
		return len(f.repo.failedIDs()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Empty(t, f.ledger.recorded)
}

func TestConvertAudioUploadFailureMarksRecordFailed(t *testing.T) {
	f := newPipelineFixture(t)
	f.blobs.failOn = "audio"

	_, err := f.pipeline.Convert(context.Background(), validRequest())
	requireErrorKind(t, err, domain.ErrPersistence)

	require.Eventually(t, func() bool {
		return len(f.repo.failedIDs()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Empty(t, f.ledger.recorded)
}

func TestConvertMarkCompleteFailureMarksRecordFailed(t *testing.T) {
	f := newPipelineFixture(t)
	f.repo.markErr = errors.New("connection reset")

	_, err := f.pipeline.Convert(context.Background(), validRequest())
	requireErrorKind(t, err, domain.ErrPersistence)

	// The record must not linger in processing when the completion
	// update fails.
	require.Eventually(t, func() bool {
		return len(f.repo.failedIDs()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "conv-1", f.repo.failedIDs()[0])
	assert.Empty(t, f.ledger.recorded)
}

func TestConvertLedgerFailureDoesNotFailConversion(t *testing.T) {
	f := newPipelineFixture(t)
	f.ledger.recordErr = errors.New("usage table locked")

	res, err := f.pipeline.Convert(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, res.AudioURL)
	assert.Contains(t, f.repo.completed, "conv-1")
}

func TestListConversions(t *testing.T) {
	f := newPipelineFixture(t)
	f.repo.list = []domain.Conversion{
		{ID: "conv-2", Status: domain.StatusComplete},
		{ID: "conv-1", Status: domain.StatusFailed},
	}

	conversions, err := f.pipeline.ListConversions(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, conversions, 2)
	assert.Equal(t, "conv-2", conversions[0].ID)
}
