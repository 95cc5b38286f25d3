package domain

import (
	"math"
	"strings"
	"time"
)

type ConversionStatus string

const (
	StatusProcessing ConversionStatus = "processing"
	StatusComplete   ConversionStatus = "complete"
	StatusFailed     ConversionStatus = "failed"
)

// Conversion is one PDF-to-podcast job. AudioURL, Script and DurationSeconds
// stay zero-valued until the job completes.
type Conversion struct {
	ID              string
	UserID          string
	Title           string
	PDFURL          string
	AudioURL        string
	Style           Style
	Voice           Voice
	Script          string
	DurationSeconds int
	Status          ConversionStatus
	CreatedAt       time.Time
}

type NewConversion struct {
	UserID string
	Title  string
	PDFURL string
	Style  Style
	Voice  Voice
}

type ConversionResult struct {
	AudioURL        string
	Script          string
	DurationSeconds int
}

// Narration pace assumed when estimating episode length.
const wordsPerMinute = 150

func EstimateDurationSeconds(script string) int {
	wordCount := len(strings.Fields(script))
	return int(math.Round(float64(wordCount) / wordsPerMinute * 60))
}

// MonthKey returns the calendar month used as the usage ledger key,
// always derived from UTC wall-clock time.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
