package dto

import (
	"time"

	"github.com/jspector2018/podifyai/domain"
)

type ConversionResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	PDFURL          string    `json:"pdf_url"`
	AudioURL        string    `json:"audio_url,omitempty"`
	Style           string    `json:"style"`
	Voice           string    `json:"voice"`
	Script          string    `json:"script,omitempty"`
	DurationSeconds int       `json:"duration_seconds,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type ListConversionsResponse struct {
	Conversions []ConversionResponse `json:"conversions"`
}

func FromConversion(conv domain.Conversion) ConversionResponse {
	return ConversionResponse{
		ID:              conv.ID,
		Title:           conv.Title,
		PDFURL:          conv.PDFURL,
		AudioURL:        conv.AudioURL,
		Style:           string(conv.Style),
		Voice:           string(conv.Voice),
		Script:          conv.Script,
		DurationSeconds: conv.DurationSeconds,
		Status:          string(conv.Status),
		CreatedAt:       conv.CreatedAt,
	}
}
