package adapters

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/jspector2018/podifyai/application/ports/outbound"
)

type pdfTextExtractor struct {
	logger outbound.LoggerPort
}

func NewPDFTextExtractor(logger outbound.LoggerPort) outbound.TextExtractorPort {
	return &pdfTextExtractor{
		logger: logger,
	}
}

func (p *pdfTextExtractor) Extract(data []byte) (text string, err error) {
	// The parser panics on some malformed documents instead of returning
	// an error, so the panic is converted here.
	defer func() {
		if r := recover(); r != nil {
			p.logger.WarnWithFields("PDF parser panicked", map[string]interface{}{
				"panic": fmt.Sprintf("%v", r),
			})
			text = ""
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		p.logger.Error(err, "Failed to open PDF")
		return "", fmt.Errorf("failed to parse PDF: %w", err)
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		p.logger.Error(err, "Failed to extract text from PDF")
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plainText); err != nil {
		return "", fmt.Errorf("failed to read extracted text: %w", err)
	}

	return buf.String(), nil
}
