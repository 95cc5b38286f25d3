package outbound

// TextExtractorPort turns raw PDF bytes into plain text. Extraction is local,
// no network call is involved.
type TextExtractorPort interface {
	Extract(pdf []byte) (string, error)
}
