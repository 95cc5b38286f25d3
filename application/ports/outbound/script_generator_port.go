package outbound

import (
	"context"

	"github.com/jspector2018/podifyai/domain"
)

type GenerateScriptRequest struct {
	Text  string
	Style domain.Style
}

// ScriptGeneratorPort produces a narration script from extracted document
// text via the completion provider.
type ScriptGeneratorPort interface {
	Generate(ctx context.Context, req GenerateScriptRequest) (string, error)
}
