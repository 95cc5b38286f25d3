package adapters

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	"github.com/jspector2018/podifyai/application/ports/outbound"
	"github.com/jspector2018/podifyai/config"
)

const (
	// Extracted text beyond this is dropped from the prompt to bound
	// request size and cost.
	maxPromptChars = 15000

	scriptTemperature = 0.7
	scriptMaxTokens   = 4000

	scriptSystemPrompt = "You are an expert podcast scriptwriter who creates engaging, conversational audio content."
)

type openAIScriptGenerator struct {
	client *openai.Client
	cfg    *config.OpenAIConfig
	logger outbound.LoggerPort
}

func NewOpenAIScriptGenerator(client *openai.Client, cfg *config.OpenAIConfig, logger outbound.LoggerPort) outbound.ScriptGeneratorPort {
	return &openAIScriptGenerator{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

func (g *openAIScriptGenerator) Generate(ctx context.Context, req outbound.GenerateScriptRequest) (string, error) {
	styleConfig, ok := req.Style.Config()
	if !ok {
		return "", fmt.Errorf("unknown style %q", req.Style)
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: scriptSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildScriptPrompt(styleConfig.Description, styleConfig.TargetWords, req.Text),
			},
		},
		Temperature: scriptTemperature,
		MaxTokens:   scriptMaxTokens,
	})
	if err != nil {
		g.logger.Error(err, "Completion request failed")
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion provider returned no choices")
	}

	script := strings.TrimSpace(resp.Choices[0].Message.Content)
	if script == "" {
		return "", fmt.Errorf("completion provider returned an empty script")
	}

	g.logger.DebugWithFields("Generated narration script", map[string]interface{}{
		"style":        string(req.Style),
		"script_chars": len(script),
	})

	return script, nil
}

func buildScriptPrompt(styleDescription string, targetWords int, text string) string {
	text = truncateOnRuneBoundary(text, maxPromptChars)

	return fmt.Sprintf(`Convert the following PDF content into %s in a conversational, engaging podcast format.

Requirements:
- Target approximately %d words
- Write in a natural, conversational tone as if speaking directly to the listener
- Include an engaging introduction and clear conclusion
- Break down complex concepts into easy-to-understand explanations
- Use transitions and signposting ("First...", "Now let's talk about...", "Here's the interesting part...")
- NO stage directions, NO sound effects, NO music cues - just the spoken script
- Write as a single narrator (no dialogue or multiple speakers)

PDF Content:
%s

Generate the podcast script now:`, styleDescription, targetWords, text)
}

// truncateOnRuneBoundary cuts text to at most max bytes without splitting a
// multi-byte rune, which would leave an invalid UTF-8 tail in the prompt.
func truncateOnRuneBoundary(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
