package domain

type Style string

const (
	StyleQuick   Style = "quick"
	StyleSummary Style = "summary"
	StyleDeep    Style = "deep"
)

type StyleConfig struct {
	TargetWords int
	Description string
}

var styleConfigs = map[Style]StyleConfig{
	StyleQuick:   {TargetWords: 300, Description: "a quick 2-minute overview"},
	StyleSummary: {TargetWords: 750, Description: "a comprehensive 5-minute summary"},
	StyleDeep:    {TargetWords: 2250, Description: "a detailed 15-minute deep dive"},
}

func (s Style) Config() (StyleConfig, bool) {
	cfg, ok := styleConfigs[s]
	return cfg, ok
}

type Voice string

const (
	VoiceRachel Voice = "rachel"
	VoiceAdam   Voice = "adam"
	VoiceBella  Voice = "bella"
)

// ElevenLabs voice IDs
var voiceIDs = map[Voice]string{
	VoiceRachel: "21m00Tcm4TlvDq8ikWAM",
	VoiceAdam:   "pNInz6obpgDQGcFmaJgB",
	VoiceBella:  "EXAVITQu4vr4xnSDxMaL",
}

// ProviderID maps a voice preset to the synthesis provider's voice identifier.
func (v Voice) ProviderID() (string, bool) {
	id, ok := voiceIDs[v]
	return id, ok
}
