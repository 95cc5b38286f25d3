package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetElevenLabsConfigDefaults(t *testing.T) {
	t.Setenv("ELEVEN_LABS_API_KEY", "xi-key")
	t.Setenv("ELEVEN_LABS_API_URL", "")
	t.Setenv("ELEVEN_LABS_MODEL_ID", "")
	t.Setenv("ELEVEN_LABS_STABILITY", "")
	t.Setenv("ELEVEN_LABS_SIMILARITY_BOOST", "")

	cfg, err := GetElevenLabsConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.elevenlabs.io/v1/text-to-speech", cfg.ApiUrl)
	assert.Equal(t, "eleven_monolingual_v1", cfg.ModelId)
	assert.Equal(t, 0.5, cfg.Stability)
	assert.Equal(t, 0.75, cfg.SimilarityBoost)
}

func TestGetElevenLabsConfigMissingKey(t *testing.T) {
	t.Setenv("ELEVEN_LABS_API_KEY", "")

	_, err := GetElevenLabsConfig()
	assert.Error(t, err)
}

func TestGetOpenAIConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("OPENAI_API_URL", "")

	cfg, err := GetOpenAIConfig()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Empty(t, cfg.BaseURL)
}

func TestGetPostgresConfig(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_SSLMODE", "")

	cfg := GetPostgresConfig()
	assert.Contains(t, cfg.URL, "host=db.internal")
	assert.Contains(t, cfg.URL, "password='s3cret'")
	assert.Contains(t, cfg.URL, "sslmode=disable")
}

func TestGetPostgresConfigQuotesSpecialPassword(t *testing.T) {
	t.Setenv("DB_PASSWORD", `pa ss'wo\rd`)

	cfg := GetPostgresConfig()
	assert.Contains(t, cfg.URL, `password='pa ss\'wo\\rd'`)
}

func TestGetServerConfigDefaults(t *testing.T) {
	t.Setenv("JWKS_URL", "https://auth.example.com/.well-known/jwks.json")
	t.Setenv("PORT", "")
	t.Setenv("MONTHLY_CONVERSION_LIMIT", "")

	cfg, err := GetServerConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 3, cfg.MonthlyConversionLimit)
}
