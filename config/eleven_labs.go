package config

type ElevenLabsConfig struct {
	ApiUrl          string
	ApiKey          string
	ModelId         string
	Stability       float64
	SimilarityBoost float64
}

func GetElevenLabsConfig() (*ElevenLabsConfig, error) {
	apiKey, err := requireEnv("ELEVEN_LABS_API_KEY")
	if err != nil {
		return nil, err
	}

	return &ElevenLabsConfig{
		ApiUrl:          getEnv("ELEVEN_LABS_API_URL", "https://api.elevenlabs.io/v1/text-to-speech"),
		ApiKey:          apiKey,
		ModelId:         getEnv("ELEVEN_LABS_MODEL_ID", "eleven_monolingual_v1"),
		Stability:       getEnvFloat("ELEVEN_LABS_STABILITY", 0.5),
		SimilarityBoost: getEnvFloat("ELEVEN_LABS_SIMILARITY_BOOST", 0.75),
	}, nil
}
