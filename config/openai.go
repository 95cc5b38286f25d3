package config

type OpenAIConfig struct {
	ApiKey  string
	Model   string
	BaseURL string
}

func GetOpenAIConfig() (*OpenAIConfig, error) {
	apiKey, err := requireEnv("OPENAI_API_KEY")
	if err != nil {
		return nil, err
	}

	return &OpenAIConfig{
		ApiKey: apiKey,
		Model:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		// Empty keeps the client's default endpoint; set for tests or proxies.
		BaseURL: getEnv("OPENAI_API_URL", ""),
	}, nil
}
