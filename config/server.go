package config

type ServerConfig struct {
	Port                   string
	JwksUrl                string
	MonthlyConversionLimit int
}

func GetServerConfig() (*ServerConfig, error) {
	jwksUrl, err := requireEnv("JWKS_URL")
	if err != nil {
		return nil, err
	}

	return &ServerConfig{
		Port:                   getEnv("PORT", "8080"),
		JwksUrl:                jwksUrl,
		MonthlyConversionLimit: getEnvInt("MONTHLY_CONVERSION_LIMIT", 3),
	}, nil
}
