package main

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/jspector2018/podifyai/application/services"
	"github.com/jspector2018/podifyai/config"
	"github.com/jspector2018/podifyai/infrastructure/adapters"
	"github.com/jspector2018/podifyai/infrastructure/gin_interface/controllers"
	"github.com/jspector2018/podifyai/middleware"
)

func main() {
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	serverConfig, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get server config")
	}

	openAIConfig, err := config.GetOpenAIConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get openai config")
	}

	elevenLabsConfig, err := config.GetElevenLabsConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get eleven labs config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	postgresConfig := config.GetPostgresConfig()

	logger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		logger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(32, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	db, err := sql.Open("postgres", postgresConfig.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database connection")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}

	sess := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(s3Config.Region),
	}))
	s3Client := s3.New(sess)

	openAIClientConfig := openai.DefaultConfig(openAIConfig.ApiKey)
	if openAIConfig.BaseURL != "" {
		openAIClientConfig.BaseURL = openAIConfig.BaseURL
	}
	openAIClient := openai.NewClientWithConfig(openAIClientConfig)

	contentFetcher := adapters.NewContentFetcher(http.DefaultClient, logger)

	textExtractor := adapters.NewPDFTextExtractor(logger)
	scriptGenerator := adapters.NewOpenAIScriptGenerator(openAIClient, openAIConfig, logger)
	audioGenerator := adapters.NewElevenLabsAudioGenerator(contentFetcher, elevenLabsConfig, logger)
	blobStore := adapters.NewS3BlobStore(s3Client, s3Config, logger)
	conversionRepository := adapters.NewPostgresConversionRepository(db, logger)
	usageLedger := adapters.NewPostgresUsageLedger(db, logger)

	conversionPipeline := services.NewConversionPipeline(
		logger, workerPool,
		textExtractor, scriptGenerator, audioGenerator, blobStore,
		conversionRepository, usageLedger,
		services.ConversionPipelineConfig{
			PDFBucket:    s3Config.PDFBucketName,
			AudioBucket:  s3Config.AudioBucketName,
			MonthlyLimit: serverConfig.MonthlyConversionLimit,
		},
	)

	conversionsController := controllers.NewConversionsController(logger, conversionPipeline)

	router := gin.Default()
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	authHandler, err := middleware.NewAuthHandler(serverConfig.JwksUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth handler!")
	}
	router.Use(authHandler.AuthMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	conversionsController.RegisterRoutes(router)

	if err := router.Run(":" + serverConfig.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
