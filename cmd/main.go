package main

import (
	"context"
	"fmt"
	"voice-agent-api/application/ports/outbound"
	"voice-agent-api/application/services"
	"voice-agent-api/config"
	"voice-agent-api/infrastructure/adapters"
	"voice-agent-api/infrastructure/gin_interface/controllers"
	"voice-agent-api/middleware"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	serverConfig, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get server config")
	}

	assemblyConfig, err := config.GetAssemblyAIConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get AssemblyAI config")
	}

	geminiConfig, err := config.GetGeminiConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get Gemini config")
	}

	murfConfig, err := config.GetMurfConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get Murf config")
	}

	audioStoreConfig, err := config.GetAudioStoreConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get audio store config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(serverConfig.WorkerPoolSize, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	audioStore, err := buildAudioStore(audioStoreConfig, zeroLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create audio store")
	}

	contentFetcher := adapters.NewContentFetcher(zeroLogger)

	transcriber := adapters.NewAssemblyTranscriber(contentFetcher, assemblyConfig, zeroLogger)

	generator, err := adapters.NewGeminiResponseGenerator(context.Background(), geminiConfig, zeroLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	streamGenerator := adapters.NewGeminiStreamGenerator(geminiConfig, workerPool, zeroLogger)

	synthesizer := adapters.NewMurfSynthesizer(contentFetcher, murfConfig, audioStore, zeroLogger)

	sessionStore := adapters.NewMemorySessionStore()

	orchestrator := services.NewChatPipelineOrchestrator(zeroLogger, sessionStore, transcriber, generator, synthesizer)

	echoBot := services.NewEchoBot(zeroLogger, transcriber, synthesizer)

	voiceQuery := services.NewVoiceQuery(zeroLogger, transcriber, generator, synthesizer)

	agentController := controllers.NewAgentController(zeroLogger, orchestrator, echoBot, voiceQuery)
	ttsController := controllers.NewTTSController(zeroLogger, synthesizer)
	sttController := controllers.NewSTTController(zeroLogger, transcriber)
	llmController := controllers.NewLLMController(zeroLogger, generator, streamGenerator, workerPool)
	healthController := controllers.NewHealthController(zeroLogger)
	wsController := controllers.NewWSController(zeroLogger, streamGenerator, workerPool)

	router := gin.Default()

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestLogger(zeroLogger))

	if audioStoreConfig.Backend == config.AudioStoreLocal {
		router.Static(audioStoreConfig.PublicPath, audioStoreConfig.UploadsDir)
	}

	agentController.RegisterRoutes(router)
	ttsController.RegisterRoutes(router)
	sttController.RegisterRoutes(router)
	llmController.RegisterRoutes(router)
	healthController.RegisterRoutes(router)
	wsController.RegisterRoutes(router)

	err = router.Run(fmt.Sprintf(":%d", serverConfig.Port))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}

func buildAudioStore(audioStoreConfig *config.AudioStoreConfig, logger outbound.LoggerPort) (outbound.AudioStorePort, error) {
	if audioStoreConfig.Backend == config.AudioStoreS3 {
		s3Config, err := config.GetS3Config()
		if err != nil {
			return nil, err
		}

		sess := session.Must(session.NewSessionWithOptions(session.Options{
			SharedConfigState: session.SharedConfigEnable,
		}))

		return adapters.NewS3AudioStore(s3.New(sess), s3Config), nil
	}

	return adapters.NewLocalAudioStore(audioStoreConfig, logger)
}
