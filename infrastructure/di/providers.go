package di

import (
	"time"

	"go.uber.org/zap"

	"voicenotes-backend/application/access"
	"voicenotes-backend/application/ports"
	"voicenotes-backend/application/services"
	aiopenai "voicenotes-backend/infrastructure/ai/openai"
	"voicenotes-backend/infrastructure/config"
	"voicenotes-backend/infrastructure/persistence/cosmic"
	"voicenotes-backend/pkg/auth"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideVerifier creates the access-code verifier
func ProvideVerifier(cfg *config.Config) *access.Verifier {
	return access.NewVerifier(cfg.AccessCode)
}

// ProvideTokenCodec creates the verification token codec
func ProvideTokenCodec(cfg *config.Config) *access.TokenCodec {
	return access.NewTokenCodec(cfg.AccessTokenSecret, nil)
}

// ProvideVerifyRateLimiter creates the per-IP limiter guarding the
// access-code endpoint. Ten attempts per minute keeps brute forcing
// impractical without locking out fat-fingered users.
func ProvideVerifyRateLimiter() auth.RateLimiter {
	return auth.NewTokenBucketLimiter(10, 6*time.Second)
}

// ProvideBucketClient creates the content-store REST client
func ProvideBucketClient(cfg *config.Config, logger *zap.Logger) *cosmic.BucketClient {
	return cosmic.NewBucketClient(cosmic.ClientConfig{
		BucketSlug: cfg.CosmicBucketSlug,
		ReadKey:    cfg.CosmicReadKey,
		WriteKey:   cfg.CosmicWriteKey,
		Endpoint:   cfg.CosmicEndpoint,
	}, logger)
}

// ProvideContentStore creates the note store over the bucket client
func ProvideContentStore(client *cosmic.BucketClient, logger *zap.Logger) ports.ContentStore {
	return cosmic.NewStore(client, logger)
}

// ProvideGenerator creates the language-model client
func ProvideGenerator(cfg *config.Config, logger *zap.Logger) ports.Generator {
	return aiopenai.NewClient(aiopenai.Config{
		APIKey:         cfg.OpenAIKey,
		Model:          cfg.OpenAIModel,
		TitleTimeout:   cfg.AITitleTimeout,
		SummaryTimeout: cfg.AISummaryTimeout,
	}, logger)
}

// ProvideNoteService creates the note service
func ProvideNoteService(store ports.ContentStore, generator ports.Generator, logger *zap.Logger) *services.NoteService {
	return services.NewNoteService(store, generator, logger)
}

// ProvideChatService creates the chat service
func ProvideChatService(store ports.ContentStore, generator ports.Generator, logger *zap.Logger) *services.ChatService {
	return services.NewChatService(store, generator, logger)
}
