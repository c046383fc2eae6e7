package di

import (
	"go.uber.org/zap"

	"voicenotes-backend/application/access"
	"voicenotes-backend/application/ports"
	"voicenotes-backend/application/services"
	"voicenotes-backend/infrastructure/config"
	"voicenotes-backend/pkg/auth"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	Verifier      *access.Verifier
	TokenCodec    *access.TokenCodec
	VerifyLimiter auth.RateLimiter
	Store         ports.ContentStore
	Generator     ports.Generator
	NoteService   *services.NoteService
	ChatService   *services.ChatService
}
