package api

import (
	"context"

	"civil-defense-app/internal/api/adapter/httpclient"
	"civil-defense-app/internal/api/config"
	"civil-defense-app/internal/api/domain/client"
	"civil-defense-app/internal/api/usecase"
	sessionmodel "civil-defense-app/internal/session/domain/model"
	"civil-defense-app/internal/shared/logger"
)

// SessionStore is what the api module needs from the session module:
// the token for every call and a place to put the login result.
type SessionStore interface {
	Token() string
	Set(ctx context.Context, session sessionmodel.Session) error
}

// APIModule represents the backend access layer
type APIModule struct {
	usecase *usecase.CivilDefenseUsecase
}

// NewAPIModule creates the HTTP client and the domain operations over it.
func NewAPIModule(cfg *config.Config, sessions SessionStore, log logger.Logger, opts ...httpclient.Option) (*APIModule, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := httpclient.NewClient(cfg, sessions, log, opts...)
	uc := usecase.NewCivilDefenseUsecase(httpClient, sessions, log)

	log.WithComponent("api").WithFields(map[string]interface{}{
		"base_url": cfg.BaseURL,
	}).Info("API module initialized")

	return &APIModule{
		usecase: uc,
	}, nil
}

// GetClient returns the domain operations
func (m *APIModule) GetClient() client.CivilDefenseClient {
	return m.usecase
}

