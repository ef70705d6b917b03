package ai

import (
	"fmt"

	"jobscout/internal/config"
	"jobscout/internal/errors"
)

// Service wraps an AIProvider configured for a single operation.
type Service struct {
	Provider AIProvider
	config   *config.OperationAIConfig
	logger   *errors.Logger
}

// NewService builds the provider named by cfg.Provider. The operation
// type selects loaded prompts and names circuit breakers.
func NewService(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*Service, error) {
	var provider AIProvider
	var err error

	switch cfg.Provider {
	case "gemini", "":
		provider, err = NewGeminiProvider(cfg, operationType, logger)
	default:
		return nil, errors.NewConfigError(
			errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unsupported AI provider: %s", cfg.Provider),
			nil,
		)
	}
	if err != nil {
		return nil, err
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// Close releases the underlying provider.
func (s *Service) Close() error {
	if s.Provider != nil {
		return s.Provider.Close()
	}
	return nil
}
