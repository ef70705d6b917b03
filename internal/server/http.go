package server

import (
	"context"
	"sync"
	"time"

	"jobscout/internal/common"
	"jobscout/internal/config"
	"jobscout/internal/errors"
	"jobscout/internal/observability"
)

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ResearchRequest is the JSON body for the research endpoint.
type ResearchRequest struct {
	Companies []string `json:"companies"`
}

// Server holds the HTTP server configuration and the lazily built
// pipeline engines shared across requests.
type Server struct {
	Host    string
	Port    string
	Version string

	AppConfig *config.Config

	TLSConfig          config.TLSConfig
	CertificateManager *CertificateManager

	// API keys as a set for O(1) lookup
	APIKeys map[string]bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	MaxRequestSize int64

	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	Logger *errors.Logger

	// Engines are built on first use and reused so circuit breakers
	// and AI clients keep their state across requests.
	engineMu       sync.Mutex
	sectionEngine  *common.Engine
	parseEngine    *common.Engine
	researchEngine *common.Engine
	reportEngine   *common.Engine
	obs            *observability.ObservabilityManager
}

// ServerConfig collects the knobs needed to construct a Server.
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a Server from the application config and the
// server-specific settings.
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *errors.Logger) *Server {
	apiKeys := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeys[key] = true
		}
	}

	var limiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		limiter = NewRateLimiter(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.BurstCapacity, logger)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeys,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    limiter,
		Logger:         logger,
	}
}

// getSectionEngine returns the AI-free parsing engine, building it on
// first use.
func (s *Server) getSectionEngine() (*common.Engine, error) {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()
	if s.sectionEngine == nil {
		eng, err := common.NewSectionEngine(s.AppConfig, s.Logger)
		if err != nil {
			return nil, err
		}
		eng.SetObservability(s.obs)
		s.sectionEngine = eng
	}
	return s.sectionEngine, nil
}

// getParseEngine returns the parse engine with skill extraction.
func (s *Server) getParseEngine() (*common.Engine, error) {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()
	if s.parseEngine == nil {
		eng, err := common.NewParseEngine(s.AppConfig, s.Logger)
		if err != nil {
			return nil, err
		}
		eng.SetObservability(s.obs)
		s.parseEngine = eng
	}
	return s.parseEngine, nil
}

// getResearchEngine returns the company research engine.
func (s *Server) getResearchEngine() (*common.Engine, error) {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()
	if s.researchEngine == nil {
		// Engines outlive the request, so they are built against the
		// background context rather than the request context.
		eng, err := common.NewResearchEngine(context.Background(), s.AppConfig, s.Logger)
		if err != nil {
			return nil, err
		}
		eng.SetObservability(s.obs)
		s.researchEngine = eng
	}
	return s.researchEngine, nil
}

// getReportEngine returns the full pipeline engine.
func (s *Server) getReportEngine() (*common.Engine, error) {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()
	if s.reportEngine == nil {
		eng, err := common.NewEngine(context.Background(), s.AppConfig, s.Logger)
		if err != nil {
			return nil, err
		}
		eng.SetObservability(s.obs)
		s.reportEngine = eng
	}
	return s.reportEngine, nil
}

// closeEngines releases all engines built during the server's lifetime.
func (s *Server) closeEngines() {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()
	for _, eng := range []*common.Engine{s.sectionEngine, s.parseEngine, s.researchEngine, s.reportEngine} {
		if eng == nil {
			continue
		}
		if err := eng.Close(); err != nil && s.Logger != nil {
			s.Logger.LogError(err, "Failed to close pipeline engine")
		}
	}
	s.sectionEngine = nil
	s.parseEngine = nil
	s.researchEngine = nil
	s.reportEngine = nil
}
