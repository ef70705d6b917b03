package config

import (
	"strings"
	"testing"
	"time"
)

func validTestConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider:    "gemini",
			Model:       "gemini-2.0-flash",
			Timeout:     60 * time.Second,
			APIKey:      "test-key",
			MaxRetries:  3,
			Temperature: 0.7,
		},
		Resume: ResumeConfig{
			Sections: []SectionConfig{
				{ID: "Summary"},
				{ID: "Professional Experience"},
				{ID: "Education"},
			},
			ExperienceKey: "Professional Experience",
		},
		Server: ServerConfig{
			Port: "8080",
			TLS:  TLSConfig{Mode: "disabled"},
		},
		App: AppConfig{
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid config", func(c *Config) {}, ""},
		{"missing AI key", func(c *Config) { c.AI.APIKey = "" }, "AI API key is required"},
		{"non-positive timeout", func(c *Config) { c.AI.Timeout = 0 }, "AI timeout must be positive"},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "server port is required"},
		{"unsupported default format", func(c *Config) { c.App.DefaultFormat = "xml" }, "invalid default format"},
		{"no resume sections", func(c *Config) { c.Resume.Sections = nil }, "at least one resume section"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid config, got error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateResumeConfig(t *testing.T) {
	tests := []struct {
		name    string
		resume  ResumeConfig
		wantErr string
	}{
		{
			name: "valid layout",
			resume: ResumeConfig{
				Sections:      []SectionConfig{{ID: "Experience"}, {ID: "Education"}},
				ExperienceKey: "Experience",
			},
		},
		{
			name: "empty experience key",
			resume: ResumeConfig{
				Sections: []SectionConfig{{ID: "Experience"}},
			},
			wantErr: "experienceKey is required",
		},
		{
			name: "experience key not configured",
			resume: ResumeConfig{
				Sections:      []SectionConfig{{ID: "Education"}},
				ExperienceKey: "Experience",
			},
			wantErr: "not among the configured sections",
		},
		{
			name: "duplicate identifier",
			resume: ResumeConfig{
				Sections:      []SectionConfig{{ID: "Experience"}, {ID: "Experience"}},
				ExperienceKey: "Experience",
			},
			wantErr: "duplicate resume section identifier",
		},
		{
			name: "empty identifier",
			resume: ResumeConfig{
				Sections:      []SectionConfig{{ID: ""}},
				ExperienceKey: "Experience",
			},
			wantErr: "empty identifier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			cfg.Resume = tt.resume

			err := cfg.ValidateResumeConfig()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyOperationDefaults(t *testing.T) {
	cfg := validTestConfig()
	cfg.AI.MaxRetries = 5
	cfg.AI.Temperature = 0.9

	t.Run("empty operation inherits globals", func(t *testing.T) {
		op := cfg.GetExtractSkillsConfig()
		if op.Provider != "gemini" || op.Model != "gemini-2.0-flash" {
			t.Errorf("provider/model not inherited: %s/%s", op.Provider, op.Model)
		}
		if op.APIKey != "test-key" {
			t.Errorf("APIKey not inherited: %q", op.APIKey)
		}
		if op.MaxRetries == nil || *op.MaxRetries != 5 {
			t.Errorf("MaxRetries not inherited: %v", op.MaxRetries)
		}
		if op.Temperature == nil || *op.Temperature != 0.9 {
			t.Errorf("Temperature not inherited: %v", op.Temperature)
		}
		if op.Timeout == nil || *op.Timeout != 60*time.Second {
			t.Errorf("Timeout not inherited: %v", op.Timeout)
		}
	})

	t.Run("explicit values win", func(t *testing.T) {
		retries := 1
		temp := float32(0.1)
		cfg.AI.ExtractSkills = OperationAIConfig{
			Model:       "gemini-2.5-pro",
			APIKey:      "op-key",
			MaxRetries:  &retries,
			Temperature: &temp,
		}
		op := cfg.GetExtractSkillsConfig()
		if op.Model != "gemini-2.5-pro" {
			t.Errorf("explicit model overridden: %q", op.Model)
		}
		if op.APIKey != "op-key" {
			t.Errorf("explicit APIKey overridden: %q", op.APIKey)
		}
		if *op.MaxRetries != 1 || *op.Temperature != 0.1 {
			t.Errorf("explicit retries/temperature overridden: %d %f", *op.MaxRetries, *op.Temperature)
		}
	})
}

func TestValidateTLSConfig(t *testing.T) {
	tests := []struct {
		name    string
		tls     TLSConfig
		wantErr bool
	}{
		{"disabled needs nothing", TLSConfig{Mode: "disabled"}, false},
		{"server mode with files", TLSConfig{Mode: "server", CertFile: "c.pem", KeyFile: "k.pem"}, false},
		{"server mode with content", TLSConfig{Mode: "server", CertContent: "cert", KeyContent: "key"}, false},
		{"server mode missing key", TLSConfig{Mode: "server", CertFile: "c.pem"}, true},
		{"server mode duplicate cert sources", TLSConfig{Mode: "server", CertFile: "c.pem", CertContent: "cert", KeyFile: "k.pem"}, true},
		{"mutual mode missing CA", TLSConfig{Mode: "mutual", CertFile: "c.pem", KeyFile: "k.pem"}, true},
		{"mutual mode complete", TLSConfig{Mode: "mutual", CertFile: "c.pem", KeyFile: "k.pem", CAFile: "ca.pem"}, false},
		{"mutual mode bad auth policy", TLSConfig{Mode: "mutual", CertFile: "c.pem", KeyFile: "k.pem", CAFile: "ca.pem", ClientAuthPolicy: "optional"}, true},
		{"unknown mode", TLSConfig{Mode: "tls13"}, true},
		{"bad min version", TLSConfig{Mode: "disabled", MinVersion: "1.1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			cfg.Server.TLS = tt.tls

			err := cfg.ValidateTLSConfig()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestApplyFallbacks(t *testing.T) {
	t.Run("server API keys from env", func(t *testing.T) {
		t.Setenv("JOBSCOUT_SERVER_APIKEYS", "key-a, key-b ,key-c")
		cfg := validTestConfig()
		cfg.applyFallbacks()
		want := []string{"key-a", "key-b", "key-c"}
		if len(cfg.Server.APIKeys) != len(want) {
			t.Fatalf("got %d keys, want %d", len(cfg.Server.APIKeys), len(want))
		}
		for i, k := range want {
			if cfg.Server.APIKeys[i] != k {
				t.Errorf("key[%d] = %q, want %q", i, cfg.Server.APIKeys[i], k)
			}
		}
	})

	t.Run("mutual TLS gets auth policy default", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Server.TLS.Mode = "mutual"
		cfg.applyFallbacks()
		if cfg.Server.TLS.ClientAuthPolicy != "require" {
			t.Errorf("ClientAuthPolicy = %q, want require", cfg.Server.TLS.ClientAuthPolicy)
		}
		if cfg.Server.TLS.MinVersion != "1.2" {
			t.Errorf("MinVersion = %q, want 1.2", cfg.Server.TLS.MinVersion)
		}
	})

	t.Run("service instance generated", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Observability.ServiceName = "jobscout"
		cfg.applyFallbacks()
		if cfg.Observability.ServiceInstance == "" {
			t.Error("ServiceInstance not generated")
		}
		if !strings.HasPrefix(cfg.Observability.ServiceInstance, "jobscout-") {
			t.Errorf("ServiceInstance = %q, want jobscout- prefix", cfg.Observability.ServiceInstance)
		}
	})
}
