package config

import (
	"strings"
	"testing"

	"github.com/hashicorp/vault/api"
)

func TestExtractSecretData(t *testing.T) {
	t.Run("kv2 format", func(t *testing.T) {
		secret := &api.Secret{Data: map[string]any{
			"data":     map[string]any{"api_key": "abc"},
			"metadata": map[string]any{"version": int64(1)},
		}}
		data, err := extractSecretData(secret, "secret/data/jobscout")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if data["api_key"] != "abc" {
			t.Errorf("data = %v", data)
		}
	})

	t.Run("missing data field", func(t *testing.T) {
		secret := &api.Secret{Data: map[string]any{"value": "abc"}}
		_, err := extractSecretData(secret, "secret/data/jobscout")
		if err == nil || !strings.Contains(err.Error(), "KVv2") {
			t.Errorf("expected KVv2 format error, got %v", err)
		}
	})
}

func TestExtractSecretVersion(t *testing.T) {
	tests := []struct {
		name    string
		version any
		want    int64
		wantErr bool
	}{
		{"int64", int64(7), 7, false},
		{"float64 from JSON", float64(3), 3, false},
		{"numeric string", "12", 12, false},
		{"garbage string", "twelve", 0, true},
		{"unexpected type", []string{"1"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret := &api.Secret{Data: map[string]any{
				"data":     map[string]any{},
				"metadata": map[string]any{"version": tt.version},
			}}
			got, err := extractSecretVersion(secret, "secret/data/jobscout")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("version = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("missing metadata", func(t *testing.T) {
		secret := &api.Secret{Data: map[string]any{"data": map[string]any{}}}
		if _, err := extractSecretVersion(secret, "p"); err == nil {
			t.Error("expected error for missing metadata")
		}
	})
}

func TestApplyGeminiKeyToConfig(t *testing.T) {
	cfg := validTestConfig()
	cfg.AI.APIKey = ""
	cfg.AI.ExtractSkills.APIKey = "explicit-op-key"

	applyGeminiKeyToConfig(cfg, "vault-key")

	if cfg.AI.APIKey != "vault-key" {
		t.Errorf("global key = %q", cfg.AI.APIKey)
	}
	if cfg.AI.SummarizeReviews.APIKey != "vault-key" {
		t.Errorf("summarizeReviews key = %q", cfg.AI.SummarizeReviews.APIKey)
	}
	// Operation-level keys set in config are not overwritten by Vault.
	if cfg.AI.ExtractSkills.APIKey != "explicit-op-key" {
		t.Errorf("extractSkills key = %q", cfg.AI.ExtractSkills.APIKey)
	}
}

func TestLoadSingleCertificate(t *testing.T) {
	tlsData := &VaultSecret{Data: map[string]any{
		"cert": "PEM CERT",
		"key":  "",
		"ca":   42,
	}}

	var target string
	if n := loadSingleCertificate(tlsData, "cert", &target, "TLS certificate content", nil); n != 1 || target != "PEM CERT" {
		t.Errorf("cert load = %d, target = %q", n, target)
	}

	target = ""
	if n := loadSingleCertificate(tlsData, "key", &target, "TLS private key content", nil); n != 0 || target != "" {
		t.Errorf("empty key should not load, got %d/%q", n, target)
	}
	if n := loadSingleCertificate(tlsData, "ca", &target, "TLS CA certificate content", nil); n != 0 {
		t.Errorf("non-string ca should not load, got %d", n)
	}
	if n := loadSingleCertificate(tlsData, "absent", &target, "missing", nil); n != 0 {
		t.Errorf("absent key should not load, got %d", n)
	}
}

func TestValidateTLSDeprecatedFields(t *testing.T) {
	t.Run("clean data", func(t *testing.T) {
		tlsData := &VaultSecret{Data: map[string]any{"cert": "x", "key": "y"}}
		if err := validateTLSDeprecatedFields(tlsData, nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("deprecated field rejected", func(t *testing.T) {
		tlsData := &VaultSecret{Data: map[string]any{"cert_file": "/etc/cert.pem"}}
		err := validateTLSDeprecatedFields(tlsData, nil)
		if err == nil || !strings.Contains(err.Error(), "cert_file") {
			t.Errorf("expected cert_file rejection, got %v", err)
		}
	})
}
