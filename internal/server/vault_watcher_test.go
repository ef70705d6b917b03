package server

import (
	"testing"
	"time"

	"jobscout/internal/config"
)

// fakeVaultClient serves canned secrets for watcher tests.
type fakeVaultClient struct {
	secrets map[string]*config.VaultSecret
}

func (f *fakeVaultClient) GetSecretV2(path string) (*config.VaultSecret, error) {
	if secret, exists := f.secrets[path]; exists {
		return secret, nil
	}
	return nil, nil
}

func (f *fakeVaultClient) GetStringSecret(path, key string) (string, error) {
	if secret, exists := f.secrets[path]; exists {
		if value, ok := secret.Data[key].(string); ok {
			return value, nil
		}
	}
	return "", nil
}

func (f *fakeVaultClient) GetStringSliceSecret(path, key string) ([]string, error) {
	if secret, exists := f.secrets[path]; exists {
		if value, ok := secret.Data[key].([]string); ok {
			return value, nil
		}
	}
	return nil, nil
}

func TestVaultWatcherFetchCertificateData(t *testing.T) {
	client := &fakeVaultClient{
		secrets: map[string]*config.VaultSecret{
			"secret/data/tls": {
				Data: map[string]any{
					"cert": "new-cert-content",
					"key":  "new-key-content",
					"ca":   "new-ca-content",
				},
				Version: 1,
			},
		},
	}

	vw := NewVaultWatcher(client, "secret/data/tls", time.Minute, func(*CertificateData, error) {}, nil)

	data, err := vw.fetchCertificateData()
	if err != nil {
		t.Fatalf("fetchCertificateData failed: %v", err)
	}

	if data.CertContent != "new-cert-content" {
		t.Errorf("CertContent = %q, want %q", data.CertContent, "new-cert-content")
	}
	if data.KeyContent != "new-key-content" {
		t.Errorf("KeyContent = %q, want %q", data.KeyContent, "new-key-content")
	}
	if data.CAContent != "new-ca-content" {
		t.Errorf("CAContent = %q, want %q", data.CAContent, "new-ca-content")
	}
}

func TestVaultWatcherCheckForUpdates(t *testing.T) {
	client := &fakeVaultClient{
		secrets: map[string]*config.VaultSecret{
			"secret/data/tls": {
				Data:    map[string]any{},
				Version: 2,
			},
		},
	}

	vw := NewVaultWatcher(client, "secret/data/tls", time.Minute, func(*CertificateData, error) {}, nil)

	// First check sees the version jump from 0 to 2.
	changed, err := vw.checkForUpdates()
	if err != nil {
		t.Fatalf("checkForUpdates failed: %v", err)
	}
	if !changed {
		t.Error("expected change to be detected")
	}

	// Same version again should not report a change.
	changed, err = vw.checkForUpdates()
	if err != nil {
		t.Fatalf("checkForUpdates failed: %v", err)
	}
	if changed {
		t.Error("expected no change to be detected")
	}
}
