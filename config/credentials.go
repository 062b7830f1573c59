package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	credentialsFile          = "credentials.toml"
	credentialsEncryptedFile = "credentials.enc"
)

// CredentialStore manages API keys, stored outside settings.toml. Keys live
// in a 0600 plain-text TOML file, or AES-256-GCM encrypted when a passphrase
// is configured via CUTUI_CREDENTIALS_PASSPHRASE.
type CredentialStore struct {
	passphrase  string
	credentials map[string]string // providerID -> API key
}

func NewCredentialStore(passphrase string) *CredentialStore {
	return &CredentialStore{
		passphrase:  passphrase,
		credentials: make(map[string]string),
	}
}

func (c *CredentialStore) encrypted() bool {
	return c.passphrase != ""
}

func (c *CredentialStore) path(dataDir string) string {
	if c.encrypted() {
		return filepath.Join(dataDir, credentialsEncryptedFile)
	}
	return filepath.Join(dataDir, credentialsFile)
}

// Get retrieves the API key for a provider, empty when unset.
func (c *CredentialStore) Get(providerID string) string {
	return c.credentials[providerID]
}

// Set stores the API key for a provider.
func (c *CredentialStore) Set(providerID, apiKey string) {
	c.credentials[providerID] = apiKey
}

// Delete removes the API key for a provider.
func (c *CredentialStore) Delete(providerID string) {
	delete(c.credentials, providerID)
}

// Load reads the store from disk. A missing file is not an error: the store
// starts empty.
func (c *CredentialStore) Load(dataDir string) error {
	path := c.path(dataDir)
	if !FileExists(path) {
		c.credentials = make(map[string]string)
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read credentials: %w", err)
	}

	if c.encrypted() {
		raw, err = decryptWithPassphrase(raw, c.passphrase)
		if err != nil {
			return fmt.Errorf("failed to decrypt credentials: %w", err)
		}
	}

	creds := make(map[string]string)
	if err := toml.Unmarshal(raw, &creds); err != nil {
		return fmt.Errorf("failed to parse credentials: %w", err)
	}
	c.credentials = creds
	return nil
}

// Save writes the store to disk with 0600 permissions.
func (c *CredentialStore) Save(dataDir string) error {
	if err := EnsureDir(dataDir); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	raw, err := toml.Marshal(c.credentials)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	if c.encrypted() {
		raw, err = encryptWithPassphrase(raw, c.passphrase)
		if err != nil {
			return fmt.Errorf("failed to encrypt credentials: %w", err)
		}
	}

	if err := os.WriteFile(c.path(dataDir), raw, 0600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}
