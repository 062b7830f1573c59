package config

import (
	"strings"
	"testing"
)

func TestCredentialStoreRoundTrip(t *testing.T) {
	dataDir := t.TempDir()

	store := NewCredentialStore("")
	store.Set("anthropic", "sk-ant-test-123")
	store.Set("bedrock", "aws-whatever")
	if err := store.Save(dataDir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := NewCredentialStore("")
	if err := loaded.Load(dataDir); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := loaded.Get("anthropic"); got != "sk-ant-test-123" {
		t.Errorf("Get(anthropic): got %q", got)
	}
	if got := loaded.Get("bedrock"); got != "aws-whatever" {
		t.Errorf("Get(bedrock): got %q", got)
	}
	if got := loaded.Get("vertex"); got != "" {
		t.Errorf("Get(vertex): got %q, want empty", got)
	}

	loaded.Delete("anthropic")
	if err := loaded.Save(dataDir); err != nil {
		t.Fatalf("Save after delete: %v", err)
	}
	reloaded := NewCredentialStore("")
	if err := reloaded.Load(dataDir); err != nil {
		t.Fatalf("Load after delete: %v", err)
	}
	if got := reloaded.Get("anthropic"); got != "" {
		t.Errorf("deleted key survived: %q", got)
	}
}

func TestCredentialStoreMissingFile(t *testing.T) {
	store := NewCredentialStore("")
	if err := store.Load(t.TempDir()); err != nil {
		t.Fatalf("Load on empty dir: %v", err)
	}
	if got := store.Get("anthropic"); got != "" {
		t.Errorf("Get on empty store: got %q", got)
	}
}

func TestCredentialStoreEncrypted(t *testing.T) {
	dataDir := t.TempDir()

	store := NewCredentialStore("hunter2")
	store.Set("anthropic", "sk-ant-secret")
	if err := store.Save(dataDir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := NewCredentialStore("hunter2")
	if err := loaded.Load(dataDir); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := loaded.Get("anthropic"); got != "sk-ant-secret" {
		t.Errorf("Get: got %q", got)
	}

	wrong := NewCredentialStore("hunter3")
	if err := wrong.Load(dataDir); err == nil {
		t.Error("Load with wrong passphrase succeeded")
	}
}

func TestEncryptionRoundTrip(t *testing.T) {
	plaintext := []byte("anthropic = \"sk-ant-test\"\n")

	encrypted, err := encryptWithPassphrase(plaintext, "passphrase")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if strings.Contains(string(encrypted), "sk-ant-test") {
		t.Error("ciphertext contains plaintext")
	}

	decrypted, err := decryptWithPassphrase(encrypted, "passphrase")
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if string(decrypted) != string(plaintext) {
		t.Errorf("round trip: got %q, want %q", decrypted, plaintext)
	}

	if _, err := decryptWithPassphrase(encrypted, "other"); err == nil {
		t.Error("decrypt with wrong passphrase succeeded")
	}

	if _, err := decryptWithPassphrase([]byte("short"), "passphrase"); err == nil {
		t.Error("decrypt of truncated ciphertext succeeded")
	}
}

func TestDeriveDesktopURL(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{"http://localhost:8000", "http://localhost:6080/vnc.html"},
		{"http://demo.internal:8000", "http://demo.internal:6080/vnc.html"},
		{"https://demo.internal", "https://demo.internal:6080/vnc.html"},
		{"", "http://localhost:6080/vnc.html"},
	}
	for _, tt := range tests {
		if got := DeriveDesktopURL(tt.backend); got != tt.want {
			t.Errorf("DeriveDesktopURL(%q): got %q, want %q", tt.backend, got, tt.want)
		}
	}
}
