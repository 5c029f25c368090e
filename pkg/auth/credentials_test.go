package auth

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestCredentialManager(t *testing.T) {
	manager, mockStore := NewMockManager()

	creds := &Credentials{
		Name:         "work",
		ClientID:     "client_id_12345",
		ClientSecret: "client_secret_67890",
	}

	if err := manager.Store(creds); err != nil {
		t.Errorf("Failed to store credentials: %v", err)
	}
	if creds.LastModified.IsZero() {
		t.Error("LastModified should be set on store")
	}

	retrieved, err := manager.Retrieve("work")
	if err != nil {
		t.Fatalf("Failed to retrieve credentials: %v", err)
	}
	if retrieved.ClientID != creds.ClientID {
		t.Errorf("ClientID mismatch: got %s, want %s", retrieved.ClientID, creds.ClientID)
	}
	if retrieved.ClientSecret != creds.ClientSecret {
		t.Errorf("ClientSecret mismatch: got %s, want %s", retrieved.ClientSecret, creds.ClientSecret)
	}

	all, err := manager.List()
	if err != nil {
		t.Errorf("Failed to list credentials: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 entry, got %d", len(all))
	}

	if err := manager.Delete("work"); err != nil {
		t.Errorf("Failed to delete credentials: %v", err)
	}
	if _, err := manager.Retrieve("work"); !errors.Is(err, ErrCredentialsNotFound) {
		t.Errorf("Expected ErrCredentialsNotFound, got %v", err)
	}
	if mockStore.Count() != 0 {
		t.Errorf("Expected 0 entries after deletion, got %d", mockStore.Count())
	}
}

func TestManagerStoreValidation(t *testing.T) {
	manager, _ := NewMockManager()

	tests := []struct {
		name  string
		creds *Credentials
	}{
		{"nil", nil},
		{"missing id", &Credentials{Name: "x", ClientSecret: "s"}},
		{"missing secret", &Credentials{Name: "x", ClientID: "id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := manager.Store(tt.creds); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestManagerDefaultName(t *testing.T) {
	manager, store := NewMockManager()

	if err := manager.Store(&Credentials{ClientID: "id", ClientSecret: "secret"}); err != nil {
		t.Fatalf("Failed to store credentials: %v", err)
	}
	if !store.Exists(DefaultName) {
		t.Errorf("Expected credentials under %q", DefaultName)
	}

	creds, err := manager.Retrieve("")
	if err != nil {
		t.Fatalf("Failed to retrieve default credentials: %v", err)
	}
	if creds.ClientID != "id" {
		t.Errorf("ClientID mismatch: got %s", creds.ClientID)
	}
}

func TestRetrieveDefaultPrefersEnvironment(t *testing.T) {
	t.Setenv("DOVETALE_CLIENT_ID", "")
	t.Setenv("DOVETALE_CLIENT_SECRET", "")

	store := NewMockStore()
	manager := NewManagerWithStores(store, NewEnvironmentStore())

	if _, err := manager.RetrieveDefault(); !errors.Is(err, ErrCredentialsNotFound) {
		t.Errorf("Expected ErrCredentialsNotFound, got %v", err)
	}

	_ = store.Store(&Credentials{Name: "zeta", ClientID: "z", ClientSecret: "zs"})
	_ = store.Store(&Credentials{Name: "alpha", ClientID: "a", ClientSecret: "as"})

	creds, err := manager.RetrieveDefault()
	if err != nil {
		t.Fatalf("RetrieveDefault failed: %v", err)
	}
	if creds.Name != "alpha" {
		t.Errorf("Expected first entry by name, got %s", creds.Name)
	}

	_ = store.Store(&Credentials{Name: DefaultName, ClientID: "d", ClientSecret: "ds"})
	creds, _ = manager.RetrieveDefault()
	if creds.Name != DefaultName {
		t.Errorf("Expected %q entry, got %s", DefaultName, creds.Name)
	}

	t.Setenv("DOVETALE_CLIENT_ID", "env_id")
	t.Setenv("DOVETALE_CLIENT_SECRET", "env_secret")
	creds, _ = manager.RetrieveDefault()
	if creds.Name != EnvironmentName || creds.ClientID != "env_id" {
		t.Errorf("Expected environment credentials, got %+v", SanitizeCredentials(creds))
	}
}

func TestSanitizeCredentials(t *testing.T) {
	creds := &Credentials{Name: "n", ClientID: "client", ClientSecret: "abcd1234efgh5678"}

	sanitized := SanitizeCredentials(creds)
	if sanitized.ClientSecret != "abcd...5678" {
		t.Errorf("Unexpected mask: %s", sanitized.ClientSecret)
	}
	if sanitized.ClientID != creds.ClientID {
		t.Error("ClientID should not be masked")
	}
	if MaskString("short") != "********" {
		t.Error("Short values should be fully masked")
	}
	if SanitizeCredentials(nil) != nil {
		t.Error("Expected nil for nil input")
	}
}

func TestEncryptedFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.enc")

	store, err := NewEncryptedFileStore(path, "test_passphrase_123")
	if err != nil {
		t.Fatalf("Failed to create encrypted store: %v", err)
	}

	creds := &Credentials{
		Name:         "encrypted",
		ClientID:     "encrypted_client_id",
		ClientSecret: "encrypted_client_secret",
	}
	if err := store.Store(creds); err != nil {
		t.Fatalf("Failed to store in encrypted file: %v", err)
	}

	retrieved, err := store.Retrieve("encrypted")
	if err != nil {
		t.Fatalf("Failed to retrieve from encrypted file: %v", err)
	}
	if retrieved.ClientSecret != creds.ClientSecret {
		t.Error("ClientSecret mismatch after encryption/decryption")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(content, []byte("encrypted_client_secret")) {
		t.Error("File contains plaintext client secret")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got %v", info.Mode().Perm())
	}

	// a second entry reuses the salt and keeps the first
	if err := store.Store(&Credentials{Name: "other", ClientID: "o", ClientSecret: "os"}); err != nil {
		t.Fatal(err)
	}
	all, _ := store.List()
	if len(all) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(all))
	}

	wrong, _ := NewEncryptedFileStore(path, "wrong_passphrase")
	if _, err := wrong.Retrieve("encrypted"); err == nil || errors.Is(err, ErrCredentialsNotFound) {
		t.Errorf("Expected decryption failure, got %v", err)
	}

	_ = store.Delete("other")
	if err := store.Delete("encrypted"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("File should be removed with its last entry")
	}
}

func TestEnvironmentStore(t *testing.T) {
	store := NewEnvironmentStore()

	t.Setenv("DOVETALE_CLIENT_ID", "")
	t.Setenv("DOVETALE_CLIENT_SECRET", "")
	if _, err := store.Retrieve(EnvironmentName); !errors.Is(err, ErrCredentialsNotFound) {
		t.Errorf("Expected ErrCredentialsNotFound, got %v", err)
	}

	t.Setenv("DOVETALE_CLIENT_ID", "env_id")
	t.Setenv("DOVETALE_CLIENT_SECRET", "env_secret")

	creds, err := store.Retrieve(EnvironmentName)
	if err != nil {
		t.Fatalf("Failed to retrieve from environment: %v", err)
	}
	if creds.ClientID != "env_id" || creds.ClientSecret != "env_secret" {
		t.Errorf("Unexpected credentials: %+v", SanitizeCredentials(creds))
	}
	if _, err := store.Retrieve("work"); err == nil {
		t.Error("Environment store should only answer to its own name")
	}
	if !store.Exists(EnvironmentName) {
		t.Error("Environment credentials should exist")
	}

	if err := store.Store(&Credentials{}); err != ErrStoreUnavailable {
		t.Error("Expected ErrStoreUnavailable for environment store")
	}
}

func TestKeyringStore(t *testing.T) {
	keyring.MockInit()

	store, err := NewKeyringStore()
	if err != nil {
		t.Fatalf("Failed to create keyring store: %v", err)
	}

	for _, name := range []string{"b", "a"} {
		err := store.Store(&Credentials{Name: name, ClientID: "id_" + name, ClientSecret: "secret_" + name})
		if err != nil {
			t.Fatalf("Failed to store %s: %v", name, err)
		}
	}

	all, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, c := range all {
		names = append(names, c.Name)
	}
	if strings.Join(names, ",") != "a,b" {
		t.Errorf("Unexpected names: %v", names)
	}

	if err := store.Delete("a"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if store.Exists("a") {
		t.Error("Entry should be gone")
	}
	if err := store.Delete("a"); !errors.Is(err, ErrCredentialsNotFound) {
		t.Errorf("Expected ErrCredentialsNotFound, got %v", err)
	}

	all, _ = store.List()
	if len(all) != 1 || all[0].ClientID != "id_b" {
		t.Errorf("Unexpected entries after delete: %d", len(all))
	}
}

func TestManagerFallsBackToNextStore(t *testing.T) {
	broken := NewMockStore()
	broken.StoreError = fmt.Errorf("injected error")
	working := NewMockStore()

	manager := NewManagerWithStores(broken, working)
	if err := manager.Store(&Credentials{Name: "x", ClientID: "id", ClientSecret: "s"}); err != nil {
		t.Fatalf("Store should fall back: %v", err)
	}
	if !working.Exists("x") {
		t.Error("Expected credentials in second store")
	}

	working.StoreError = fmt.Errorf("also broken")
	err := manager.Store(&Credentials{Name: "y", ClientID: "id", ClientSecret: "s"})
	if err == nil || !strings.Contains(err.Error(), "also broken") {
		t.Errorf("Expected last store error, got %v", err)
	}
}
