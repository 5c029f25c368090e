package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"
)

// DefaultName is the profile name used when none is given
const DefaultName = "default"

// Credentials holds a Dovetale OAuth client id and secret under a local name
type Credentials struct {
	Name         string    `json:"name"`
	ClientID     string    `json:"client_id"`
	ClientSecret string    `json:"client_secret"`
	LastModified time.Time `json:"last_modified"`
}

// Validate checks that all required fields are present
func (c *Credentials) Validate() error {
	if c == nil {
		return ErrInvalidCredentials
	}
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.ClientID == "" {
		return errors.New("client ID is required")
	}
	if c.ClientSecret == "" {
		return errors.New("client secret is required")
	}
	return nil
}

// CredentialStore is the interface for storing and retrieving credentials
type CredentialStore interface {
	// Store saves credentials under their name
	Store(creds *Credentials) error

	// Retrieve gets the credentials stored under name
	Retrieve(name string) (*Credentials, error)

	// List returns all stored credentials
	List() ([]*Credentials, error)

	// Delete removes the credentials stored under name
	Delete(name string) error

	// Exists checks if credentials exist under name
	Exists(name string) bool
}

// Manager handles credential storage with fallback mechanisms
type Manager struct {
	stores []CredentialStore
}

// NewManager creates a credential manager backed by the system keyring when
// available, an encrypted file, and the environment.
func NewManager() (*Manager, error) {
	var stores []CredentialStore

	if keyringStore, err := NewKeyringStore(); err == nil {
		stores = append(stores, keyringStore)
	}

	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	encryptedStore, err := NewEncryptedFileStore(filepath.Join(configDir, "credentials.enc"), "")
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypted store: %w", err)
	}
	stores = append(stores, encryptedStore)

	stores = append(stores, NewEnvironmentStore())

	return &Manager{stores: stores}, nil
}

// NewManagerWithStores creates a Manager over the given stores, tried in order
func NewManagerWithStores(stores ...CredentialStore) *Manager {
	return &Manager{stores: stores}
}

// Store saves credentials using the first store that accepts them
func (m *Manager) Store(creds *Credentials) error {
	if creds != nil && creds.Name == "" {
		creds.Name = DefaultName
	}
	if err := creds.Validate(); err != nil {
		return err
	}

	creds.LastModified = time.Now()

	var lastErr error
	for _, store := range m.stores {
		err := store.Store(creds)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return fmt.Errorf("failed to store credentials: %w", lastErr)
	}
	return ErrStoreUnavailable
}

// Retrieve gets credentials from the first store that has them
func (m *Manager) Retrieve(name string) (*Credentials, error) {
	if name == "" {
		name = DefaultName
	}
	for _, store := range m.stores {
		if creds, err := store.Retrieve(name); err == nil && creds != nil {
			return creds, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCredentialsNotFound, name)
}

// RetrieveDefault returns environment credentials if set, then the default
// entry, then the first stored entry.
func (m *Manager) RetrieveDefault() (*Credentials, error) {
	for _, store := range m.stores {
		if env, ok := store.(*EnvironmentStore); ok {
			if creds, err := env.Retrieve(EnvironmentName); err == nil {
				return creds, nil
			}
		}
	}

	if creds, err := m.Retrieve(DefaultName); err == nil {
		return creds, nil
	}

	all, err := m.List()
	if err == nil && len(all) > 0 {
		return all[0], nil
	}

	return nil, ErrCredentialsNotFound
}

// List returns all stored credentials, newest version per name, sorted by name
func (m *Manager) List() ([]*Credentials, error) {
	byName := make(map[string]*Credentials)

	for _, store := range m.stores {
		entries, err := store.List()
		if err != nil {
			continue
		}
		for _, creds := range entries {
			if existing, ok := byName[creds.Name]; !ok || creds.LastModified.After(existing.LastModified) {
				byName[creds.Name] = creds
			}
		}
	}

	result := make([]*Credentials, 0, len(byName))
	for _, creds := range byName {
		result = append(result, creds)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}

// Delete removes credentials from all stores
func (m *Manager) Delete(name string) error {
	if name == "" {
		name = DefaultName
	}

	var deleted bool
	var lastErr error
	for _, store := range m.stores {
		if err := store.Delete(name); err == nil {
			deleted = true
		} else if !errors.Is(err, ErrStoreUnavailable) {
			lastErr = err
		}
	}

	if deleted {
		return nil
	}
	if lastErr != nil && !errors.Is(lastErr, ErrCredentialsNotFound) {
		return fmt.Errorf("failed to delete credentials: %w", lastErr)
	}
	return fmt.Errorf("%w: %s", ErrCredentialsNotFound, name)
}

// getConfigDir returns the configuration directory path
func getConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "dovetale")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "dovetale")
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			configDir = filepath.Join(xdgConfig, "dovetale")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(home, ".config", "dovetale")
		}
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// SanitizeCredentials creates a copy with the secret masked
func SanitizeCredentials(creds *Credentials) *Credentials {
	if creds == nil {
		return nil
	}

	return &Credentials{
		Name:         creds.Name,
		ClientID:     creds.ClientID,
		ClientSecret: MaskString(creds.ClientSecret),
		LastModified: creds.LastModified,
	}
}

// MaskString masks all but the first 4 and last 4 characters of a string
func MaskString(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

var (
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrStoreUnavailable    = errors.New("credential store unavailable")
)
