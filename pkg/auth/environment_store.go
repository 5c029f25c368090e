package auth

import (
	"os"
	"time"
)

// EnvironmentName is the name given to credentials read from the environment
const EnvironmentName = "env"

// EnvironmentStore exposes DOVETALE_CLIENT_ID and DOVETALE_CLIENT_SECRET as a
// read-only credential entry
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(creds *Credentials) error {
	return ErrStoreUnavailable
}

// Retrieve returns the environment credentials when name is EnvironmentName
func (e *EnvironmentStore) Retrieve(name string) (*Credentials, error) {
	id, secret := envCredentials()
	if name != EnvironmentName || id == "" || secret == "" {
		return nil, ErrCredentialsNotFound
	}

	return &Credentials{
		Name:         EnvironmentName,
		ClientID:     id,
		ClientSecret: secret,
		LastModified: time.Now(),
	}, nil
}

// List returns a single entry if the environment variables are set
func (e *EnvironmentStore) List() ([]*Credentials, error) {
	creds, err := e.Retrieve(EnvironmentName)
	if err != nil {
		return []*Credentials{}, nil
	}
	return []*Credentials{creds}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(name string) error {
	return ErrStoreUnavailable
}

// Exists checks if environment credentials exist
func (e *EnvironmentStore) Exists(name string) bool {
	id, secret := envCredentials()
	return name == EnvironmentName && id != "" && secret != ""
}

func envCredentials() (string, string) {
	return os.Getenv("DOVETALE_CLIENT_ID"), os.Getenv("DOVETALE_CLIENT_SECRET")
}
