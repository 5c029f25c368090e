package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

const snapshotExt = ".json"

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Manager writes API response snapshots as <dir>/<group>/<key>.json and
// tracks which snapshots exist
type Manager struct {
	outputDir string
	pretty    bool
	saved     map[string]bool
	mu        sync.RWMutex
}

// NewManager creates a snapshot manager rooted at outputDir. When pretty is
// set, JSON bodies are indented before writing.
func NewManager(outputDir string, pretty bool) (*Manager, error) {
	if outputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	manager := &Manager{
		outputDir: outputDir,
		pretty:    pretty,
		saved:     make(map[string]bool),
	}

	if err := manager.scanExistingFiles(); err != nil {
		return nil, fmt.Errorf("failed to scan existing files: %w", err)
	}

	return manager, nil
}

// scanExistingFiles records snapshots already present one level below the root
func (m *Manager) scanExistingFiles() error {
	groups, err := os.ReadDir(m.outputDir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, group := range groups {
		if !group.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(m.outputDir, group.Name()))
		if err != nil {
			return fmt.Errorf("failed to read directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != snapshotExt {
				continue
			}
			key := strings.TrimSuffix(entry.Name(), snapshotExt)
			m.saved[group.Name()+"/"+key] = true
		}
	}

	return nil
}

// SanitizeKey turns an arbitrary identifier, such as a profile URL, into a
// file name component
func SanitizeKey(s string) string {
	s = unsafeKeyChars.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_.")
	if s == "" {
		return "_"
	}
	return s
}

// Path returns where the snapshot for group and key is written
func (m *Manager) Path(group, key string) string {
	return filepath.Join(m.outputDir, SanitizeKey(group), SanitizeKey(key)+snapshotExt)
}

// Exists checks if a snapshot for group and key has been written
func (m *Manager) Exists(group, key string) bool {
	id := SanitizeKey(group) + "/" + SanitizeKey(key)

	m.mu.RLock()
	known := m.saved[id]
	m.mu.RUnlock()
	if known {
		return true
	}

	if _, err := os.Stat(m.Path(group, key)); err == nil {
		m.mu.Lock()
		m.saved[id] = true
		m.mu.Unlock()
		return true
	}
	return false
}

// Save writes body atomically, replacing any earlier snapshot, and returns
// the file path
func (m *Manager) Save(group, key string, body []byte) (string, error) {
	filename := m.Path(group, key)
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return "", fmt.Errorf("failed to create group directory: %w", err)
	}

	data := body
	if m.pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, body, "", "  "); err == nil {
			buf.WriteByte('\n')
			data = buf.Bytes()
		}
	}

	tempFile := filename + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		os.Remove(tempFile)
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return "", fmt.Errorf("failed to rename temporary file: %w", err)
	}

	m.mu.Lock()
	m.saved[SanitizeKey(group)+"/"+SanitizeKey(key)] = true
	m.mu.Unlock()

	return filename, nil
}

// OutputDir returns the root directory
func (m *Manager) OutputDir() string {
	return m.outputDir
}

// Count returns the number of known snapshots
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.saved)
}
