package storage

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestManager(t *testing.T) {
	tempDir := t.TempDir()

	manager, err := NewManager(tempDir, false)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if manager.Count() != 0 {
		t.Error("Expected initial snapshot count to be 0")
	}
	if manager.Exists("accounts", "twitter_x") {
		t.Error("Expected Exists to return false for missing snapshot")
	}

	body := []byte(`{"username":"x"}`)
	path, err := manager.Save("accounts", "twitter_x", body)
	if err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	expectedPath := filepath.Join(tempDir, "accounts", "twitter_x.json")
	if path != expectedPath {
		t.Errorf("Path mismatch: got %s, want %s", path, expectedPath)
	}

	content, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("Failed to read snapshot: %v", err)
	}
	if string(content) != string(body) {
		t.Errorf("Content mismatch: got %s", content)
	}

	if !manager.Exists("accounts", "twitter_x") {
		t.Error("Expected Exists to return true after save")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 snapshot, got %d", manager.Count())
	}

	if _, err := os.Stat(expectedPath + ".tmp"); !os.IsNotExist(err) {
		t.Error("Temporary file should not remain")
	}
}

func TestManagerPretty(t *testing.T) {
	manager, err := NewManager(t.TempDir(), true)
	if err != nil {
		t.Fatal(err)
	}

	path, err := manager.Save("lists", "7_page_1", []byte(`{"a":[1,2]}`))
	if err != nil {
		t.Fatal(err)
	}
	content, _ := os.ReadFile(path)
	if !strings.Contains(string(content), "\n  \"a\": [") {
		t.Errorf("Expected indented JSON, got %s", content)
	}

	// non-JSON bodies are written unchanged
	path, err = manager.Save("lists", "raw", []byte("not json"))
	if err != nil {
		t.Fatal(err)
	}
	content, _ = os.ReadFile(path)
	if string(content) != "not json" {
		t.Errorf("Expected raw body, got %s", content)
	}
}

func TestManagerScansExistingSnapshots(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tempDir, "accounts"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.json", "b.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(tempDir, "accounts", name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	manager, err := NewManager(tempDir, false)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if manager.Count() != 2 {
		t.Errorf("Expected 2 snapshots, got %d", manager.Count())
	}
	if !manager.Exists("accounts", "a") {
		t.Error("Expected existing snapshot to be found")
	}
}

func TestSanitizeKey(t *testing.T) {
	tests := map[string]string{
		"https://twitter.com/XCELTALENT": "https_twitter.com_XCELTALENT",
		"instagram/@natgeo":              "instagram_natgeo",
		"../../etc/passwd":               "etc_passwd",
		"":                               "_",
		"list-7_page.2":                  "list-7_page.2",
	}

	for in, want := range tests {
		if got := SanitizeKey(in); got != want {
			t.Errorf("SanitizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestManagerConcurrentSaves(t *testing.T) {
	manager, err := NewManager(t.TempDir(), false)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "k" + strings.Repeat("x", i)
			if _, err := manager.Save("group", key, []byte(`{}`)); err != nil {
				t.Errorf("Save failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if manager.Count() != 20 {
		t.Errorf("Expected 20 snapshots, got %d", manager.Count())
	}
}

func TestNewManagerRequiresDirectory(t *testing.T) {
	if _, err := NewManager("", false); err == nil {
		t.Error("Expected error for empty directory")
	}
}
