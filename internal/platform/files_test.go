package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestDefaultGroupDir(t *testing.T) {
	dir, err := DefaultGroupDir()
	if err != nil {
		t.Fatalf("Failed to get group directory: %v", err)
	}

	if strings.HasPrefix(dir, "~") {
		t.Errorf("Expected home directory to be expanded, got: %s", dir)
	}

	if filepath.Base(dir) != ".popupbar" {
		t.Errorf("Expected directory to end with '.popupbar', got: %s", dir)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nested", "group.json")

	if err := WriteFileAtomic(path, []byte("first")); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second")); err != nil {
		t.Fatalf("Failed to overwrite file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("Expected 'second', got %q", data)
	}

	// No temp files should be left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Failed to read directory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected exactly one file, got %d", len(entries))
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	tempDir := t.TempDir()
	nonExistentFile := filepath.Join(tempDir, "nonexistent.json")

	err := OpenFileInManager(nonExistentFile)
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}

	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
}

func TestOpenWithDefaultApp_NonExistentFile(t *testing.T) {
	err := OpenWithDefaultApp(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
}

func TestDefaultAppCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{goos: OSDarwin, wantName: OpenCommand, wantArgs: []string{"/g/work.json"}},
		{goos: OSLinux, wantName: XDGOpenCommand, wantArgs: []string{"/g/work.json"}},
		{goos: OSWindows, wantName: CmdCommand, wantArgs: []string{WindowsCmdFlag, StartCommand, "", "/g/work.json"}},
		{goos: "plan9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args, err := defaultAppCommand(tt.goos, "/g/work.json")
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error for unsupported OS")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if name != tt.wantName {
				t.Errorf("Expected command %q, got %q", tt.wantName, name)
			}
			if strings.Join(args, "|") != strings.Join(tt.wantArgs, "|") {
				t.Errorf("Expected args %q, got %q", tt.wantArgs, args)
			}
		})
	}
}
