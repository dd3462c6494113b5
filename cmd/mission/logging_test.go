package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// inTempDir runs the test from an empty directory and restores the standard logger afterwards
func inTempDir(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	out, flags := log.Writer(), log.Flags()
	t.Cleanup(func() {
		log.SetOutput(out)
		log.SetFlags(flags)
	})
}

func TestSetupLogging_Discard(t *testing.T) {
	inTempDir(t)

	if f := setupLogging(false); f != nil {
		f.Close()
		t.Fatal("expected nil file without debug")
	}
	if log.Writer() != io.Discard {
		t.Errorf("log output = %v, want io.Discard", log.Writer())
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("log directory created without debug")
	}
}

func TestSetupLogging_WritesFile(t *testing.T) {
	inTempDir(t)

	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected log file with debug")
	}
	defer f.Close()

	if w := log.Writer(); w == os.Stdout || w == os.Stderr {
		t.Fatal("log output must not reach the terminal")
	}

	log.Printf("route requested")
	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "route requested") {
		t.Errorf("log content = %q", data)
	}
}

func TestSetupLogging_Appends(t *testing.T) {
	inTempDir(t)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, []byte("previous run\n"), 0644); err != nil {
		t.Fatal(err)
	}

	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected log file")
	}
	log.Printf("next run")
	f.Close()

	data, _ := os.ReadFile(logPath)
	if !strings.HasPrefix(string(data), "previous run\n") || !strings.Contains(string(data), "next run") {
		t.Errorf("log content = %q", data)
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	inTempDir(t)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatal(err)
	}

	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected log file")
	}
	defer f.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatal(err)
	}
	var rotated string
	for _, e := range entries {
		if e.Name() != logFileName && filepath.Ext(e.Name()) == ".log" {
			rotated = e.Name()
		}
	}
	if rotated == "" {
		t.Fatal("no rotated log file")
	}
	if info, _ := os.Stat(filepath.Join(logDir, rotated)); info.Size() != maxLogSize+1 {
		t.Errorf("rotated size = %d", info.Size())
	}
	if info, _ := os.Stat(logPath); info.Size() != 0 {
		t.Errorf("fresh log size = %d, want 0", info.Size())
	}
}
