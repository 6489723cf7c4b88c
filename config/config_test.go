package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Store.Backend != "leveldb" || c.Writer.BatchSize != 1000 || c.Writer.Samples != 1000 {
		t.Errorf("unexpected defaults %+v", c)
	}
	if c.Talks.Format != "text" || c.Talks.Strict {
		t.Errorf("unexpected talks defaults %+v", c.Talks)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "log:\n  level: debug\nstore:\n  backend: sqlite\nwriter:\n  batch_size: 10\ntalks:\n  strict: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PUNCTUATOR_WRITER_SAMPLES", "25")

	c, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Log.Level != "debug" || c.Store.Backend != "sqlite" || c.Writer.BatchSize != 10 || !c.Talks.Strict {
		t.Errorf("file values not applied: %+v", c)
	}
	if c.Writer.Samples != 25 {
		t.Errorf("expected env override 25, got %d", c.Writer.Samples)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("PUNCTUATOR_WRITER_BATCH_SIZE", "0")
	if _, err := Load(New(), ""); err == nil {
		t.Fatal("expected validation error")
	}

	if _, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
