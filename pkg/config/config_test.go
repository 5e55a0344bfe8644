package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Limit int    `yaml:"limit"`
}

func (s *sample) Validate() error {
	if s.Limit < 0 {
		return errors.New("limit must be non-negative")
	}
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("ROWLIGHT_TEST_NAME", "docs")
	p := writeFile(t, "name: ${ROWLIGHT_TEST_NAME}\nlimit: 3\n")

	var s sample
	if err := Load(p, &s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "docs" || s.Limit != 3 {
		t.Errorf("loaded = %+v", s)
	}
}

func TestLoad_Validates(t *testing.T) {
	p := writeFile(t, "limit: -1\n")
	var s sample
	if err := Load(p, &s); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadOrDefault_MissingFileKeepsDefaults(t *testing.T) {
	s := sample{Name: "default", Limit: 5}
	if err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"), &s); err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if s.Name != "default" || s.Limit != 5 {
		t.Errorf("defaults changed: %+v", s)
	}

	bad := sample{Limit: -1}
	if err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"), &bad); err == nil {
		t.Error("invalid defaults should fail validation")
	}
}

func TestLoadOrDefault_ExistingFileOverrides(t *testing.T) {
	p := writeFile(t, "limit: 9\n")
	s := sample{Name: "default", Limit: 5}
	if err := LoadOrDefault(p, &s); err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if s.Name != "default" || s.Limit != 9 {
		t.Errorf("loaded = %+v", s)
	}
}
