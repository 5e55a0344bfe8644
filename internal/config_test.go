package internal

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	opts := cfg.Search.HighlighterOptions()
	if opts.TableSelector != "table" || opts.Settings.RowSelector != "tbody tr" {
		t.Errorf("highlighter options = %+v", opts)
	}
}

func TestDocumentsConfig_InvalidInclude(t *testing.T) {
	cfg := DocumentsConfig{Path: "./docs", Include: []string{"**/*.html", "[bad"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid glob should fail validation")
	}
}

func TestSearchConfig_Validation(t *testing.T) {
	cases := map[string]func(*SearchConfig){
		"empty table selector": func(c *SearchConfig) { c.TableSelector = "" },
		"empty row selector":   func(c *SearchConfig) { c.RowSelector = "" },
		"empty cell selector":  func(c *SearchConfig) { c.ColumnSelector = "" },
		"negative cache":       func(c *SearchConfig) { c.CacheSize = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			mutate(&cfg.Search)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSearchConfig_YAML(t *testing.T) {
	cfg := NewDefaultConfig()
	src := `
search:
  row_selector: tr
  row_match_class: hit
  no_match_class: hidden
  cache_size: 0
`
	if err := yaml.Unmarshal([]byte(src), cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.Search.RowSelector != "tr" || cfg.Search.RowMatchClass != "hit" {
		t.Errorf("settings = %+v", cfg.Search.Settings)
	}
	if cfg.Search.ColumnSelector != "td" || cfg.Search.TableSelector != "table" {
		t.Errorf("defaults not kept: %+v", cfg.Search)
	}
	if cfg.Search.NoMatchClass != "hidden" || cfg.Search.CacheSize != 0 {
		t.Errorf("search = %+v", cfg.Search)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}
