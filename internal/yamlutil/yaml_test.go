package yamlutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-pubpage/internal/yamlutil"
)

type siteConfig struct {
	Author   string `yaml:"author"`
	Max      int    `yaml:"maxAuthors"`
	Journals []struct {
		Macro string `yaml:"macro"`
		Name  string `yaml:"name"`
	} `yaml:"journals"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Decodes YAML and rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		wantMsg string
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("author: Jin BENIYAMA\nmaxAuthors: 3\njournals:\n  - macro: '\\icarus'\n    name: Icarus\n"),
			dest: &siteConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*siteConfig)
				if cfg.Author != "Jin BENIYAMA" {
					t.Errorf("Author = %q", cfg.Author)
				}
				if cfg.Max != 3 {
					t.Errorf("Max = %d, want 3", cfg.Max)
				}
				if len(cfg.Journals) != 1 || cfg.Journals[0].Macro != `\icarus` {
					t.Errorf("Journals = %+v", cfg.Journals)
				}
			},
		},
		{
			name: "unicode content",
			data: []byte("author: 紅山 仁"),
			dest: &siteConfig{},
			check: func(t *testing.T, v any) {
				if got := v.(*siteConfig).Author; got != "紅山 仁" {
					t.Errorf("Author = %q", got)
				}
			},
		},
		{name: "nil data", data: nil, dest: &siteConfig{}, wantErr: yamlutil.ErrNilData},
		{name: "empty data", data: []byte{}, dest: &siteConfig{}, wantErr: yamlutil.ErrNilData},
		{name: "nil destination", data: []byte("author: x"), dest: nil, wantErr: yamlutil.ErrNilDestination},
		{name: "invalid syntax", data: []byte("author: [unclosed"), dest: &siteConfig{}, wantMsg: "yamlutil:"},
		{name: "unknown field", data: []byte("author: x\nunknown: y"), dest: &siteConfig{}, wantMsg: "yamlutil:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantMsg != "":
				if err == nil || !strings.HasPrefix(err.Error(), tt.wantMsg) {
					t.Fatalf("error = %v, want prefix %q", err, tt.wantMsg)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalFileStrict - Reads and decodes a config file
// ---------------------------------------------------------------------------

func TestUnmarshalFileStrict(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("decodes file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "ok.yaml")
		if err := os.WriteFile(path, []byte("author: A\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		var cfg siteConfig
		if err := yamlutil.UnmarshalFileStrict(path, &cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Author != "A" {
			t.Errorf("Author = %q, want A", cfg.Author)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		var cfg siteConfig
		err := yamlutil.UnmarshalFileStrict(filepath.Join(dir, "missing.yaml"), &cfg)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("decode error names file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("nope: 1\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		var cfg siteConfig
		err := yamlutil.UnmarshalFileStrict(path, &cfg)
		if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
			t.Errorf("error = %v, want mention of bad.yaml", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - MaxInputSize enforcement
// ---------------------------------------------------------------------------

// Modifies the package-level MaxInputSize; not parallel.
func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	yamlutil.MaxInputSize = 50
	data := make([]byte, 100)
	copy(data, "author: x")

	err := yamlutil.UnmarshalStrict(data, &siteConfig{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Fatalf("error = %v, want ErrInputTooLarge", err)
	}
	if msg := err.Error(); !strings.Contains(msg, "100 bytes") || !strings.Contains(msg, "max 50") {
		t.Errorf("error should include sizes, got: %s", msg)
	}
}
