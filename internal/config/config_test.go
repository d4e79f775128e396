package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/render"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.MetricsPath() != DefaultMetricsPath {
		t.Errorf("MetricsPath() = %q, want %q", cfg.MetricsPath(), DefaultMetricsPath)
	}
	if cfg.Strategy() != render.StrategyLive {
		t.Errorf("Strategy() = %v, want live", cfg.Strategy())
	}
	if cfg.WriteTimeout() != 10*time.Second {
		t.Errorf("WriteTimeout() = %v, want 10s", cfg.WriteTimeout())
	}
	if cfg.Snapshot.Store != StoreDisk {
		t.Errorf("Snapshot.Store = %q, want %q", cfg.Snapshot.Store, StoreDisk)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	var verr *errors.Error
	if !stderrors.As(err, &verr) || verr.Code != errors.CodeConfigNotFound {
		t.Errorf("Load(empty dir) = %v, want %s", err, errors.CodeConfigNotFound)
	}

	configJSON := `{
  "name": "dashboard",
  "dev": true,
  "server": {
    "addr": "127.0.0.1:9000",
    "metricsPath": "-",
    "writeTimeout": "2s"
  },
  "render": {
    "strategy": "markup"
  },
  "snapshot": {
    "store": "s3",
    "bucket": "pages",
    "prefix": "site/"
  }
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Name != "dashboard" || !cfg.Dev {
		t.Errorf("Name, Dev = %q, %v", cfg.Name, cfg.Dev)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.MetricsPath() != "" {
		t.Errorf("MetricsPath() = %q, want disabled", cfg.MetricsPath())
	}
	if cfg.WriteTimeout() != 2*time.Second {
		t.Errorf("WriteTimeout() = %v", cfg.WriteTimeout())
	}
	if cfg.Strategy() != render.StrategyMarkup {
		t.Errorf("Strategy() = %v, want markup", cfg.Strategy())
	}
	if cfg.Snapshot.Bucket != "pages" || cfg.Snapshot.Prefix != "site/" {
		t.Errorf("Snapshot = %+v", cfg.Snapshot)
	}
	if cfg.Server.MaxPatchHistory != 100 {
		t.Errorf("Server.MaxPatchHistory = %d, want default 100", cfg.Server.MaxPatchHistory)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"syntax", `{"server": `},
		{"strategy", `{"render": {"strategy": "dom"}}`},
		{"timeout", `{"server": {"writeTimeout": "soon"}}`},
		{"history", `{"server": {"maxPatchHistory": -1}}`},
		{"store", `{"snapshot": {"store": "ftp"}}`},
		{"bucket", `{"snapshot": {"store": "s3"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(tt.json), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(dir)
			var verr *errors.Error
			if !stderrors.As(err, &verr) || verr.Code != errors.CodeConfigInvalid {
				t.Errorf("Load() = %v, want %s", err, errors.CodeConfigInvalid)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := New()
	cfg.Name = "saved"
	cfg.Render.Pretty = true
	cfg.Snapshot.Dir = "out"

	if err := cfg.Save(); err == nil {
		t.Error("Save() without a path succeeded")
	}
	path := filepath.Join(dir, ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}

	loaded, err := LoadOrNew(dir)
	if err != nil {
		t.Fatalf("LoadOrNew() error = %v", err)
	}
	if loaded.Name != "saved" || !loaded.Render.Pretty {
		t.Errorf("loaded = %+v", loaded)
	}
	if want := filepath.Join(dir, "out"); loaded.SnapshotDir() != want {
		t.Errorf("SnapshotDir() = %q, want %q", loaded.SnapshotDir(), want)
	}
}

func TestLoadOrNewWithoutFile(t *testing.T) {
	cfg, err := LoadOrNew(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOrNew() error = %v", err)
	}
	if cfg.Path() != "" || cfg.Server.Addr != DefaultAddr {
		t.Errorf("LoadOrNew() = %+v, want defaults", cfg)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := New().SaveTo(filepath.Join(root, ConfigFileName)); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot() error = %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProjectRoot() = %q, want %q", got, want)
	}
}
