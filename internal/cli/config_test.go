package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jinwoohan/plotgrid/pkg/errors"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Point XDG_CONFIG_HOME at an empty dir so no real user config leaks in.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("code = %s, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[grid]
size = 0.3
steps = 120

[cache]
backend = "none"

[server]
addr = ":9090"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Grid.Size != 0.3 {
		t.Errorf("grid size = %v, want 0.3", cfg.Grid.Size)
	}
	if cfg.Grid.Steps != 120 {
		t.Errorf("grid steps = %d, want 120", cfg.Grid.Steps)
	}
	if cfg.Cache.Backend != "none" {
		t.Errorf("backend = %q, want none", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Server.Addr)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[grid\nsize ="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); errors.GetCode(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("malformed toml code = %s, want INVALID_CONFIG", errors.GetCode(err))
	}

	backend := filepath.Join(dir, "backend.toml")
	if err := os.WriteFile(backend, []byte("[cache]\nbackend = \"memcached\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(backend); errors.GetCode(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("bad backend code = %s, want INVALID_CONFIG", errors.GetCode(err))
	}
}

func TestOpenCache(t *testing.T) {
	// "none" disables caching
	cfg := DefaultConfig()
	cfg.Cache.Backend = "none"
	c, err := cfg.OpenCache()
	if err != nil {
		t.Fatalf("OpenCache error: %v", err)
	}
	defer c.Close()

	// "file" with an explicit dir
	cfg = DefaultConfig()
	cfg.Cache.Dir = t.TempDir()
	fc, err := cfg.OpenCache()
	if err != nil {
		t.Fatalf("OpenCache error: %v", err)
	}
	defer fc.Close()
}

func TestConfigTable(t *testing.T) {
	cfg := DefaultConfig()
	table, err := cfg.Table()
	if err != nil {
		t.Fatalf("Table error: %v", err)
	}
	if table.Len() == 0 {
		t.Error("default table should not be empty")
	}

	// Override file layered over the defaults
	path := filepath.Join(t.TempDir(), "zones.toml")
	override := `
[[zone]]
zone = "ZONE_R2_GENERAL"
name_ko = "제2종일반주거지역"
max_coverage_ratio = 50
max_floor_area_ratio = 180
`
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.Zones.Table = path
	table, err = cfg.Table()
	if err != nil {
		t.Fatalf("Table with override error: %v", err)
	}
	reg, ok := table.Lookup("ZONE_R2_GENERAL")
	if !ok {
		t.Fatal("overridden zone missing")
	}
	if reg.MaxCoverageRatio != 50 {
		t.Errorf("coverage = %v, want override 50", reg.MaxCoverageRatio)
	}
}
