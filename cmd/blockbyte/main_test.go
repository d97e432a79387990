package main

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/blockbyte/engine/internal/config"
)

func resetFlags(t *testing.T) {
	t.Helper()
	flagConfig, flagSeed = "", 0
	t.Cleanup(func() { flagConfig, flagSeed = "", 0 })
}

func writeFile(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaultMayBeMissing(t *testing.T) {
	resetFlags(t)
	t.Setenv(configEnv, "")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Engine.TickRate != config.Default().Engine.TickRate {
		t.Fatalf("tick rate = %d", cfg.Engine.TickRate)
	}
}

func TestLoadConfigExplicitPathMustExist(t *testing.T) {
	resetFlags(t)
	t.Setenv(configEnv, filepath.Join(t.TempDir(), "missing.toml"))
	if _, err := loadConfig(); err == nil {
		t.Fatal("expected error for missing env config")
	}

	t.Setenv(configEnv, "")
	flagConfig = filepath.Join(t.TempDir(), "missing.toml")
	if _, err := loadConfig(); err == nil {
		t.Fatal("expected error for missing --config")
	}
}

func TestLoadConfigFlagBeatsEnv(t *testing.T) {
	resetFlags(t)
	t.Setenv(configEnv, writeFile(t, "env.toml", "[engine]\ntick_rate = 30\n"))
	flagConfig = writeFile(t, "flag.toml", "[engine]\ntick_rate = 240\nseed = 5\n")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Engine.TickRate != 240 || cfg.Engine.Seed != 5 {
		t.Fatalf("engine = %+v", cfg.Engine)
	}

	flagSeed = 77
	cfg, err = loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.Seed != 77 {
		t.Fatalf("seed = %d, want override 77", cfg.Engine.Seed)
	}
}

func TestStartProfileRejectsUnknownKind(t *testing.T) {
	if p, err := startProfile(""); p != nil || err != nil {
		t.Fatalf("empty kind = %v, %v", p, err)
	}
	if _, err := startProfile("block"); err == nil {
		t.Fatal("expected error for unknown profile kind")
	}
}

func TestNewSessionRunsScript(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.Seed = 1
	script := writeFile(t, "scene.lua", "a = new_entity(0, 0)\nb = new_entity(10, 10)\n")

	eng, lua, err := newSession(cfg, nil, script, zap.NewNop())
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	defer lua.Close()
	if n := eng.World().Len(); n != 2 {
		t.Fatalf("entities = %d, want 2", n)
	}

	bad := writeFile(t, "bad.lua", "this is not lua")
	if _, _, err := newSession(cfg, nil, bad, zap.NewNop()); err == nil {
		t.Fatal("expected error for broken script")
	}
}
