// blockbyte runs sandbox scenes: a falling-sand particle grid, boxes with
// physics and tile levels, built from Lua scripts.
//
// Usage:
//
//	blockbyte run [script.lua]        - Run a scene headless
//	blockbyte level show <file>       - Print a level file
//	blockbyte level export <in> <out> - Import a level and write it back normalised
//	blockbyte gui [script.lua]        - Open the editor window (-tags ebiten)
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/blockbyte/engine/internal/config"
	"github.com/blockbyte/engine/internal/engine"
	"github.com/blockbyte/engine/internal/scripting"
	"github.com/blockbyte/engine/internal/system"
)

const (
	defaultConfigPath = "config/blockbyte.toml"
	configEnv         = "BLOCKBYTE_CONFIG"
)

var (
	// Global flags
	flagConfig string
	flagSeed   int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "blockbyte",
	Short:         "Sandbox engine: particle grid, physics boxes and tile levels",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default $"+configEnv+" or "+defaultConfigPath+")")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed override (0 = use config)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(guiCmd)
}

// loadConfig resolves the config path. Only the implicit default may be
// missing; an explicit path must exist.
func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = os.Getenv(configEnv)
	}

	var (
		cfg *config.Config
		err error
	)
	if path == "" {
		cfg, err = config.LoadOrDefault(defaultConfigPath)
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flagSeed != 0 {
		cfg.Engine.Seed = flagSeed
	}
	return cfg, nil
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

// newSession builds the engine and a Lua VM bound to its scene, then runs
// script, or every script in the configured directory when script is "".
func newSession(cfg *config.Config, input system.InputSource, script string, log *zap.Logger) (*engine.Engine, *scripting.Engine, error) {
	eng, err := engine.New(cfg, input, log)
	if err != nil {
		return nil, nil, err
	}
	lua := scripting.NewEngine(eng.Scene(), eng.RNG(), log)
	eng.Register(lua.TickSystem())

	if script != "" {
		err = lua.RunFile(script)
	} else {
		err = lua.LoadDir(cfg.Scripts.Dir)
	}
	if err != nil {
		lua.Close()
		return nil, nil, fmt.Errorf("lua scripts: %w", err)
	}
	return eng, lua, nil
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(title string, seed int64) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              blockbyte  v0.1.0            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m     sand · water · stone · boxes · tiles  \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mScene:\033[0m %s \033[90m(seed: %d)\033[0m\n\n", title, seed)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
