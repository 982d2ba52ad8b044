package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/csspurge"
	"github.com/yacobolo/csspurge/internal/options"
	"go.uber.org/zap"
)

const defaultConfigFile = ".csspurge.yaml"

// configDelim splits nested keys. Selectors under reduce_declarations
// contain dots, so a slash is used instead.
const configDelim = "/"

var k = koanf.New(configDelim)

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence). Unchanged flags only fill keys
	// missing from the file and environment.
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, configDelim, k, func(f *pflag.Flag) (string, interface{}) {
		return flagKey(f.Name), posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// flagKey maps a flag name onto its config key: --shorten-zero sets
// shorten_zero.
func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSPURGE_* prefix)
	if err := k.Load(env.Provider("CSSPURGE_", configDelim, func(s string) string {
		// CSSPURGE_SHORTEN_ZERO -> shorten_zero
		return strings.ToLower(strings.TrimPrefix(s, "CSSPURGE_"))
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildOptions decodes the optimizer options from koanf state on top of
// the defaults.
func buildOptions() (options.Options, error) {
	opts := options.Defaults()
	if err := k.UnmarshalWithConf("", &opts, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return opts, fmt.Errorf("decoding options: %w", err)
	}

	if path := k.String("reduce_declarations_file_location"); path != "" {
		rd, err := loadReduceDeclarations(path)
		if err != nil {
			return opts, err
		}
		opts.ReduceDeclarations = rd
	}
	return opts, nil
}

// loadReduceDeclarations reads declaration_names and selectors from a
// separate YAML or JSON file.
func loadReduceDeclarations(path string) (options.ReduceDeclarations, error) {
	rd := options.Defaults().ReduceDeclarations

	rk := koanf.New(configDelim)
	if err := rk.Load(file.Provider(path), yaml.Parser()); err != nil {
		return rd, fmt.Errorf("loading reduce declarations file %s: %w", path, err)
	}
	if err := rk.UnmarshalWithConf("", &rd, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return rd, fmt.Errorf("decoding reduce declarations file %s: %w", path, err)
	}
	return rd, nil
}

// buildPurgeConfig constructs the library's Config struct from koanf state.
func buildPurgeConfig(log *zap.Logger) (csspurge.Config, error) {
	opts, err := buildOptions()
	if err != nil {
		return csspurge.Config{}, err
	}

	return csspurge.Config{
		CSS:     k.Strings("css"),
		HTML:    k.Strings("html"),
		Output:  k.String("output"),
		Options: opts,
		Logger:  log,
	}, nil
}
