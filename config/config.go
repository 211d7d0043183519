// Package config loads optional shell configuration from a YAML file.
package config

import (
	"github.com/spf13/viper"
)

// ShellConfig holds the runner shell's settings. Every field has a default;
// a config file only overrides what it names.
type ShellConfig struct {
	// Path to the uasat wasm artifact. The -wasm flag overrides this.
	WasmPath string `mapstructure:"wasm_path"`
	// Exported entry function name.
	EntryFunc string `mapstructure:"entry_func"`
	// Log level (debug enables development logging).
	LogLevel string     `mapstructure:"log_level"`
	Wasm     WasmConfig `mapstructure:"wasm"`
}

// WasmConfig holds wazero runtime configuration.
type WasmConfig struct {
	// Memory limit per instance (in pages, 64KB each).
	MemoryPages uint32 `mapstructure:"memory_pages"`
	// Abort in-flight calls when their context is canceled.
	CloseOnCancel bool `mapstructure:"close_on_cancel"`
}

// Load reads configuration from configPath, or returns defaults when the
// path is empty.
func Load(configPath string) (*ShellConfig, error) {
	v := viper.New()

	v.SetDefault("wasm_path", "uasat.wasm")
	v.SetDefault("entry_func", "test")
	v.SetDefault("log_level", "info")

	v.SetDefault("wasm.memory_pages", 1024) // 64MB
	v.SetDefault("wasm.close_on_cancel", true)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg ShellConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
