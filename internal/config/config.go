// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves xcsummary settings from flags, environment
// variables (XCSUMMARY_*), and an optional YAML config file, and validates
// the result against an embedded JSON schema.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/viper"

	"github.com/pdiddy/xcsummary/internal/history"
	"github.com/pdiddy/xcsummary/pkg/types"
)

// Setting keys. Flags bound to viper use the same names with dashes.
const (
	KeyXcrun     = "xcrun"
	KeyKind      = "kind"
	KeyFormat    = "format"
	KeyLang      = "lang"
	KeyRecord    = "record"
	KeyHistoryDB = "history_db"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. XCSUMMARY_KIND.
	EnvPrefix = "XCSUMMARY"

	configName = "xcsummary"

	// DefaultKind labels the report section when no kind is given.
	DefaultKind = "Tests"
)

//go:embed config.schema.json
var schemaData []byte

var (
	configSchema *jsonschema.Schema
	compileOnce  sync.Once
	compileErr   error
)

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyXcrun, "xcrun")
	v.SetDefault(KeyKind, DefaultKind)
	v.SetDefault(KeyFormat, string(types.OutputMarkdown))
	v.SetDefault(KeyLang, "en")
	v.SetDefault(KeyRecord, false)
	v.SetDefault(KeyHistoryDB, history.DefaultPath)
}

// Init wires environment overrides into v and reads the config file.
// With cfgFile empty it looks for xcsummary.yaml in the working directory
// and then ~/.config/xcsummary/; a missing file is not an error there.
// It returns the path of the file read, or "" when none was.
func Init(v *viper.Viper, cfgFile string) (string, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Resolve decodes the settings held by v and validates them.
func Resolve(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against the embedded configuration schema.
func Validate(cfg types.Config) error {
	if err := compileSchema(); err != nil {
		return err
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := configSchema.Validate(doc); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func compileSchema() error {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal config schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("config.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add config schema resource: %w", err)
			return
		}

		configSchema, err = compiler.Compile("config.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile config schema: %w", err)
		}
	})
	return compileErr
}
