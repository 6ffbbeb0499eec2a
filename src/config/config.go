// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the environment variable consulted for the
// defaults file path when no --config flag is given.
const EnvConfigFile = "CHECK_SSL_CA_CONFIG"

// ErrInvalidConfig indicates a defaults file that does not satisfy the
// configuration schema.
var ErrInvalidConfig = errors.New("config: defaults file violates schema")

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// schema is the JSON schema every defaults file must satisfy. It is
// deliberately closed (additionalProperties: false) so a typo in a key
// fails loudly instead of being silently ignored.
const schema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "defaults": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "warningDays": {"type": "integer", "minimum": 1},
        "criticalDays": {"type": "integer", "minimum": 1},
        "timeoutSeconds": {"type": "integer", "minimum": 1},
        "port": {"type": "integer", "minimum": 1, "maximum": 65535}
      }
    },
    "distribution": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "release": {"type": "string"},
        "dnList": {"type": "string"},
        "obsoleteList": {"type": "string"},
        "previousDnList": {"type": "string"},
        "previousObsoleteList": {"type": "string"},
        "maxAgeHours": {"type": "integer", "minimum": 0}
      }
    }
  }
}`

// Config represents the probe defaults file structure.
//
// Every field has a built-in default, so an absent file, an empty file
// and a partial file are all valid. Supported extensions: .json,
// .yaml, .yml.
type Config struct {
	// Defaults: Threshold and connection settings.
	Defaults struct {
		// WarningDays: Release age in days before a lagging server warns
		WarningDays int `json:"warningDays" yaml:"warningDays"`
		// CriticalDays: Release age in days before a lagging server goes critical
		CriticalDays int `json:"criticalDays" yaml:"criticalDays"`
		// Timeout: Overall probe timeout in seconds
		Timeout int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
		// Port: Default target port
		Port int `json:"port" yaml:"port"`
	} `json:"defaults" yaml:"defaults"`

	// Distribution: Source lists for the trust-anchor feed. Each value
	// is a comma-separated fallback list; a "%v" placeholder is
	// substituted with the release version.
	Distribution struct {
		// Release: Release descriptor sources
		Release string `json:"release,omitempty" yaml:"release,omitempty"`
		// DNList: Valid DN list sources
		DNList string `json:"dnList,omitempty" yaml:"dnList,omitempty"`
		// ObsoleteList: Obsoleted DN list sources
		ObsoleteList string `json:"obsoleteList,omitempty" yaml:"obsoleteList,omitempty"`
		// PreviousDNList: Explicit previous-release DN list sources
		PreviousDNList string `json:"previousDnList,omitempty" yaml:"previousDnList,omitempty"`
		// PreviousObsoleteList: Explicit previous-release obsoleted list sources
		PreviousObsoleteList string `json:"previousObsoleteList,omitempty" yaml:"previousObsoleteList,omitempty"`
		// MaxAgeHours: Maximum age for local list copies, 0 disables
		MaxAgeHours int `json:"maxAgeHours,omitempty" yaml:"maxAgeHours,omitempty"`
	} `json:"distribution,omitempty" yaml:"distribution,omitempty"`
}

// detectConfigFormat determines the configuration file format based on
// file extension, case-insensitively.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshal decodes configuration data into out based on the format.
func unmarshal(data []byte, out any, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("config: failed to parse YAML defaults file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("config: failed to parse JSON defaults file: %w", err)
		}
	}
	return nil
}

// validate checks the decoded document against the embedded schema.
func validate(doc any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("config: schema validation: %w", err)
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(details, "; "))
	}
	return nil
}

// Load reads the probe defaults.
//
// Configuration priority:
//  1. Built-in defaults are set.
//  2. The CHECK_SSL_CA_CONFIG environment variable is checked when
//     configPath is empty.
//  3. Defaults file values override the built-ins (after schema
//     validation).
//
// Flag handling on top of the result is the CLI layer's business.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}
	cfg.Defaults.WarningDays = 10
	cfg.Defaults.CriticalDays = 30
	cfg.Defaults.Timeout = 60
	cfg.Defaults.Port = 443
	cfg.Distribution.Release = "https://repository.egi.eu/sw/production/cas/1/current/meta/ca-policy-egi-core.release"
	cfg.Distribution.DNList = "https://repository.egi.eu/sw/production/cas/1/%v/meta/ca-policy-egi-core.list"
	cfg.Distribution.ObsoleteList = "https://repository.egi.eu/sw/production/cas/1/%v/meta/ca-policy-egi-core.obsoleted"

	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: reading defaults file: %w", err)
	}

	format := detectConfigFormat(configPath)

	// Decode generically first so the schema sees the document as-is,
	// unknown keys included.
	var doc any
	if err := unmarshal(data, &doc, format); err != nil {
		return nil, err
	}
	if doc != nil {
		if err := validate(doc); err != nil {
			return nil, err
		}
	}

	if err := unmarshal(data, cfg, format); err != nil {
		return nil, err
	}
	return cfg, nil
}
