// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads the optional probe defaults file. The file may
// be JSON or YAML (decided by extension), is validated against an
// embedded JSON schema before use, and only overrides the built-in
// defaults; command-line flags override both.
package config
