// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides abstraction and implementation for logging operations.
// It defines the Logger interface and provides two implementations: CLILogger for
// human-readable stderr output and DebugLogger for optional verbose diagnostics
// during a probe run. Both keep stdout untouched so the single-line monitoring
// plugin output stays intact.
package logger
