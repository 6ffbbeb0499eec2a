// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface of the check_ssl_ca
// monitoring probe. It implements a Cobra-based CLI that resolves the
// target endpoint, captures the CA names a TLS server advertises when
// requesting client certificates, reconciles them against the IGTF
// trust-anchor distribution and emits the verdict in the
// monitoring-plugin format (exit codes 0-3, single-line output,
// performance data). Defaults come from an optional JSON or YAML file;
// command-line flags override it.
package cli
