// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package version provides centralized version information for the IGTF CA distribution probe.
package version

// Version holds the current version of the check_ssl_ca probe.
// This value can be overridden at build time using ldflags.
var Version = "0.3.0"
