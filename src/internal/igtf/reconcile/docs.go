// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package reconcile decides whether a server's advertised client-CA
// list matches the trust-anchor distribution. It classifies the
// advertisement against the current release, falls back to the
// previous release during rollout windows, and grades leftover skew by
// the age of the current release. All set arithmetic is value-returning;
// the inputs are never mutated.
package reconcile
