// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package distribution acquires and decodes the trust-anchor
// distribution feed: the release descriptor (version and date) and the
// valid/obsoleted DN lists, from a comma-separated fallback list of
// https URLs or local files. Local copies older than a configurable
// maximum age are rejected as stale so a forgotten mirror cannot turn
// the probe green forever.
package distribution
