// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package dn converts certificate subject names into the canonical
// slash-separated form used as the comparison key throughout the probe.
// It accepts the legacy slash form unchanged, parses [RFC 2253] string
// names, and decodes DER-encoded names as presented by the TLS stack
// in the acceptable client CA advertisement.
//
// [RFC 2253]: https://datatracker.ietf.org/doc/html/rfc2253
package dn
