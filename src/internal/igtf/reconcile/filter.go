// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package reconcile

import (
	"strings"

	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/internal/igtf/dn"
)

// exemptedDomain is the domain whose hosts legitimately run without the
// exempted CAs below.
const exemptedDomain = "cern.ch"

// exemptedDNs are never required from hosts in the exempted domain.
// The exemption applies to the valid sets only; an obsoleted CA stays
// obsoleted everywhere.
var exemptedDNs = []string{
	"/DC=ch/DC=cern/CN=CERN Root Certification Authority 2",
	"/DC=ch/DC=cern/CN=CERN Grid Certification Authority",
}

// HostExempted reports whether host belongs to the exempted domain.
func HostExempted(host string) bool {
	h := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(host), "."))
	return h == exemptedDomain || strings.HasSuffix(h, "."+exemptedDomain)
}

// ApplyExemptions returns valid without the exempted DNs when exempt is
// true, and valid unchanged otherwise. The input set is never mutated,
// so applying the filter twice is harmless.
func ApplyExemptions(valid dn.Set, exempt bool) dn.Set {
	if !exempt || valid == nil {
		return valid
	}
	return valid.Without(exemptedDNs...)
}
