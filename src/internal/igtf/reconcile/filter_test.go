// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package reconcile_test

import (
	"testing"
	"time"

	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/internal/igtf/dn"
	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/internal/igtf/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cernRoot = "/DC=ch/DC=cern/CN=CERN Root Certification Authority 2"
	cernGrid = "/DC=ch/DC=cern/CN=CERN Grid Certification Authority"
)

func TestHostExempted(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"vocms001.cern.ch", true},
		{"CERN.CH", true},
		{"lxplus.cern.ch.", true},
		{"voms.example.org", false},
		{"notcern.ch", false},
		{"cern.ch.example.org", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, reconcile.HostExempted(tt.host), "host %q", tt.host)
	}
}

func TestApplyExemptions(t *testing.T) {
	valid := dn.NewSet(cernRoot, cernGrid, caAlpha)

	filtered := reconcile.ApplyExemptions(valid, true)
	assert.Equal(t, []string{caAlpha}, filtered.Sorted())
	assert.Equal(t, 3, valid.Len(), "input set is untouched")

	// Idempotent.
	again := reconcile.ApplyExemptions(filtered, true)
	assert.Equal(t, filtered.Sorted(), again.Sorted())

	// Not exempted, no filtering.
	same := reconcile.ApplyExemptions(valid, false)
	assert.Equal(t, valid.Sorted(), same.Sorted())

	assert.Nil(t, reconcile.ApplyExemptions(nil, true))
}

func TestExemptionAffectsVerdict(t *testing.T) {
	// A CERN host not advertising the CERN CAs is still an exact match
	// once the exemption is applied.
	in := baseInput()
	in.CurrentValid = reconcile.ApplyExemptions(
		dn.NewSet(caAlpha, caBeta, caGamma, cernRoot, cernGrid),
		reconcile.HostExempted("vocms001.cern.ch"))
	in.Release.Date = testNow.Add(-30 * 24 * time.Hour)

	res, err := reconcile.Run(in)
	require.NoError(t, err)
	assert.Equal(t, reconcile.OK, res.Severity)
}
