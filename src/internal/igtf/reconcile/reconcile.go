// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package reconcile

import (
	"errors"
	"fmt"
	"time"

	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/internal/igtf/distribution"
	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/internal/igtf/dn"
)

var (
	// ErrInvalidThresholds indicates non-positive or inverted
	// warning/critical day thresholds.
	ErrInvalidThresholds = errors.New("reconcile: invalid warning/critical thresholds")

	// ErrMissingRequiredSets indicates that the current valid or current
	// obsolete set was not provided.
	ErrMissingRequiredSets = errors.New("reconcile: current valid and obsolete sets are required")
)

// Severity is the monitoring verdict of a probe run.
type Severity int

const (
	// OK means the advertisement is acceptable.
	OK Severity = iota
	// Warning means the server still runs the previous release past the
	// warning threshold.
	Warning
	// Critical means the server runs an unknown release, or the previous
	// release past the critical threshold.
	Critical
	// Unknown means the verdict could not be determined.
	Unknown
)

// String returns the conventional monitoring-plugin name of the severity.
func (s Severity) String() string {
	switch s {
	case OK:
		return "OK"
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Input carries everything one reconciliation run consumes.
type Input struct {
	// Advertised is the CA name sequence captured from the handshake.
	// Order is irrelevant and duplicates are tolerated.
	Advertised []string

	// CurrentValid and CurrentObsolete describe the current release.
	// Both are required.
	CurrentValid    dn.Set
	CurrentObsolete dn.Set

	// PreviousValid and PreviousObsolete describe the preceding release.
	// They are consulted only when PreviousAvailable is set; loading one
	// without the other is a caller bug, never a degraded mode.
	PreviousValid     dn.Set
	PreviousObsolete  dn.Set
	PreviousAvailable bool

	// Release is the current distribution release metadata.
	Release distribution.Release

	// PreviousVersion names the preceding release in diagnostics.
	PreviousVersion string

	// WarningDays and CriticalDays grade how long a server may lag
	// behind the current release. Positive, WarningDays <= CriticalDays.
	WarningDays  int
	CriticalDays int

	// Now is the reconciliation instant.
	Now time.Time
}

// Result is the verdict of a reconciliation run plus the material for
// its diagnostic text.
type Result struct {
	Severity Severity
	// Summary is the severity-determining message.
	Summary string
	// Missing lists current-valid DNs the server never advertised,
	// sorted.
	Missing []string
	// Obsolete lists advertised DNs that the current release obsoleted,
	// sorted.
	Obsolete []string
	// AgeDays is the age of the current release at reconciliation time;
	// zero when the age check was never reached.
	AgeDays float64
	// GracedByPrevious records that the advertisement matched the
	// previous release exactly.
	GracedByPrevious bool
}

// match is the outcome of classifying the advertisement against one
// release's valid/obsolete pair.
type match struct {
	missing       dn.Set // expected but not advertised
	obsoleteFound dn.Set // advertised but obsoleted
}

func (m match) clean() bool {
	return m.missing.Len() == 0 && m.obsoleteFound.Len() == 0
}

// classify computes the set differences for one release. valid and
// obsolete are left untouched.
func classify(advertised dn.Set, valid, obsolete dn.Set) match {
	return match{
		missing:       valid.Difference(advertised),
		obsoleteFound: obsolete.Intersect(advertised),
	}
}

// Run reconciles the advertised CA names against the distribution and
// returns the verdict. The only errors are input-contract violations
// (bad thresholds, missing required sets, non-normalizable advertised
// names); every operational outcome is a Result.
func Run(in Input) (Result, error) {
	if in.WarningDays <= 0 || in.CriticalDays <= 0 || in.WarningDays > in.CriticalDays {
		return Result{}, fmt.Errorf("%w: warning=%d critical=%d",
			ErrInvalidThresholds, in.WarningDays, in.CriticalDays)
	}
	if in.CurrentValid == nil || in.CurrentObsolete == nil {
		return Result{}, ErrMissingRequiredSets
	}

	advertised := make(dn.Set)
	for _, raw := range in.Advertised {
		canonical, err := dn.Normalize(raw)
		if err != nil {
			return Result{}, fmt.Errorf("reconcile: advertised name %q: %w", raw, err)
		}
		advertised.Add(canonical)
	}

	current := classify(advertised, in.CurrentValid, in.CurrentObsolete)
	if current.clean() {
		return Result{
			Severity: OK,
			Summary:  fmt.Sprintf("CA distribution version %s correctly installed", in.Release.Version),
		}, nil
	}

	res := Result{
		Missing:  current.missing.Sorted(),
		Obsolete: current.obsoleteFound.Sorted(),
	}

	if in.PreviousAvailable {
		previous := classify(advertised, in.PreviousValid, in.PreviousObsolete)
		if !previous.clean() {
			// Neither the current nor the previous release matches.
			res.Severity = Critical
			res.Summary = "unknown CA distribution version installed"
			return res, nil
		}
		res.GracedByPrevious = true
	}
	// Previous data unavailable grants the same benefit of the doubt as a
	// verified previous-release match; the age check decides below.

	res.AgeDays = in.Release.Age(in.Now)
	switch {
	case res.AgeDays >= float64(in.CriticalDays):
		res.Severity = Critical
		res.Summary = fmt.Sprintf("old CA distribution version found, new version (%s) is %.2f days old",
			in.Release.Version, res.AgeDays)
	case res.AgeDays >= float64(in.WarningDays):
		res.Severity = Warning
		res.Summary = fmt.Sprintf("old CA distribution version found, new version (%s) is %.2f days old",
			in.Release.Version, res.AgeDays)
	case res.AgeDays > 0:
		res.Severity = OK
		res.Summary = fmt.Sprintf("old CA distribution version found, new version (%s) is %.2f days old, we're still within the grace period",
			in.Release.Version, res.AgeDays)
	default:
		res.Severity = OK
		res.Summary = fmt.Sprintf("valid CA distribution found, new version (%s) will be released in %.2f days",
			in.Release.Version, -res.AgeDays)
	}
	return res, nil
}
