// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/internal/igtf/distribution"
	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/internal/igtf/dn"
	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/internal/igtf/probe"
	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/internal/igtf/reconcile"
	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/logger"
	"github.com/olorin/nagiosplugin"
)

// ErrHostRequired indicates that neither a hostname nor a discovery URL
// was given.
var ErrHostRequired = errors.New("cli: a hostname (-H) or a discovery URL (--discovery) is required")

// ErrPreviousListsIncomplete indicates that only one of the two
// previous-release source lists was given.
var ErrPreviousListsIncomplete = errors.New("cli: --previous-dn-list and --previous-obsolete-list must be given together")

// Options carries the fully resolved settings of one probe run, after
// defaults file and flag overrides have been merged.
type Options struct {
	// Host and Port name the TLS endpoint to probe. Host may be empty
	// when Discovery is set.
	Host string
	Port int

	// Discovery is an optional HTTP URL whose WWW-Authenticate
	// challenge names the actual TLS endpoint.
	Discovery string

	// CertFile and KeyFile locate optional client credentials. KeyFile
	// defaults to CertFile for combined files.
	CertFile string
	KeyFile  string

	// WarningDays and CriticalDays grade how far behind the current
	// release a server may lag.
	WarningDays  int
	CriticalDays int

	// Source lists for the trust-anchor feed, comma-separated with
	// first-success fallback. A "%v" placeholder is replaced with the
	// release version.
	ReleaseSources              string
	DNListSources               string
	ObsoleteListSources         string
	PreviousDNListSources       string
	PreviousObsoleteListSources string

	// MaxAge bounds the age of local file sources, zero disables the
	// check.
	MaxAge time.Duration

	// Timeout bounds the whole run.
	Timeout time.Duration
}

// Outcome is the terminal state of one probe run, ready for plugin
// emission.
type Outcome struct {
	// Status is the monitoring-plugin exit status.
	Status nagiosplugin.Status
	// Message is the single-line plugin output.
	Message string
	// Report holds the reconciliation detail; valid only when
	// Reconciled is set.
	Report     reconcile.Result
	Reconciled bool
	// Elapsed is the handshake duration, zero when the handshake never
	// ran.
	Elapsed time.Duration
}

func unknownf(format string, v ...any) Outcome {
	return Outcome{Status: nagiosplugin.UNKNOWN, Message: fmt.Sprintf(format, v...)}
}

// Emit writes the outcome onto a plugin check: performance data first,
// then the severity-determining result. The age datum carries the
// day thresholds; its values are day counts, a dimension the perfdata
// format has no unit for, so the UOM stays empty. A rejected datum is
// reported to the log, never dropped silently.
func (o Outcome) Emit(check *nagiosplugin.Check, opts Options, log logger.Logger) {
	if o.Elapsed > 0 {
		if err := check.AddPerfDatum("time", "s", o.Elapsed.Seconds()); err != nil {
			log.Printf("could not add time perfdata: %v", err)
		}
	}
	if o.Reconciled {
		if err := check.AddPerfDatum("age", "", o.Report.AgeDays,
			0, math.Inf(1), float64(opts.WarningDays), float64(opts.CriticalDays)); err != nil {
			log.Printf("could not add age perfdata: %v", err)
		}
	}
	check.AddResult(o.Status, o.Message)
}

// toStatus maps a reconciliation severity onto the plugin status.
func toStatus(s reconcile.Severity) nagiosplugin.Status {
	switch s {
	case reconcile.OK:
		return nagiosplugin.OK
	case reconcile.Warning:
		return nagiosplugin.WARNING
	case reconcile.Critical:
		return nagiosplugin.CRITICAL
	default:
		return nagiosplugin.UNKNOWN
	}
}

// fetchDNSet retrieves one DN list, substituting the release version
// into the source templates.
func fetchDNSet(ctx context.Context, f *distribution.Fetcher, sources, version string, maxAge time.Duration) (dn.Set, error) {
	doc, err := f.Fetch(ctx, distribution.ExpandSources(sources, version), maxAge)
	if err != nil {
		return nil, err
	}
	return distribution.ParseDNList(doc)
}

// Run executes one probe: endpoint resolution, TLS handshake capture,
// trust-anchor feed acquisition and reconciliation. It never exits the
// process; the caller emits the outcome.
//
// Every acquisition or parse failure maps to UNKNOWN. A server that
// does not request client certificates short-circuits to OK, there is
// no advertisement to verify on such an endpoint.
func Run(ctx context.Context, opts Options, log logger.Logger) Outcome {
	if opts.Host == "" && opts.Discovery == "" {
		return unknownf("%v", ErrHostRequired)
	}

	host, port := opts.Host, opts.Port
	if opts.Discovery != "" {
		h, p, err := probe.ResolveEndpoint(ctx, http.DefaultClient, opts.Discovery)
		if err != nil {
			return unknownf("Could not resolve service endpoint: %v", err)
		}
		host, port = h, p
		log.Printf("discovered endpoint %s:%d", host, port)
	}

	var creds *tls.Certificate
	if opts.CertFile != "" {
		keyFile := opts.KeyFile
		if keyFile == "" {
			keyFile = opts.CertFile
		}
		c, err := probe.LoadCredentials(opts.CertFile, keyFile)
		if err != nil {
			return unknownf("Could not load client credentials: %v", err)
		}
		creds = c
	}

	start := time.Now()
	advertised, err := probe.New(host, port, creds, log).AcceptableCAs(ctx)
	elapsed := time.Since(start)
	if errors.Is(err, probe.ErrClientAuthNotRequested) {
		return Outcome{
			Status:  nagiosplugin.OK,
			Message: fmt.Sprintf("TLS not enabled on %s:%d, no CA advertisement to verify", host, port),
			Elapsed: elapsed,
		}
	}
	if err != nil {
		out := unknownf("Could not probe %s:%d: %v", host, port, err)
		out.Elapsed = elapsed
		return out
	}

	fetcher := distribution.NewFetcher(log)

	releaseDoc, err := fetcher.Fetch(ctx, opts.ReleaseSources, opts.MaxAge)
	if err != nil {
		return unknownf("Could not fetch release descriptor: %v", err)
	}
	rel, err := distribution.ParseRelease(releaseDoc)
	if err != nil {
		return unknownf("Could not parse release descriptor: %v", err)
	}
	log.Printf("current CA distribution release %s-%d (%s)", rel.Version, rel.Patch, rel.Date.Format("2006-01-02"))

	valid, err := fetchDNSet(ctx, fetcher, opts.DNListSources, rel.Version, opts.MaxAge)
	if err != nil {
		return unknownf("Could not load CA distribution DN list: %v", err)
	}
	obsolete, err := fetchDNSet(ctx, fetcher, opts.ObsoleteListSources, rel.Version, opts.MaxAge)
	if err != nil {
		return unknownf("Could not load CA distribution obsoleted list: %v", err)
	}

	var notes []string
	var prevValid, prevObsolete dn.Set
	prevAvailable := false

	prevVersion, prevErr := rel.Previous()
	prevDNSources, prevObsSources := opts.PreviousDNListSources, opts.PreviousObsoleteListSources
	switch {
	case prevDNSources != "" && prevObsSources != "":
		// explicit sources win
	case prevDNSources != "" || prevObsSources != "":
		return unknownf("%v", ErrPreviousListsIncomplete)
	case prevErr != nil:
		notes = append(notes, fmt.Sprintf("no release precedes %s", rel.Version))
	case strings.Contains(opts.DNListSources, distribution.VersionPlaceholder) &&
		strings.Contains(opts.ObsoleteListSources, distribution.VersionPlaceholder):
		prevDNSources, prevObsSources = opts.DNListSources, opts.ObsoleteListSources
	default:
		notes = append(notes, "previous-release sources not derivable")
	}

	if prevDNSources != "" && prevObsSources != "" {
		pv, errValid := fetchDNSet(ctx, fetcher, prevDNSources, prevVersion, opts.MaxAge)
		po, errObs := fetchDNSet(ctx, fetcher, prevObsSources, prevVersion, opts.MaxAge)
		if errValid == nil && errObs == nil {
			prevValid, prevObsolete = pv, po
			prevAvailable = true
		} else {
			notes = append(notes, fmt.Sprintf("previous CA distribution (%s) unavailable", prevVersion))
			log.Printf("previous release lists unavailable: %v", errors.Join(errValid, errObs))
		}
	}

	exempt := reconcile.HostExempted(host)
	if exempt {
		log.Printf("host %s is exempted from site-local CA requirements", host)
	}
	valid = reconcile.ApplyExemptions(valid, exempt)
	if prevAvailable {
		prevValid = reconcile.ApplyExemptions(prevValid, exempt)
	}

	res, err := reconcile.Run(reconcile.Input{
		Advertised:        advertised,
		CurrentValid:      valid,
		CurrentObsolete:   obsolete,
		PreviousValid:     prevValid,
		PreviousObsolete:  prevObsolete,
		PreviousAvailable: prevAvailable,
		Release:           rel,
		PreviousVersion:   prevVersion,
		WarningDays:       opts.WarningDays,
		CriticalDays:      opts.CriticalDays,
		Now:               time.Now(),
	})
	if err != nil {
		return unknownf("Could not reconcile CA advertisement: %v", err)
	}

	return Outcome{
		Status:     toStatus(res.Severity),
		Message:    reconcile.Render(res, notes),
		Report:     res,
		Reconciled: true,
		Elapsed:    elapsed,
	}
}
