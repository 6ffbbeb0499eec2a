// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package distribution

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNoVersion indicates a release descriptor without a
	// MAJOR.MINOR-PATCH version string.
	ErrNoVersion = errors.New("distribution: no release version found")

	// ErrNoDate indicates a release descriptor without a parseable
	// release date.
	ErrNoDate = errors.New("distribution: no release date found")

	// ErrNoPreviousRelease indicates a x.0 release, which has no
	// predecessor within the same major series.
	ErrNoPreviousRelease = errors.New("distribution: release has no previous version")
)

// versionPattern matches the MAJOR.MINOR-PATCH version advertised in
// the release descriptor, e.g. "1.133-1".
var versionPattern = regexp.MustCompile(`\b(\d+)\.(\d+)-(\d+)\b`)

// datePatterns are tried line by line against the descriptor, first
// match wins. The distribution has shipped both ISO and slash dates
// over the years.
var datePatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`), "2006-01-02"},
	{regexp.MustCompile(`\b(\d{2}/\d{2}/\d{4})\b`), "02/01/2006"},
	{regexp.MustCompile(`\b(\d{1,2} [A-Z][a-z]{2} \d{4})\b`), "2 Jan 2006"},
}

// Release holds the metadata extracted from the distribution release
// descriptor.
type Release struct {
	// Version is the MAJOR.MINOR part of the release version.
	Version string
	// Patch is the trailing PATCH component.
	Patch int
	// Date is the release date, midnight UTC when the descriptor only
	// carries a calendar date.
	Date time.Time
}

// ParseRelease extracts version and date from a release descriptor
// document. The descriptor is free-form text; the first
// MAJOR.MINOR-PATCH token names the release and the first recognizable
// date is the release date.
func ParseRelease(doc []byte) (Release, error) {
	text := string(doc)

	m := versionPattern.FindStringSubmatch(text)
	if m == nil {
		return Release{}, ErrNoVersion
	}
	patch, _ := strconv.Atoi(m[3])
	rel := Release{
		Version: m[1] + "." + m[2],
		Patch:   patch,
	}

	for _, line := range strings.Split(text, "\n") {
		for _, p := range datePatterns {
			dm := p.re.FindStringSubmatch(line)
			if dm == nil {
				continue
			}
			date, err := time.Parse(p.layout, dm[1])
			if err != nil {
				continue
			}
			rel.Date = date.UTC()
			return rel, nil
		}
	}
	return Release{}, fmt.Errorf("%w in release %s", ErrNoDate, rel.Version)
}

// Previous derives the version of the immediately preceding release:
// same major, minor reduced by one.
func (r Release) Previous() (string, error) {
	dot := strings.IndexByte(r.Version, '.')
	if dot < 0 {
		return "", fmt.Errorf("distribution: malformed release version %q", r.Version)
	}
	major, minor := r.Version[:dot], r.Version[dot+1:]

	n, err := strconv.Atoi(minor)
	if err != nil {
		return "", fmt.Errorf("distribution: malformed minor version %q: %w", minor, err)
	}
	if n == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoPreviousRelease, r.Version)
	}
	return major + "." + strconv.Itoa(n-1), nil
}

// Age returns the number of days since the release date at the given
// instant, as a real number. Negative values mean the release date is
// still in the future.
func (r Release) Age(now time.Time) float64 {
	return now.Sub(r.Date).Seconds() / 86400
}
