// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
)

var (
	// ErrNoChallenge indicates that the discovery response carried no
	// single-quoted endpoint URL in its WWW-Authenticate header.
	ErrNoChallenge = errors.New("probe: no endpoint URL in authentication challenge")
)

// challengePattern extracts the single-quoted URL from an
// authentication challenge header, e.g.
// WWW-Authenticate: Bearer realm='https://idp.example:8443/token'.
var challengePattern = regexp.MustCompile(`'(https?://[^']+)'`)

// ResolveEndpoint queries a discovery URL and extracts the effective
// probe target from the authentication-challenge header of the
// response. The port defaults to 443 when the challenge URL does not
// carry one. A nil client falls back to http.DefaultClient.
func ResolveEndpoint(ctx context.Context, client *http.Client, discoveryURL string) (string, int, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discoveryURL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("probe: discovery request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("probe: discovery request: %w", err)
	}
	defer resp.Body.Close()

	challenge := resp.Header.Get("WWW-Authenticate")
	m := challengePattern.FindStringSubmatch(challenge)
	if m == nil {
		return "", 0, fmt.Errorf("%w: %q", ErrNoChallenge, challenge)
	}

	u, err := url.Parse(m[1])
	if err != nil {
		return "", 0, fmt.Errorf("probe: challenge URL %q: %w", m[1], err)
	}

	port := 443
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return "", 0, fmt.Errorf("probe: challenge URL port %q: %w", p, err)
		}
	}
	return u.Hostname(), port, nil
}
