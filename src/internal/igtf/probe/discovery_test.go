// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package probe_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/internal/igtf/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		name      string
		challenge string
		wantHost  string
		wantPort  int
		wantErr   error
	}{
		{
			name:      "host and port from challenge",
			challenge: "Bearer realm='https://voms.example.org:8443/token'",
			wantHost:  "voms.example.org",
			wantPort:  8443,
		},
		{
			name:      "port defaults to 443",
			challenge: "Basic realm='https://voms.example.org/token'",
			wantHost:  "voms.example.org",
			wantPort:  443,
		},
		{
			name:    "no challenge header",
			wantErr: probe.ErrNoChallenge,
		},
		{
			name:      "challenge without quoted URL",
			challenge: "Bearer realm=something",
			wantErr:   probe.ErrNoChallenge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.challenge != "" {
					w.Header().Set("WWW-Authenticate", tt.challenge)
				}
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer srv.Close()

			host, port, err := probe.ResolveEndpoint(context.Background(), srv.Client(), srv.URL)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantPort, port)
		})
	}
}

func TestResolveEndpointUnreachable(t *testing.T) {
	_, _, err := probe.ResolveEndpoint(context.Background(), nil, "http://127.0.0.1:1/discovery")
	assert.Error(t, err)
}
