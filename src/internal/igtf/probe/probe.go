// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/internal/igtf/dn"
	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/logger"
	"github.com/hako/durafmt"
)

var (
	// ErrClientAuthNotRequested indicates a completed handshake in which
	// the server never asked for a client certificate. The plugin treats
	// this endpoint as not TLS-client-auth enabled and reports OK without
	// reconciling anything.
	ErrClientAuthNotRequested = errors.New("probe: server did not request a client certificate")

	// ErrHandshakeFailed indicates that the TLS handshake could not be
	// completed at all.
	ErrHandshakeFailed = errors.New("probe: TLS handshake failed")
)

// Probe captures the acceptable client CA advertisement of a TLS
// endpoint.
type Probe struct {
	host        string
	port        int
	credentials *tls.Certificate
	log         logger.Logger
}

// New creates a Probe for host:port. credentials may be nil; when set,
// the certificate is presented if the server requests client
// authentication.
func New(host string, port int, credentials *tls.Certificate, log logger.Logger) *Probe {
	return &Probe{
		host:        host,
		port:        port,
		credentials: credentials,
		log:         log,
	}
}

// AcceptableCAs performs a TLS handshake and returns the CA names the
// server advertised in its CertificateRequest, in canonical slash form
// and in advertisement order. It returns ErrClientAuthNotRequested when
// the handshake succeeds without the server asking for a client
// certificate.
func (p *Probe) AcceptableCAs(ctx context.Context) ([]string, error) {
	addr := net.JoinHostPort(p.host, strconv.Itoa(p.port))

	dialer := &net.Dialer{}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Deadline = deadline
	}

	start := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("probe: failed to connect to %s: %w", addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	var (
		requested  bool
		advertised [][]byte
	)
	tlsConn := tls.Client(conn, &tls.Config{
		ServerName: p.host,
		// The advertisement is the subject of the check, not the
		// server's own chain.
		InsecureSkipVerify: true,
		GetClientCertificate: func(cri *tls.CertificateRequestInfo) (*tls.Certificate, error) {
			requested = true
			advertised = append([][]byte(nil), cri.AcceptableCAs...)
			if p.credentials != nil {
				return p.credentials, nil
			}
			return &tls.Certificate{}, nil
		},
	})
	defer tlsConn.Close()

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrHandshakeFailed, addr, err)
	}

	p.log.Printf("handshake with %s completed in %s, %d CA names advertised",
		addr, durafmt.Parse(time.Since(start)).LimitFirstN(2), len(advertised))

	if !requested {
		return nil, fmt.Errorf("%w: %s", ErrClientAuthNotRequested, addr)
	}

	names := make([]string, 0, len(advertised))
	for _, der := range advertised {
		name, err := dn.FromDER(der)
		if err != nil {
			return nil, fmt.Errorf("probe: decoding advertised CA name: %w", err)
		}
		names = append(names, name)
	}
	return names, nil
}
