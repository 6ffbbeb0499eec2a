// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// check_ssl_ca is a monitoring probe that verifies a TLS server
// advertises the correct set of trusted certificate authorities.
//
// During the handshake a server that requests client certificates
// sends the distinguished names of the CAs it accepts. The probe
// captures that list and reconciles it against the IGTF trust-anchor
// distribution: every CA of the current release must be advertised and
// no obsoleted CA may remain. A server still running the previous
// release is graded by how old the current release is.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/ARGOeu-Metrics/argo-probe-igtf/cmd/check_ssl_ca@latest
//
// # Usage
//
//	check_ssl_ca -H HOSTNAME [FLAGS]
//
// # Flags
//
//	-H, --hostname               Host name of the TLS endpoint to probe
//	-p, --port                   Port of the TLS endpoint (default 443)
//	-w, --warning                Days behind the current release before WARNING (default 10)
//	-c, --critical               Days behind the current release before CRITICAL (default 30)
//	-t, --timeout                Overall probe timeout in seconds (default 60)
//	    --release                Release descriptor sources, comma-separated
//	    --dn-list                DN list sources, %v is the release version
//	    --obsolete-list          Obsoleted DN list sources, %v is the release version
//	    --previous-dn-list       Explicit previous-release DN list sources
//	    --previous-obsolete-list Explicit previous-release obsoleted list sources
//	    --max-age                Maximum age in hours for local list files
//	-C, --cert                   Client certificate file (PEM, DER or PKCS#7)
//	-K, --key                    Client key file (default: the certificate file)
//	    --discovery              HTTP URL whose WWW-Authenticate challenge names the endpoint
//	    --config                 Defaults file, JSON or YAML
//	    --debug                  Print diagnostics to stderr
//	    --dump-table             Print the per-DN classification table to stderr
//
// # Examples
//
// Probe a host against the EGI core distribution:
//
//	check_ssl_ca -H vo.example.org
//
// Probe with client credentials and tighter thresholds:
//
//	check_ssl_ca -H vo.example.org -C hostcert.pem -K hostkey.pem -w 3 -c 8
//
// Resolve the endpoint from a service discovery URL:
//
//	check_ssl_ca --discovery https://vo.example.org/.well-known/probe
//
// Exit codes follow the monitoring-plugin convention: 0 OK, 1 WARNING,
// 2 CRITICAL, 3 UNKNOWN.
package main
