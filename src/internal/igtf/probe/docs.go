// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package probe performs the TLS handshake against the monitored
// endpoint and captures the acceptable client CA names the server
// advertises in its CertificateRequest. It also resolves indirected
// endpoints through a discovery URL and loads optional client
// credentials in PEM, DER or PKCS7 form.
package probe
