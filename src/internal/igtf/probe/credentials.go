// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package probe

import (
	"crypto"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

var (
	// ErrNoCertificates indicates that the credential file contained no
	// certificate in any supported encoding.
	ErrNoCertificates = errors.New("probe: no certificates found in credential file")

	// ErrInvalidKeyPEM indicates that the key file is not a PEM-encoded
	// private key.
	ErrInvalidKeyPEM = errors.New("probe: key file is not a PEM-encoded private key")

	// ErrUnsupportedKey indicates a private key in an encoding this
	// probe cannot parse.
	ErrUnsupportedKey = errors.New("probe: unsupported private key encoding")
)

// LoadCredentials reads a client certificate and key from disk and
// assembles the tls.Certificate presented during the probe handshake.
// The certificate file may be PEM (one or more blocks), raw DER, or a
// PKCS7 bundle; the key file must be PEM (PKCS1, PKCS8 or EC).
func LoadCredentials(certPath, keyPath string) (*tls.Certificate, error) {
	certData, err := os.ReadFile(certPath)
	if err != nil {
		return nil, fmt.Errorf("probe: reading certificate: %w", err)
	}
	keyData, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("probe: reading key: %w", err)
	}

	chain, err := decodeCertificates(certData)
	if err != nil {
		return nil, err
	}
	key, err := parsePrivateKey(keyData)
	if err != nil {
		return nil, err
	}

	return &tls.Certificate{Certificate: chain, PrivateKey: key}, nil
}

// decodeCertificates extracts the DER certificate chain from PEM, raw
// DER, or PKCS7 input.
func decodeCertificates(data []byte) ([][]byte, error) {
	if block, _ := pem.Decode(data); block != nil {
		var chain [][]byte
		rest := data
		for {
			var b *pem.Block
			b, rest = pem.Decode(rest)
			if b == nil {
				break
			}
			if b.Type != "CERTIFICATE" {
				continue
			}
			if _, err := x509.ParseCertificate(b.Bytes); err != nil {
				return nil, fmt.Errorf("probe: parsing PEM certificate: %w", err)
			}
			chain = append(chain, b.Bytes)
		}
		if len(chain) == 0 {
			return nil, ErrNoCertificates
		}
		return chain, nil
	}

	if certs, err := x509.ParseCertificates(data); err == nil && len(certs) > 0 {
		chain := make([][]byte, 0, len(certs))
		for _, c := range certs {
			chain = append(chain, c.Raw)
		}
		return chain, nil
	}

	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrNoCertificates
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificates
	}
	chain := make([][]byte, 0, len(p.Content.SignedData.Certificates))
	for _, c := range p.Content.SignedData.Certificates {
		chain = append(chain, c.Raw)
	}
	return chain, nil
}

// parsePrivateKey parses a PEM private key in PKCS8, PKCS1 or EC form.
func parsePrivateKey(data []byte) (crypto.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidKeyPEM
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	if key, err := x509.ParseECPrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	return nil, ErrUnsupportedKey
}
