// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package probe_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/internal/igtf/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeKeypair writes a self-signed certificate and its key to dir,
// the certificate encoded by encode, and returns both paths.
func writeKeypair(t *testing.T, dir string, encode func(der []byte) []byte) (string, string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject:      pkix.Name{CommonName: "probe client"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	certPath := filepath.Join(dir, "cert")
	require.NoError(t, os.WriteFile(certPath, encode(der), 0o600))

	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	keyPath := filepath.Join(dir, "key.pem")
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})
	require.NoError(t, os.WriteFile(keyPath, keyPEM, 0o600))

	return certPath, keyPath
}

func TestLoadCredentialsPEM(t *testing.T) {
	certPath, keyPath := writeKeypair(t, t.TempDir(), func(der []byte) []byte {
		return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	})

	creds, err := probe.LoadCredentials(certPath, keyPath)
	require.NoError(t, err)
	require.Len(t, creds.Certificate, 1)
	assert.NotNil(t, creds.PrivateKey)
}

func TestLoadCredentialsDER(t *testing.T) {
	certPath, keyPath := writeKeypair(t, t.TempDir(), func(der []byte) []byte {
		return der
	})

	creds, err := probe.LoadCredentials(certPath, keyPath)
	require.NoError(t, err)
	require.Len(t, creds.Certificate, 1)
}

func TestLoadCredentialsMissingFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := probe.LoadCredentials(filepath.Join(dir, "absent.pem"), filepath.Join(dir, "absent.key"))
	assert.Error(t, err)
}

func TestLoadCredentialsGarbage(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key.pem")
	require.NoError(t, os.WriteFile(certPath, []byte("not a certificate"), 0o600))
	require.NoError(t, os.WriteFile(keyPath, []byte("not a key"), 0o600))

	_, err := probe.LoadCredentials(certPath, keyPath)
	assert.ErrorIs(t, err, probe.ErrNoCertificates)
}

func TestLoadCredentialsBadKey(t *testing.T) {
	dir := t.TempDir()
	certPath, _ := writeKeypair(t, dir, func(der []byte) []byte {
		return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	})

	keyPath := filepath.Join(dir, "bad-key.pem")
	bad := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte{0x01, 0x02}})
	require.NoError(t, os.WriteFile(keyPath, bad, 0o600))

	_, err := probe.LoadCredentials(certPath, keyPath)
	assert.ErrorIs(t, err, probe.ErrUnsupportedKey)
}
