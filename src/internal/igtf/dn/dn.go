// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package dn

import (
	"crypto/x509/pkix"
	"encoding/asn1"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyName indicates that the input contains no distinguished name.
	ErrEmptyName = errors.New("dn: empty distinguished name")

	// ErrMalformedRDN indicates a relative distinguished name without an
	// ATTR=value shape in an RFC 2253 input.
	ErrMalformedRDN = errors.New("dn: malformed relative distinguished name")

	// ErrInvalidDER indicates that a DER-encoded name could not be decoded
	// as an RDNSequence.
	ErrInvalidDER = errors.New("dn: invalid DER-encoded name")
)

// attributeNames maps the attribute type OIDs that appear in IGTF
// distribution subjects to their short names. Anything else is rendered
// as the dotted OID, which still yields a stable comparison key.
var attributeNames = map[string]string{
	"2.5.4.3":                    "CN",
	"2.5.4.5":                    "SERIALNUMBER",
	"2.5.4.6":                    "C",
	"2.5.4.7":                    "L",
	"2.5.4.8":                    "ST",
	"2.5.4.9":                    "STREET",
	"2.5.4.10":                   "O",
	"2.5.4.11":                   "OU",
	"2.5.4.17":                   "POSTALCODE",
	"0.9.2342.19200300.100.1.1":  "UID",
	"0.9.2342.19200300.100.1.25": "DC",
	"1.2.840.113549.1.9.1":       "emailAddress",
}

// Normalize converts a raw certificate subject string into the canonical
// slash-separated DN form, ordered most-general to most-specific.
//
// Inputs that already start with "/" are assumed to be in the legacy
// canonical form and are returned unchanged, which makes Normalize
// idempotent. Anything else is parsed as an RFC 2253 name
// (comma-separated, most-specific first, backslash escapes honoured),
// reversed, and joined with "/".
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrEmptyName
	}
	if strings.HasPrefix(s, "/") {
		return s, nil
	}

	rdns, err := splitRDNs(s)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := len(rdns) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(rdns[i])
	}
	return b.String(), nil
}

// FromDER converts a DER-encoded X.501 name, as found in the TLS
// certificate_authorities advertisement, into the canonical slash form.
// The DER sequence is already ordered most-general first, so no
// reversal is needed.
func FromDER(der []byte) (string, error) {
	var seq pkix.RDNSequence
	rest, err := asn1.Unmarshal(der, &seq)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDER, err)
	}
	if len(rest) != 0 {
		return "", fmt.Errorf("%w: %d bytes of trailing data", ErrInvalidDER, len(rest))
	}
	if len(seq) == 0 {
		return "", ErrEmptyName
	}

	var b strings.Builder
	for _, rdn := range seq {
		b.WriteByte('/')
		for i, atv := range rdn {
			if i > 0 {
				// Multi-valued RDNs keep the RFC 2253 "+" join.
				b.WriteByte('+')
			}
			b.WriteString(attributeName(atv.Type))
			b.WriteByte('=')
			b.WriteString(fmt.Sprint(atv.Value))
		}
	}
	return b.String(), nil
}

// attributeName resolves an attribute type OID to its short name,
// falling back to the dotted representation for unknown types.
func attributeName(oid asn1.ObjectIdentifier) string {
	if name, ok := attributeNames[oid.String()]; ok {
		return name
	}
	return oid.String()
}

// splitRDNs splits an RFC 2253 name on unescaped commas. Escape
// sequences are preserved verbatim so that values containing commas
// keep a stable rendering, and the optional space after each separator
// is dropped. Every component must have an ATTR=value shape.
func splitRDNs(s string) ([]string, error) {
	var rdns []string
	var cur strings.Builder
	escaped := false

	flush := func() error {
		rdn := strings.TrimSpace(cur.String())
		if err := checkRDN(rdn, s); err != nil {
			return err
		}
		rdns = append(rdns, rdn)
		cur.Reset()
		return nil
	}

	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			cur.WriteRune(r)
			escaped = true
		case r == ',':
			if err := flush(); err != nil {
				return nil, err
			}
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		return nil, fmt.Errorf("%w: %q ends with a dangling escape", ErrMalformedRDN, s)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return rdns, nil
}

// checkRDN validates a single ATTR=value component (multi-valued RDNs
// joined with "+" are accepted as-is).
func checkRDN(rdn, full string) error {
	eq := strings.IndexByte(rdn, '=')
	if eq < 1 || eq == len(rdn)-1 {
		return fmt.Errorf("%w: %q in %q", ErrMalformedRDN, rdn, full)
	}
	return nil
}
