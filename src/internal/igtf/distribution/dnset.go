// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package distribution

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/internal/igtf/dn"
)

// ParseDNList decodes a DN list document: one DN per line, blank lines
// and lines starting with "#" ignored, every entry normalized to the
// canonical slash form. A line that fails to normalize is a
// data-integrity error, not something to skip silently.
func ParseDNList(doc []byte) (dn.Set, error) {
	set := make(dn.Set)

	scanner := bufio.NewScanner(bytes.NewReader(doc))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		canonical, err := dn.Normalize(line)
		if err != nil {
			return nil, fmt.Errorf("distribution: line %d: %w", lineNo, err)
		}
		set.Add(canonical)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("distribution: reading DN list: %w", err)
	}
	return set, nil
}
