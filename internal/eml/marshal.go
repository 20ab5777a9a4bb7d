// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package eml

import (
	"crypto/sha256"
	"encoding/xml"
	"fmt"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Marshal serializes doc to an EML-NL XML document and returns both the
// serialized bytes and their SHA-256 content hash, hex-encoded — the
// hash that gets embedded in the companion PDF for cross-verification.
func Marshal(doc Results510b) (content []byte, sha256Hex string, err error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("marshal eml 510b document: %w", err)
	}
	content = append([]byte(xmlHeader), body...)
	sum := sha256.Sum256(content)
	return content, fmt.Sprintf("%x", sum), nil
}
