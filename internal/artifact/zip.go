// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package artifact

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
)

// Zip bundles named byte blobs into a single zip archive, store-only
// (no compression) since the members are already-final PDF and XML
// artifacts. Entries are written in sorted name order so the archive is
// byte-reproducible given the same inputs.
func Zip(files map[string][]byte) ([]byte, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range names {
		f, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
		if err != nil {
			return nil, fmt.Errorf("artifact: create zip entry %q: %w", name, err)
		}
		if _, err := f.Write(files[name]); err != nil {
			return nil, fmt.Errorf("artifact: write zip entry %q: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("artifact: close zip archive: %w", err)
	}
	return buf.Bytes(), nil
}
