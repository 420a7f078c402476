// core/motif/load.go
package motif

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"
)

// LoadCatalog reads one catalog file and returns its motifs. The format
// follows the extension: .rin for Carnaval files, .desc for Rna3Dmotif
// files, anything else is CSV with one motif per line. Motifs that fail
// validation are skipped with a warning; a file yielding no motifs at
// all is an error.
func LoadCatalog(path string, warn func(string)) ([]Motif, error) {
	if warn == nil {
		warn = func(string) {}
	}
	fh, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	base := strings.TrimSuffix(filepath.Base(path), ".gz")
	ext := strings.ToLower(filepath.Ext(base))
	id := strings.TrimSuffix(base, filepath.Ext(base))

	var out []Motif
	switch ext {
	case ".rin":
		m, err := ParseRIN(fh, digitsOf(id), false)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if err := m.Validate(); err != nil {
			warn(err.Error())
			return nil, fmt.Errorf("%s: motif rejected", path)
		}
		out = append(out, *m)
	case ".desc":
		m, err := ParseDESC(fh, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if err := m.Validate(); err != nil {
			warn(err.Error())
			return nil, fmt.Errorf("%s: motif rejected", path)
		}
		out = append(out, *m)
	default:
		sc := bufio.NewScanner(fh)
		ln := 0
		for sc.Scan() {
			ln++
			line := strings.TrimSpace(sc.Text())
			if line == "" || line[0] == '#' {
				continue
			}
			m, err := ParseCSVLine(line)
			if err != nil {
				warn(fmt.Sprintf("%s:%d: %v (line skipped)", path, ln, err))
				continue
			}
			if err := m.Validate(); err != nil {
				warn(fmt.Sprintf("%s:%d: %v (motif skipped)", path, ln, err))
				continue
			}
			out = append(out, *m)
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: no usable motifs", path)
	}
	return out, nil
}

// digitsOf keeps the digit run of a RIN file name, so "motif17" → "17".
func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return s
	}
	return b.String()
}
