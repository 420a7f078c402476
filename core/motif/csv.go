// core/motif/csv.go
package motif

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCSVLine decodes one catalog line. Lines holding a "True"/"False"
// token were written by jar3d (RNA Motif Atlas); everything else is a
// BayesPairing line. Component intervals on disk are 1-based inclusive
// and become 0-based in memory.
func ParseCSVLine(line string) (*Motif, error) {
	tokens := strings.Split(line, ",")
	if strings.Contains(line, "True") || strings.Contains(line, "False") {
		return parseJar3d(tokens)
	}
	return parseBayesPairing(tokens)
}

func parseJar3d(tokens []string) (*Motif, error) {
	if len(tokens) < 6 {
		return nil, fmt.Errorf("jar3d line needs at least 6 fields, has %d", len(tokens))
	}
	m := &Motif{
		AtlasID:   tokens[0],
		Reversed:  tokens[1] == "True",
		Model:     true,
		fromJar3d: true,
		Source:    RNAMotifAtlas,
	}
	if err := m.setScore(tokens[2]); err != nil {
		return nil, err
	}
	c0, err := parseInterval(tokens[3], tokens[4])
	if err != nil {
		return nil, err
	}
	m.Components = append(m.Components, c0)
	if tokens[5] != "-" {
		if len(tokens) < 7 {
			return nil, fmt.Errorf("jar3d line truncated after second component start")
		}
		c1, err := parseInterval(tokens[5], tokens[6])
		if err != nil {
			return nil, err
		}
		m.Components = append(m.Components, c1)
	}
	return m, nil
}

func parseBayesPairing(tokens []string) (*Motif, error) {
	if len(tokens) < 4 {
		return nil, fmt.Errorf("BayesPairing line needs at least 4 fields, has %d", len(tokens))
	}
	m := &Motif{}
	if strings.Contains(tokens[0], "rna3dmotif") {
		m.PDBID = tokens[0]
		m.Source = RNA3DMotif
	} else {
		m.AtlasID = tokens[0]
		m.Model = true
		m.Source = RNAMotifAtlas
	}
	if err := m.setScore(tokens[1]); err != nil {
		return nil, err
	}
	// The upstream decoder stops at len−1 and silently skips inverted
	// intervals; both quirks are part of the format now.
	for i := 2; i < len(tokens)-1; i += 2 {
		s, err := strconv.Atoi(strings.TrimSpace(tokens[i]))
		if err != nil {
			return nil, fmt.Errorf("bad component start %q", tokens[i])
		}
		e, err := strconv.Atoi(strings.TrimSpace(tokens[i+1]))
		if err != nil {
			return nil, fmt.Errorf("bad component end %q", tokens[i+1])
		}
		if s < e {
			m.Components = append(m.Components, Component{Start: s - 1, End: e - 1})
		}
	}
	if len(m.Components) == 0 {
		return nil, fmt.Errorf("line has no usable components")
	}
	return m, nil
}

func (m *Motif) setScore(tok string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil {
		return fmt.Errorf("bad score %q", tok)
	}
	m.Score = v
	m.scoreText = strings.TrimSpace(tok)
	return nil
}

func parseInterval(a, b string) (Component, error) {
	s, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return Component{}, fmt.Errorf("bad component start %q", a)
	}
	e, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return Component{}, fmt.Errorf("bad component end %q", b)
	}
	return Component{Start: s - 1, End: e - 1}, nil
}

// CSVLine re-serializes the motif in its catalog encoding. Parsing a
// well-formed line and serializing it again reproduces the input up to
// whitespace.
func (m *Motif) CSVLine() string {
	var b strings.Builder
	if m.fromJar3d && m.jar3dShaped() {
		b.WriteString(m.AtlasID)
		if m.Reversed {
			b.WriteString(",True,")
		} else {
			b.WriteString(",False,")
		}
		b.WriteString(m.scoreText)
		fmt.Fprintf(&b, ",%d,%d", m.Components[0].Start+1, m.Components[0].End+1)
		if len(m.Components) == 2 {
			fmt.Fprintf(&b, ",%d,%d", m.Components[1].Start+1, m.Components[1].End+1)
		} else {
			b.WriteString(",-")
		}
		return b.String()
	}
	b.WriteString(m.Identifier())
	b.WriteString(",")
	b.WriteString(m.scoreText)
	for _, c := range m.Components {
		fmt.Fprintf(&b, ",%d,%d", c.Start+1, c.End+1)
	}
	return b.String()
}

// jar3dShaped reports whether the motif fits the jar3d line layout
// (one or two components).
func (m *Motif) jar3dShaped() bool {
	return len(m.Components) == 1 || len(m.Components) == 2
}
