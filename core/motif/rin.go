// core/motif/rin.go
package motif

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseRIN decodes one Carnaval RIN file: a links section after the
// header_link line, then a components section after the header_comp
// line. Link records are read by splitting the whole links line on ';'.
func ParseRIN(r io.Reader, id string, reversed bool) (*Motif, error) {
	sc := bufio.NewScanner(r)
	m := &Motif{
		CarnavalID: id,
		Source:     Carnaval,
		Reversed:   reversed,
		scoreText:  "0",
	}

	if !sc.Scan() { // header_link
		return nil, fmt.Errorf("RIN: missing header_link line")
	}
	if !sc.Scan() {
		return nil, fmt.Errorf("RIN: missing links line")
	}
	for _, rec := range strings.Split(sc.Text(), ";") {
		rec = strings.TrimSpace(rec)
		if rec == "" {
			continue
		}
		f := strings.Split(rec, ",")
		if len(f) != 3 {
			return nil, fmt.Errorf("RIN: bad link record %q", rec)
		}
		a, err := strconv.Atoi(strings.TrimSpace(f[0]))
		if err != nil {
			return nil, fmt.Errorf("RIN: bad link nucleotide %q", f[0])
		}
		b, err := strconv.Atoi(strings.TrimSpace(f[1]))
		if err != nil {
			return nil, fmt.Errorf("RIN: bad link nucleotide %q", f[1])
		}
		m.Links = append(m.Links, Link{A: a, B: b, LongRange: strings.TrimSpace(f[2]) == "True"})
	}

	if !sc.Scan() { // header_comp
		return nil, fmt.Errorf("RIN: missing header_comp line")
	}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			break
		}
		// start,end;k;seq
		parts := strings.SplitN(line, ";", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("RIN: bad component line %q", line)
		}
		pos := strings.Split(parts[0], ",")
		if len(pos) != 2 {
			return nil, fmt.Errorf("RIN: bad component interval %q", parts[0])
		}
		s, err := strconv.Atoi(strings.TrimSpace(pos[0]))
		if err != nil {
			return nil, fmt.Errorf("RIN: bad component start %q", pos[0])
		}
		e, err := strconv.Atoi(strings.TrimSpace(pos[1]))
		if err != nil {
			return nil, fmt.Errorf("RIN: bad component end %q", pos[1])
		}
		if _, err := strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
			return nil, fmt.Errorf("RIN: bad component length %q", parts[1])
		}
		m.Components = append(m.Components, Component{Start: s, End: e, Seq: parts[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate rejects motifs that cannot be inserted meaningfully: shorter
// than 5 nucleotides overall, no base-pair annotations, or a non-ACGU
// base in a sequence signature.
func (m *Motif) Validate() error {
	length := 0
	for _, c := range m.Components {
		if c.Start >= 0 {
			length += c.K()
		} else {
			length += minMatchLen(c.Seq)
		}
		for i := 0; i < len(c.Seq); i++ {
			ch := c.Seq[i]
			if ch >= 'A' && ch <= 'Z' && !strings.ContainsRune("ACGU", rune(ch)) {
				return fmt.Errorf("motif %s: non-ACGU base %q in sequence signature", m.Identifier(), ch)
			}
		}
	}
	if length < 5 {
		return fmt.Errorf("motif %s: total length %d is below 5", m.Identifier(), length)
	}
	if m.Source == Carnaval && len(m.Links) == 0 {
		return fmt.Errorf("motif %s: no base-pair annotations", m.Identifier())
	}
	return nil
}

// minMatchLen is the shortest RNA stretch a signature fragment can
// cover: one position per literal or per single-position wildcard.
func minMatchLen(seq string) int {
	n := 0
	for i := 0; i < len(seq); i++ {
		switch c := seq[i]; {
		case c >= 'A' && c <= 'Z', c == '.':
			n++
		}
	}
	return n
}
