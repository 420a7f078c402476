// core/motif/desc.go
package motif

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// descBase is one "pos_nt" entry of a DESC Bases: line.
type descBase struct {
	pos int
	nt  byte
}

// parseDESCBases reads the two header lines of a DESC file and returns
// the base list. The trailing entry of the Bases: line is a terminator
// and is dropped, as in the reference decoder.
func parseDESCBases(sc *bufio.Scanner) ([]descBase, error) {
	if !sc.Scan() { // "id: number"
		return nil, fmt.Errorf("DESC: missing id line")
	}
	if !sc.Scan() {
		return nil, fmt.Errorf("DESC: missing Bases line")
	}
	line := sc.Text()
	if i := strings.Index(line, ":"); i >= 0 {
		line = line[i+1:]
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, fmt.Errorf("DESC: empty Bases line")
	}
	fields = fields[:len(fields)-1]
	bases := make([]descBase, 0, len(fields))
	for _, f := range fields {
		us := strings.Index(f, "_")
		if us < 0 || us+1 >= len(f) {
			return nil, fmt.Errorf("DESC: bad base entry %q", f)
		}
		pos, err := strconv.Atoi(f[:us])
		if err != nil {
			return nil, fmt.Errorf("DESC: bad base position %q", f)
		}
		bases = append(bases, descBase{pos: pos, nt: f[us+1]})
	}
	return bases, nil
}

// ValidateDESC applies the DESC validity rules: every base must be
// A/C/G/U at a positive position, C/C interactions must join adjacent
// positions, and +/+ or −/− helices must span at least 4 nucleotides.
func ValidateDESC(r io.Reader) error {
	sc := bufio.NewScanner(r)
	bases, err := parseDESCBases(sc)
	if err != nil {
		return err
	}
	for _, b := range bases {
		if !strings.ContainsRune("ACGU", rune(b.nt)) {
			return fmt.Errorf("DESC: non-ACGU base %q", b.nt)
		}
		if b.pos <= 0 {
			return fmt.Errorf("DESC: non-positive base position %d", b.pos)
		}
	}
	for sc.Scan() {
		line := sc.Text()
		slash := strings.Index(line, "/")
		if slash < 1 || slash+1 >= len(line) {
			continue
		}
		interaction := line[slash-1 : slash+2]
		p1, p2, err := descInteractionPositions(line, slash)
		if err != nil {
			return err
		}
		if p2-p1 != 1 && interaction == "C/C" {
			return fmt.Errorf("DESC: backbone link between non-adjacent positions %d and %d", p1, p2)
		}
		if p2-p1 < 4 && (interaction == "+/+" || interaction == "-/-") {
			return fmt.Errorf("DESC: helix of span %d is too short", p2-p1)
		}
	}
	return sc.Err()
}

func descInteractionPositions(line string, slash int) (int, int, error) {
	p1, err := descPosAfterParen(line[:slash])
	if err != nil {
		return 0, 0, err
	}
	p2, err := descPosAfterParen(line[slash+1:])
	if err != nil {
		return 0, 0, err
	}
	return p1, p2, nil
}

func descPosAfterParen(s string) (int, error) {
	i := strings.Index(s, "(")
	if i < 0 {
		return 0, fmt.Errorf("DESC: malformed interaction %q", s)
	}
	rest := strings.ReplaceAll(s[i+1:], " ", "")
	us := strings.Index(rest, "_")
	if us < 0 {
		return 0, fmt.Errorf("DESC: malformed interaction base %q", s)
	}
	return strconv.Atoi(rest[:us])
}

// descRegex builds the linear sequence signature: nucleotide literals
// separated by dot runs for gaps of 2–5 and by ".{5,}" beyond.
func descRegex(bases []descBase) string {
	var b strings.Builder
	last := bases[0].pos
	for _, e := range bases {
		switch gap := e.pos - last; {
		case gap > 5:
			b.WriteString(".{5,}")
		case gap == 2:
			b.WriteString(".")
		case gap == 3:
			b.WriteString("..")
		case gap == 4:
			b.WriteString("...")
		case gap == 5:
			b.WriteString("....")
		}
		b.WriteByte(e.nt)
		last = e.pos
	}
	return b.String()
}

// DESCInsertable reports whether the motif's sequence signature occurs
// on the RNA.
func DESCInsertable(r io.Reader, rnaSeq string) (bool, error) {
	sc := bufio.NewScanner(r)
	bases, err := parseDESCBases(sc)
	if err != nil {
		return false, err
	}
	re, err := regexp.Compile(descRegex(bases))
	if err != nil {
		return false, fmt.Errorf("DESC: signature does not compile: %w", err)
	}
	return re.MatchString(rnaSeq), nil
}

// ParseDESC decodes a DESC file into a placeable motif: components are
// the runs between gaps larger than 5 nucleotides, each carrying its
// signature fragment. Positions stay unset until the locator places the
// motif on a sequence. The score follows the component-count objective
// of RNA MoIP.
func ParseDESC(r io.Reader, id string) (*Motif, error) {
	sc := bufio.NewScanner(r)
	bases, err := parseDESCBases(sc)
	if err != nil {
		return nil, err
	}
	m := &Motif{PDBID: id, Source: RNA3DMotif}
	var frag strings.Builder
	last := bases[0].pos
	flush := func() {
		if frag.Len() > 0 {
			m.Components = append(m.Components, Component{Start: -1, End: -1, Seq: frag.String()})
			frag.Reset()
		}
	}
	for _, e := range bases {
		switch gap := e.pos - last; {
		case gap > 5:
			flush()
		case gap == 2:
			frag.WriteString(".")
		case gap == 3:
			frag.WriteString("..")
		case gap == 4:
			frag.WriteString("...")
		case gap == 5:
			frag.WriteString("....")
		}
		frag.WriteByte(e.nt)
		last = e.pos
	}
	flush()
	nc := float64(len(m.Components))
	m.Score = nc * nc
	m.scoreText = strconv.FormatFloat(m.Score, 'g', -1, 64)
	return m, nil
}
