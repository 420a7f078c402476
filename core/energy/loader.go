// core/energy/loader.go
package energy

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/pgzip"
	"github.com/snksoft/crc"
)

// The parameter stream is a whitespace-separated list of integers in
// 0.01 kcal/mol, in a fixed order: stacks, hairpin, bulge, interior,
// asymmetry, mismatch tables, dangles, multiloop, AT penalty, 1x1, 2x2,
// 2x1, poly-C, pseudoknot, intermolecular, triloops, tetraloops.
// The first line is "# crc32 <checksum>" over the remaining bytes.

// Load reads a packed parameter stream from path. Gzipped streams are
// detected by magic bytes or a .gz suffix.
func Load(path string) (*Params, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	var r io.Reader = fh
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		zr, err := pgzip.NewReader(fh)
		if err != nil {
			return nil, fmt.Errorf("params %s: %w", path, err)
		}
		defer func() { _ = zr.Close() }()
		r = zr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("params %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a parameter stream, verifying its checksum header.
func Parse(data []byte) (*Params, error) {
	nl := bytes.IndexByte(data, '\n')
	if nl < 0 {
		return nil, fmt.Errorf("missing checksum header")
	}
	header := strings.Fields(string(data[:nl]))
	if len(header) != 3 || header[0] != "#" || header[1] != "crc32" {
		return nil, fmt.Errorf("bad checksum header %q", string(data[:nl]))
	}
	want, err := strconv.ParseUint(header[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad checksum header %q", string(data[:nl]))
	}
	payload := data[nl+1:]
	if got := crc.CalculateCRC(crc.CRC32, payload); got != want {
		return nil, fmt.Errorf("checksum mismatch: stream has %d, payload is %d", want, got)
	}

	st := &intStream{sc: bufio.NewScanner(bytes.NewReader(payload))}
	st.sc.Split(bufio.ScanWords)

	p := &Params{}
	next := func() float64 { return float64(st.next()) / 100.0 }

	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			p.Stack37[i][j] = next()
		}
	}
	for i := 0; i < 30; i++ {
		p.Hairpin37[i] = next()
	}
	for i := 0; i < 30; i++ {
		p.Bulge37[i] = next()
	}
	for i := 0; i < 30; i++ {
		p.Interior37[i] = next()
	}
	for i := 0; i < 4; i++ {
		p.AsymmetryPenalty[i] = next()
	}
	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			for k := 0; k < 6; k++ {
				p.MismatchHairpin37[a][b][k] = next()
			}
		}
	}
	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			for k := 0; k < 6; k++ {
				p.MismatchInterior37[a][b][k] = next()
			}
		}
	}
	for i := 0; i < 6; i++ {
		for b := 0; b < 4; b++ {
			p.Dangle5_37[i][b] = next()
		}
	}
	for i := 0; i < 6; i++ {
		for b := 0; b < 4; b++ {
			p.Dangle3_37[i][b] = next()
		}
	}
	p.A1 = next()
	p.A2 = next()
	p.A3 = next()
	p.ATPenalty = next()
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			for k := 0; k < 4; k++ {
				for l := 0; l < 4; l++ {
					p.Int11_37[i][j][k][l] = next()
				}
			}
		}
	}
	// 2x2 interior loops: the on-disk order scrambles the base axes the
	// same way the original loader does.
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			for m := 0; m < 4; m++ {
				for nn := 0; nn < 4; nn++ {
					for k := 0; k < 4; k++ {
						for l := 0; l < 4; l++ {
							p.Int22_37[i][j][m][l][nn][k] = next()
						}
					}
				}
			}
		}
	}
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			for m := 0; m < 4; m++ {
				for k := 0; k < 4; k++ {
					for l := 0; l < 4; l++ {
						p.Int21_37[i][k][m][j][l] = next()
					}
				}
			}
		}
	}
	p.PolyCPenalty = next()
	p.PolyCSlope = next()
	p.PolyCInt = next()
	p.PkPenalty = next()
	p.PkPairedPenalty = next()
	p.PkUnpairedPenalty = next()
	p.PkMultiloopPenalty = next()
	p.PkPkPenalty = next()
	p.IntermolecularInitiation = next()

	// Special loops: a count, then per-loop base codes (A=1..U=4) and the
	// bonus value.
	ntri := st.next()
	for t := 0; t < ntri; t++ {
		var idx [5]int
		for k := range idx {
			idx[k] = st.next() - 1
		}
		v := float64(st.next()) / 100.0
		if ok := indexOK(idx[:]); ok {
			p.Triloop37[idx[0]][idx[1]][idx[2]][idx[3]][idx[4]] = v
		}
	}
	ntet := st.next()
	for t := 0; t < ntet; t++ {
		var idx [6]int
		for k := range idx {
			idx[k] = st.next() - 1
		}
		v := float64(st.next()) / 100.0
		if ok := indexOK(idx[:]); ok {
			p.Tloop37[idx[0]][idx[1]][idx[2]][idx[3]][idx[4]][idx[5]] = v
		}
	}
	if st.err != nil {
		return nil, st.err
	}

	// Constants the stream does not carry.
	p.SaltCorrection = 0.0
	p.LoopGreater30 = 1.079 // 1.75 * RT
	p.HairpinGGG = 0.0
	p.MaxAsymmetry = 3.0
	p.PkBandPenalty = 0.0
	p.PkStackSpan = 1.0
	p.PkInteriorSpan = 1.0
	p.MultiloopPenaltyPk = p.A1
	p.MultiloopPairedPenaltyPk = p.A2
	p.MultiloopUnpairedPenaltyPk = p.A3
	return p, nil
}

func indexOK(idx []int) bool {
	for _, v := range idx {
		if v < 0 || v > 3 {
			return false
		}
	}
	return true
}

type intStream struct {
	sc  *bufio.Scanner
	err error
}

func (s *intStream) next() int {
	if s.err != nil {
		return 0
	}
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			s.err = err
		} else {
			s.err = io.ErrUnexpectedEOF
		}
		return 0
	}
	v, err := strconv.Atoi(s.sc.Text())
	if err != nil {
		s.err = fmt.Errorf("bad integer %q in parameter stream", s.sc.Text())
		return 0
	}
	return v
}
