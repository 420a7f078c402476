// core/motif/locate.go
package motif

import (
	"fmt"
	"regexp"
)

// Place enumerates every candidate insertion of m on seq. Components
// must carry sequence signatures; consecutive components are separated
// by at least 5 nucleotides (the minimum hairpin distance). Placements
// are found by a left-to-right greedy recursion: for each match of the
// first signature, the remaining components are placed on the suffix
// starting 5 positions past the match.
func (m *Motif) Place(seq string) ([]Motif, error) {
	patterns := make([]*regexp.Regexp, len(m.Components))
	for i, c := range m.Components {
		if c.Seq == "" {
			return nil, fmt.Errorf("motif %s: component %d has no sequence signature", m.Identifier(), i)
		}
		re, err := regexp.Compile(c.Seq)
		if err != nil {
			return nil, fmt.Errorf("motif %s: signature %q does not compile: %w", m.Identifier(), c.Seq, err)
		}
		patterns[i] = re
	}
	placements := findNextOnes(seq, 0, patterns)
	sites := make([]Motif, 0, len(placements))
	for _, comps := range placements {
		for i := range comps {
			comps[i].Seq = m.Components[i].Seq
		}
		sites = append(sites, m.withComponents(comps))
	}
	return sites, nil
}

// findNextOnes returns every placement of the ordered patterns on seq,
// with offset translating local match positions to RNA coordinates.
func findNextOnes(seq string, offset int, patterns []*regexp.Regexp) [][]Component {
	var results [][]Component
	matches := patterns[0].FindAllStringIndex(seq, -1)
	if len(patterns) > 1 {
		for _, loc := range matches {
			start := loc[0] + offset
			end := start + (loc[1] - loc[0]) - 1
			cut := end - offset + 5
			if cut >= len(seq) { // no room left for the next components
				continue
			}
			rest := findNextOnes(seq[cut:], end+5, patterns[1:])
			if len(rest) == 0 {
				continue
			}
			for _, tail := range rest {
				comps := make([]Component, 0, 1+len(tail))
				comps = append(comps, Component{Start: start, End: end})
				comps = append(comps, tail...)
				results = append(results, comps)
			}
		}
		return results
	}
	for _, loc := range matches {
		start := loc[0] + offset
		end := start + (loc[1] - loc[0]) - 1
		results = append(results, []Component{{Start: start, End: end}})
	}
	return results
}
