// core/energy/embed.go
package energy

import (
	_ "embed"
	"sync"
)

//go:embed rna1995.dat
var defaultStream []byte

var (
	defaultOnce   sync.Once
	defaultParams *Params
	defaultErr    error
)

// Default returns the embedded Serra & Turner 1995 parameter set. The
// table is decoded once and shared read-only afterwards.
func Default() (*Params, error) {
	defaultOnce.Do(func() {
		defaultParams, defaultErr = Parse(defaultStream)
	})
	return defaultParams, defaultErr
}
