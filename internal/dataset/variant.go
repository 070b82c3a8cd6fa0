package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// NoiseLevel tags a member of a noise family: the same images released
// with different amounts of added Gaussian noise.
type NoiseLevel int

const (
	N0  NoiseLevel = 0
	N10 NoiseLevel = 10
	N20 NoiseLevel = 20
)

// NoiseLevels lists every level in ascending order.
var NoiseLevels = []NoiseLevel{N0, N10, N20}

func (n NoiseLevel) String() string { return "n" + strconv.Itoa(int(n)) }

// ParseNoiseLevel accepts "n10", "N10" or "10".
func ParseNoiseLevel(s string) (NoiseLevel, error) {
	v, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "n"))
	if err == nil {
		for _, n := range NoiseLevels {
			if int(n) == v {
				return n, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown noise level %q (want one of n0, n10, n20)", s)
}

// Variant is the part of an entry that differs between family members.
type Variant struct {
	URL      string
	MD5      string
	FileName string
}

// VariantFunc looks up the variant for a noise level.
type VariantFunc func(NoiseLevel) Variant

// Family builds the entry for one noise level from a shared template. The
// entry is named <base>_<level>.
func Family(base string, template Spec, lookup VariantFunc, level NoiseLevel) (*Entry, error) {
	v := lookup(level)
	spec := template
	spec.Name = base + "_" + level.String()
	spec.URL = v.URL
	spec.MD5 = v.MD5
	spec.FileName = v.FileName
	return New(spec)
}
