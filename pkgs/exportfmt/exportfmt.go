// Package exportfmt serializes a solution snapshot and run statistics for
// external consumption: CBOR for a compact binary form (fxamacker/cbor/v2)
// and YAML for a human-readable one (gopkg.in/yaml.v3).
package exportfmt

import (
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/fastsatsolver/fss/pkgs/problem"
	"github.com/fastsatsolver/fss/pkgs/solver"
)

// Snapshot is the exported view of a solver run: the variable names (so a
// consumer without the original input file can still make sense of the
// bit vectors), every solution found so far, and the current statistics.
type Snapshot struct {
	VarNames  []string     `cbor:"vars" yaml:"vars"`
	Solutions [][]bool     `cbor:"solutions" yaml:"solutions"`
	Stats     solver.Stats `cbor:"stats" yaml:"stats"`
}

// BuildSnapshot reads p and sol into a Snapshot ready for encoding.
func BuildSnapshot(p *problem.Problem, sol *solver.SolutionSet, stats solver.Stats) Snapshot {
	names := make([]string, p.VarCount())
	for i := range names {
		names[i] = p.VarName(i)
	}
	items := make([][]bool, sol.Len())
	for i := 0; i < sol.Len(); i++ {
		a := sol.At(i)
		bits := make([]bool, a.Length())
		for j := range bits {
			bits[j] = a.Bit(j)
		}
		items[i] = bits
	}
	return Snapshot{VarNames: names, Solutions: items, Stats: stats}
}

// EncodeCBOR returns the compact binary encoding of s.
func EncodeCBOR(s Snapshot) ([]byte, error) {
	return cbor.Marshal(s)
}

// DecodeCBOR parses a CBOR-encoded Snapshot.
func DecodeCBOR(data []byte) (Snapshot, error) {
	var s Snapshot
	err := cbor.Unmarshal(data, &s)
	return s, err
}

// EncodeYAML returns the human-readable encoding of s.
func EncodeYAML(s Snapshot) ([]byte, error) {
	return yaml.Marshal(s)
}

// DecodeYAML parses a YAML-encoded Snapshot.
func DecodeYAML(data []byte) (Snapshot, error) {
	var s Snapshot
	err := yaml.Unmarshal(data, &s)
	return s, err
}
