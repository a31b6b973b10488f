package scanner

import (
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// keywords is the fixed reserved-identifier table. Order only matters for
// fuzzy-suggestion ranking below.
var keywords = []string{"NOT", "AND", "OR", "XOR", "FALSE", "TRUE"}

// VariableTable is a bijection between variable names and dense indices
// 0..n-1, in order of first appearance. Once assigned, an index never moves.
type VariableTable struct {
	names  []string
	byName map[string]int
	// warnings accumulates non-fatal "did you mean <keyword>?" hints for
	// newly interned names that are near-misses of a reserved keyword.
	// These never block compilation; a misspelled keyword is, by the
	// grammar, simply a new variable.
	warnings []string
}

// NewVariableTable returns an empty table.
func NewVariableTable() *VariableTable {
	return &VariableTable{byName: make(map[string]int)}
}

// Intern returns the dense index for name, assigning a new one (at the
// current length) the first time name is seen.
func (vt *VariableTable) Intern(name string) int {
	if id, ok := vt.byName[name]; ok {
		return id
	}
	id := len(vt.names)
	vt.names = append(vt.names, name)
	vt.byName[name] = id
	vt.checkKeywordTypo(name)
	return id
}

// checkKeywordTypo attaches a Warnings() entry when name is a reserved
// keyword with exactly one character left out. fuzzy.RankMatch only ranks
// a name whose characters all appear, in order, inside the keyword (-1
// otherwise), and then scores it by edit distance; a name with an extra
// or substituted character is therefore never flagged.
func (vt *VariableTable) checkKeywordTypo(name string) {
	if len(name) < 2 {
		return
	}
	best := ""
	bestRank := -1
	for _, kw := range keywords {
		rank := fuzzy.RankMatch(name, kw)
		if rank < 0 {
			continue
		}
		if bestRank < 0 || rank < bestRank {
			bestRank = rank
			best = kw
		}
	}
	if bestRank == 1 {
		vt.warnings = append(vt.warnings,
			"variable '"+name+"' is one edit away from keyword "+best+"; did you mean "+best+"?")
	}
}

// Warnings returns accumulated non-fatal diagnostic hints, in the order
// they were produced.
func (vt *VariableTable) Warnings() []string {
	return vt.warnings
}

// Name returns the variable name at index i. Panics if i is out of range;
// callers only ever pass indices obtained from this same table.
func (vt *VariableTable) Name(i int) string {
	return vt.names[i]
}

// Count returns the number of distinct variables interned so far.
func (vt *VariableTable) Count() int {
	return len(vt.names)
}

// Lookup returns the index for name and whether it has been interned.
func (vt *VariableTable) Lookup(name string) (int, bool) {
	id, ok := vt.byName[name]
	return id, ok
}
