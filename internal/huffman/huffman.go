// Package huffman assigns prefix-free codes to symbols from their frequencies.
//
// Codes are built bottom-up over a flat list of groups that is fully re-sorted
// after every merge. The resulting tie-break order differs from a heap-based
// construction, and the encoded header depends on it, so the merge order
// below must not change.
package huffman

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ziphuff/zmh/internal/freq"
	"github.com/ziphuff/zmh/internal/model"
)

var (
	// ErrNoSymbols indicates an empty frequency mapping.
	ErrNoSymbols = errors.New("huffman: no symbols")

	// ErrCodeTooLong indicates a code would exceed model.MaxCodeLength bits.
	ErrCodeTooLong = errors.New("huffman: code too long")
)

// group is a set of symbols sharing a subtree, with their combined frequency.
type group struct {
	members []int
	weight  uint64
}

// code is the running assignment of one symbol.
type code struct {
	value  uint64
	length int
}

// Assign builds the code table for f. Entries keep the first-seen order of f.
func Assign(f *freq.Frequencies) (*model.Table, error) {
	symbols := f.Symbols()
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}

	codes := make([]code, len(symbols))
	if len(symbols) == 1 {
		codes[0].length = 1
		return buildTable(f, symbols, codes)
	}

	groups := make([]group, len(symbols))
	for i, sym := range symbols {
		groups[i] = group{members: []int{i}, weight: f.Count(sym)}
	}
	sortGroups(groups)

	for len(groups) > 2 {
		zero, one := groups[0], groups[1]
		groups = groups[2:]

		if err := prepend(codes, zero, 0); err != nil {
			return nil, err
		}
		if err := prepend(codes, one, 1); err != nil {
			return nil, err
		}

		merged := group{
			members: make([]int, 0, len(zero.members)+len(one.members)),
			weight:  zero.weight + one.weight,
		}
		merged.members = append(merged.members, zero.members...)
		merged.members = append(merged.members, one.members...)

		groups = append(groups, merged)
		sortGroups(groups)
	}

	if err := prepend(codes, groups[0], 0); err != nil {
		return nil, err
	}
	if err := prepend(codes, groups[1], 1); err != nil {
		return nil, err
	}

	return buildTable(f, symbols, codes)
}

// sortGroups orders groups by ascending weight, keeping the current order on ties.
func sortGroups(groups []group) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].weight < groups[j].weight
	})
}

// prepend gives every member of g a new most-significant bit.
func prepend(codes []code, g group, bit uint64) error {
	for _, m := range g.members {
		c := &codes[m]
		if c.length >= model.MaxCodeLength {
			return fmt.Errorf("%w: more than %d bits", ErrCodeTooLong, model.MaxCodeLength)
		}
		c.value |= bit << uint(c.length)
		c.length++
	}
	return nil
}

func buildTable(f *freq.Frequencies, symbols []byte, codes []code) (*model.Table, error) {
	t := model.NewTable()
	for i, sym := range symbols {
		e := model.Entry{
			Symbol: sym,
			Code:   codes[i].value,
			Length: uint8(codes[i].length),
			Count:  f.Count(sym),
		}
		if err := t.Add(e); err != nil {
			return nil, err
		}
	}
	return t, nil
}
