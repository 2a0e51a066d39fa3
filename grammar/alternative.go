package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

type AlternativeID [32]byte

func (id AlternativeID) String() string {
	return hex.EncodeToString(id[:])
}

func genAlternativeID(lhs SymbolID, rhs []SymbolID) AlternativeID {
	seq := lhs.byte()
	for _, sym := range rhs {
		seq = append(seq, sym.byte()...)
	}
	return AlternativeID(sha256.Sum256(seq))
}

// Alternative is one rewrite option of a nonterminal. An alternative never has an empty right-hand side.
type Alternative struct {
	id  AlternativeID
	num int
	lhs SymbolID
	rhs []SymbolID
}

func newAlternative(lhs SymbolID, rhs []SymbolID) (*Alternative, error) {
	if lhs.IsNil() {
		return nil, fmt.Errorf("LHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
	}
	if len(rhs) == 0 {
		return nil, ErrEmptyAlternative
	}
	for _, sym := range rhs {
		if sym.IsNil() {
			return nil, fmt.Errorf("a symbol of RHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
		}
	}

	syms := make([]SymbolID, len(rhs))
	copy(syms, rhs)
	return &Alternative{
		id:  genAlternativeID(lhs, syms),
		lhs: lhs,
		rhs: syms,
	}, nil
}

// ID identifies the alternative by its content. Two alternatives of the same LHS with the same
// symbols share an ID.
func (a *Alternative) ID() AlternativeID {
	return a.id
}

// Num is the index of the alternative in the alternative list of its LHS.
func (a *Alternative) Num() int {
	return a.num
}

func (a *Alternative) LHS() SymbolID {
	return a.lhs
}

// Symbols returns a copy of the right-hand side.
func (a *Alternative) Symbols() []SymbolID {
	syms := make([]SymbolID, len(a.rhs))
	copy(syms, a.rhs)
	return syms
}

// AppendSymbols appends the right-hand side to dst and returns the extended slice.
func (a *Alternative) AppendSymbols(dst []SymbolID) []SymbolID {
	return append(dst, a.rhs...)
}

// Symbol returns the i-th symbol of the right-hand side. The second return value is false when i is out
// of range.
func (a *Alternative) Symbol(i int) (SymbolID, bool) {
	if i < 0 || i >= len(a.rhs) {
		return SymbolIDNil, false
	}
	return a.rhs[i], true
}

func (a *Alternative) Len() int {
	return len(a.rhs)
}

func (a *Alternative) equals(b *Alternative) bool {
	return a.id == b.id
}
