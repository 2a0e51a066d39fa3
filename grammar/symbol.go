package grammar

import (
	"encoding/binary"
	"fmt"
)

// SymbolID is a handle of a symbol registered in a grammar. IDs are dense and allocated in
// registration order from 0.
type SymbolID int

// SymbolIDNil never identifies a symbol. A target string uses it for a token the grammar doesn't know.
const SymbolIDNil = SymbolID(-1)

func (id SymbolID) Int() int {
	return int(id)
}

func (id SymbolID) IsNil() bool {
	return id < 0
}

func (id SymbolID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("s%v", int(id))
}

func (id SymbolID) byte() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(int64(id)))
	return b
}

type symbolTable struct {
	text2Sym map[string]SymbolID
	sym2Text []string
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		text2Sym: map[string]SymbolID{},
	}
}

// registerOrGet returns the symbol having the text. The second return value is true when the symbol
// was registered by this call.
func (t *symbolTable) registerOrGet(text string) (SymbolID, bool) {
	if sym, ok := t.text2Sym[text]; ok {
		return sym, false
	}
	sym := SymbolID(len(t.sym2Text))
	t.text2Sym[text] = sym
	t.sym2Text = append(t.sym2Text, text)
	return sym, true
}

func (t *symbolTable) toSymbol(text string) (SymbolID, bool) {
	sym, ok := t.text2Sym[text]
	return sym, ok
}

func (t *symbolTable) toText(sym SymbolID) (string, bool) {
	if !t.contains(sym) {
		return "", false
	}
	return t.sym2Text[sym], true
}

func (t *symbolTable) contains(sym SymbolID) bool {
	return sym >= 0 && int(sym) < len(t.sym2Text)
}

func (t *symbolTable) count() int {
	return len(t.sym2Text)
}
