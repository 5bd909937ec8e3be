package jack

// Kind classifies a declared name, it determines the name's scope and the
// segment its value lives in.
type Kind uint8

const (
	KindStatic Kind = iota
	KindField
	KindArgument
	KindLocal
	numKinds
)

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindField:
		return "field"
	case KindArgument:
		return "argument"
	case KindLocal:
		return "local"
	}
	return ""
}

// Segment returns the VM segment that holds names of this kind.
func (k Kind) Segment() Segment {
	switch k {
	case KindStatic:
		return SegStatic
	case KindField:
		return SegThis
	case KindArgument:
		return SegArgument
	case KindLocal:
		return SegLocal
	}
	panic("unknown symbol kind")
}

func (k Kind) isClassScope() bool {
	return k == KindStatic || k == KindField
}

// SubroutineKind is the flavour of a subroutine declaration.
type SubroutineKind uint8

const (
	Constructor SubroutineKind = iota
	Function
	Method
)

func (k SubroutineKind) String() string {
	switch k {
	case Constructor:
		return "constructor"
	case Function:
		return "function"
	case Method:
		return "method"
	}
	return ""
}

// Symbol holds the attributes of a declared name.
type Symbol struct {
	Name  string
	Type  string
	Kind  Kind
	Index int
}

// SymbolTable maps names to symbols in two nested scopes. The class scope lives
// for the whole class, the subroutine scope is cleared whenever a new subroutine
// starts and shadows the class scope.
type SymbolTable struct {
	className      string
	subroutineName string
	class          map[string]Symbol
	subroutine     map[string]Symbol
	counts         [numKinds]int
}

// NewSymbolTable creates an empty table for the class with the given name
func NewSymbolTable(className string) *SymbolTable {
	t := new(SymbolTable)
	t.className = className
	t.class = make(map[string]Symbol)
	t.subroutine = make(map[string]Symbol)
	return t
}

// ClassName returns the name of the class this table belongs to
func (t *SymbolTable) ClassName() string {
	return t.className
}

// SubroutineName returns the name given to the last StartSubroutine call
func (t *SymbolTable) SubroutineName() string {
	return t.subroutineName
}

// StartSubroutine clears the subroutine scope. Methods receive the object
// they are called on as argument 0, so "this" is defined up front.
func (t *SymbolTable) StartSubroutine(name string, kind SubroutineKind) {
	t.subroutineName = name
	t.subroutine = make(map[string]Symbol)
	t.counts[KindArgument] = 0
	t.counts[KindLocal] = 0
	if kind == Method {
		// the scope is empty, this can not collide
		_, _ = t.Define("this", t.className, KindArgument)
	}
}

// Define adds a new name to the scope of the given kind and assigns it the
// next free index for that kind.
func (t *SymbolTable) Define(name, typ string, kind Kind) (Symbol, error) {
	scope := t.scopeOf(kind)
	if _, exists := scope[name]; exists {
		return Symbol{}, ErrRedefinition
	}
	sym := Symbol{name, typ, kind, t.counts[kind]}
	scope[name] = sym
	t.counts[kind]++
	return sym, nil
}

// Resolve looks the name up in the subroutine scope first, then in the class
// scope.
func (t *SymbolTable) Resolve(name string) (Symbol, bool) {
	if sym, ok := t.subroutine[name]; ok {
		return sym, true
	}
	sym, ok := t.class[name]
	return sym, ok
}

// Count returns the number of names of the given kind in the current scopes
func (t *SymbolTable) Count(kind Kind) int {
	return t.counts[kind]
}

func (t *SymbolTable) scopeOf(kind Kind) map[string]Symbol {
	if kind.isClassScope() {
		return t.class
	}
	return t.subroutine
}
