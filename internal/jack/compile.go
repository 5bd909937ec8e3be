package jack

import "io"

// Class is the compiled form of one source file.
type Class struct {
	Name         string
	Instructions []Instruction
}

// Compile compiles the source of a single class. Compilation stops at the
// first error and no instructions are returned in that case.
func Compile(source []rune) (*Class, error) {
	vm := NewVMWriter()
	engine := NewEngine(NewScanner(source), vm)
	if err := engine.CompileClass(); err != nil {
		return nil, err
	}
	return &Class{engine.ClassName(), vm.Instructions()}, nil
}

// WriteTo writes the class's instructions as VM text.
func (c *Class) WriteTo(w io.Writer) (int64, error) {
	return WriteInstructions(w, c.Instructions)
}
