package codegen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"formac/src/mir"
)

// declareFunction lowers fn's signature and registers the resulting
// function handle in s.functions under fn.Name. Declaration must precede any
// body compilation so that forward and mutually recursive calls resolve.
func (s *Session) declareFunction(fn *mir.Function) error {
	ret := s.lowerType(fn.ReturnTy)
	if !isCallable(ret) {
		// Fallback: synthesize an i64-returning function type when the
		// lowered return type can't itself head a function signature.
		ret = s.context.Int64Type()
	}

	paramTypes := make([]llvm.Type, len(fn.Params))
	for i1, p := range fn.Params {
		paramTypes[i1] = s.lowerType(p.Ty)
	}

	ftyp := llvm.FunctionType(ret, paramTypes, false)
	fun := llvm.AddFunction(s.module, fn.Name, ftyp)
	s.functions[fn.Name] = fun
	return nil
}

// isCallable reports whether t can head a function's return type: an
// integer, float, or pointer type.
func isCallable(t llvm.Type) bool {
	switch t.TypeKind() {
	case llvm.IntegerTypeKind, llvm.FloatTypeKind, llvm.DoubleTypeKind, llvm.PointerTypeKind:
		return true
	default:
		return false
	}
}

// compileFunctionBody fills in fn's previously-declared signature with its
// executing body: it allocates one stack slot per local, materializes
// parameters into their slots, lays out one native basic block per MIR
// block, and compiles each block in order.
func (s *Session) compileFunctionBody(fn *mir.Function) error {
	target, ok := s.functions[fn.Name]
	if !ok {
		return newErr("Function %s not declared", fn.Name)
	}

	s.current = target
	s.locals = make(map[int]llvm.Value, len(fn.Locals))
	s.blocks = make(map[int]llvm.BasicBlock, len(fn.Blocks))
	defer func() { s.current = llvm.Value{} }()

	entry := llvm.AddBasicBlock(target, "entry")
	s.builder.SetInsertPointAtEnd(entry)

	// One stack allocation per local, named local_i, in declaration order.
	for i1, local := range fn.Locals {
		typ := s.lowerType(local.Ty)
		name := fmt.Sprintf("local_%d", i1)
		var alloc llvm.Value
		if err := guard("alloca", func() { alloc = s.builder.CreateAlloca(typ, name) }); err != nil {
			return err
		}
		s.locals[i1] = alloc
	}

	// Materialize incoming parameters into their locals; this is the only
	// mechanism by which parameter values enter the function body.
	for i1, param := range target.Params() {
		slot, ok := s.locals[i1]
		if !ok {
			continue
		}
		if err := guard("store", func() { s.builder.CreateStore(param, slot) }); err != nil {
			return err
		}
	}

	// Label-then-fill: create every native block up front so cyclic control
	// flow (loops) needs no back-patching, then emit into them.
	for i1 := range fn.Blocks {
		s.blocks[i1] = llvm.AddBasicBlock(target, fmt.Sprintf("bb_%d", i1))
	}
	if first, ok := s.blocks[0]; ok {
		if err := guard("branch", func() { s.builder.CreateBr(first) }); err != nil {
			return err
		}
	}

	for i1, block := range fn.Blocks {
		s.builder.SetInsertPointAtEnd(s.blocks[i1])
		for _, stmt := range block.Statements {
			if err := s.compileStatement(stmt); err != nil {
				return err
			}
		}
		if err := s.compileTerminator(block.Terminator); err != nil {
			return err
		}
	}
	return nil
}
