package codegen

import (
	"tinygo.org/x/go-llvm"

	"formac/src/mir"
)

// compileOperand evaluates a mir.Operand into a native IR value at the
// builder's current insertion position.
func (s *Session) compileOperand(op mir.Operand) (llvm.Value, *CodegenError) {
	switch op.Kind {
	case mir.OpCopy, mir.OpMove:
		// Move and Copy are semantically identical in the core: no move
		// semantics are tracked.
		slot, ok := s.locals[op.Place.Local]
		if !ok {
			return llvm.Value{}, newErr("Unknown local: %d", op.Place.Local)
		}
		var loaded llvm.Value
		if gerr := guard("load", func() {
			loaded = s.builder.CreateLoad(slot, "")
		}); gerr != nil {
			return llvm.Value{}, gerr
		}
		return loaded, nil
	case mir.OpConstant:
		// Known limitation: constants are always i64 regardless of the
		// enclosing place's declared type.
		return llvm.ConstInt(s.context.Int64Type(), uint64(op.Constant), true), nil
	default:
		return llvm.Value{}, newErr("Unsupported operand kind: %d", int(op.Kind))
	}
}

// compileRvalue evaluates a mir.Rvalue into a native IR value.
func (s *Session) compileRvalue(rv mir.Rvalue) (llvm.Value, *CodegenError) {
	switch rv.Kind {
	case mir.RUse:
		return s.compileOperand(rv.Operand)
	case mir.RBinaryOp:
		lhs, err := s.compileOperand(rv.Lhs)
		if err != nil {
			return llvm.Value{}, err
		}
		rhs, err := s.compileOperand(rv.Rhs)
		if err != nil {
			return llvm.Value{}, err
		}
		return s.compileBinOp(rv.BinOp, lhs, rhs)
	case mir.RUnaryOp:
		val, err := s.compileOperand(rv.Unary)
		if err != nil {
			return llvm.Value{}, err
		}
		return s.compileUnaryOp(rv.UnaryOp, val)
	case mir.RCall:
		return s.compileCall(rv.Call, rv.Args)
	default:
		return llvm.Value{}, newErr("Unsupported rvalue: %s", rv.Label)
	}
}

// compileBinOp dispatches a binary operator over two already-compiled
// operands. Comparison results are 1-bit integers passed along without
// width promotion.
func (s *Session) compileBinOp(op mir.BinOp, lhs, rhs llvm.Value) (res llvm.Value, cerr *CodegenError) {
	switch op {
	case mir.Add:
		cerr = guard("add", func() { res = s.builder.CreateAdd(lhs, rhs, "") })
	case mir.Sub:
		cerr = guard("sub", func() { res = s.builder.CreateSub(lhs, rhs, "") })
	case mir.Mul:
		cerr = guard("mul", func() { res = s.builder.CreateMul(lhs, rhs, "") })
	case mir.Div:
		cerr = guard("div", func() { res = s.builder.CreateSDiv(lhs, rhs, "") })
	case mir.Mod:
		cerr = guard("mod", func() { res = s.builder.CreateSRem(lhs, rhs, "") })
	case mir.Eq:
		cerr = guard("icmp", func() { res = s.builder.CreateICmp(llvm.IntEQ, lhs, rhs, "") })
	case mir.Ne:
		cerr = guard("icmp", func() { res = s.builder.CreateICmp(llvm.IntNE, lhs, rhs, "") })
	case mir.Lt:
		cerr = guard("icmp", func() { res = s.builder.CreateICmp(llvm.IntSLT, lhs, rhs, "") })
	case mir.Le:
		cerr = guard("icmp", func() { res = s.builder.CreateICmp(llvm.IntSLE, lhs, rhs, "") })
	case mir.Gt:
		cerr = guard("icmp", func() { res = s.builder.CreateICmp(llvm.IntSGT, lhs, rhs, "") })
	case mir.Ge:
		cerr = guard("icmp", func() { res = s.builder.CreateICmp(llvm.IntSGE, lhs, rhs, "") })
	case mir.And:
		cerr = guard("and", func() { res = s.builder.CreateAnd(lhs, rhs, "") })
	case mir.Or:
		cerr = guard("or", func() { res = s.builder.CreateOr(lhs, rhs, "") })
	default:
		return llvm.Value{}, newErr("Unsupported binary operator: %s", op)
	}
	if cerr != nil {
		return llvm.Value{}, cerr
	}
	return res, nil
}

// compileUnaryOp dispatches a unary operator over an already-compiled operand.
func (s *Session) compileUnaryOp(op mir.UnaryOp, val llvm.Value) (res llvm.Value, cerr *CodegenError) {
	switch op {
	case mir.Neg:
		cerr = guard("neg", func() { res = s.builder.CreateNeg(val, "") })
	case mir.Not:
		cerr = guard("not", func() { res = s.builder.CreateNot(val, "") })
	default:
		return llvm.Value{}, newErr("Unsupported unary operator: %d", int(op))
	}
	if cerr != nil {
		return llvm.Value{}, cerr
	}
	return res, nil
}

// compileCall looks up a called function by name, compiles its arguments and
// emits a call instruction. Calling a void-returning function from a
// value-producing position is an error: "Function returned void".
func (s *Session) compileCall(name string, argOperands []mir.Operand) (llvm.Value, *CodegenError) {
	target, ok := s.functions[name]
	if !ok {
		return llvm.Value{}, newErr("Unknown function: %s", name)
	}

	args := make([]llvm.Value, len(argOperands))
	for i1, a := range argOperands {
		v, err := s.compileOperand(a)
		if err != nil {
			return llvm.Value{}, err
		}
		args[i1] = v
	}

	var call llvm.Value
	if cerr := guard("call", func() { call = s.builder.CreateCall(target, args, "") }); cerr != nil {
		return llvm.Value{}, cerr
	}

	if call.Type().TypeKind() == llvm.VoidTypeKind {
		return llvm.Value{}, newErr("Function returned void")
	}
	return call, nil
}
