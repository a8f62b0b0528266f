package codegen

import (
	"tinygo.org/x/go-llvm"

	"formac/src/mir"
)

// compileTerminator realizes the single instruction that ends a basic block:
// return, unconditional branch, integer switch (including the 2-target
// conditional special case) or unreachable. The builder must already be
// positioned at the end of the block being terminated.
func (s *Session) compileTerminator(term mir.Terminator) *CodegenError {
	switch term.Kind {
	case mir.TReturn:
		if term.ReturnOperand == nil {
			return guard("return", func() { s.builder.CreateRetVoid() })
		}
		val, err := s.compileOperand(*term.ReturnOperand)
		if err != nil {
			return err
		}
		return guard("return", func() { s.builder.CreateRet(val) })

	case mir.TGoto:
		target, ok := s.blocks[term.GotoTarget]
		if !ok {
			// A branch to an unbound block is silently omitted rather than
			// treated as an error.
			s.debugf("omitted branch to unbound block", "target", term.GotoTarget)
			return nil
		}
		return guard("branch", func() { s.builder.CreateBr(target) })

	case mir.TSwitchInt:
		return s.compileSwitch(term)

	case mir.TUnreachable:
		return guard("unreachable", func() { s.builder.CreateUnreachable() })

	default:
		return newErr("Unsupported terminator kind: %d", int(term.Kind))
	}
}

// compileSwitch realizes a SwitchInt terminator. A single target is the
// canonical "if operand is non-zero" boolean-conditional encoding the front
// end emits: the literal key in targets[0] is ignored and the discriminant
// is compared against zero under ne. More than one target emits a true
// switch instruction with one case per (value, target) pair.
func (s *Session) compileSwitch(term mir.Terminator) *CodegenError {
	disc, err := s.compileOperand(term.Discriminant)
	if err != nil {
		return err
	}

	otherwise, ok := s.blocks[term.Otherwise]
	if !ok {
		return newErr("Missing otherwise block")
	}

	if len(term.Targets) == 1 {
		then, ok := s.blocks[term.Targets[0].Target]
		if !ok {
			return newErr("Missing then block")
		}
		var cond llvm.Value
		if cerr := guard("icmp", func() {
			zero := llvm.ConstInt(s.context.Int64Type(), 0, false)
			cond = s.builder.CreateICmp(llvm.IntNE, disc, zero, "")
		}); cerr != nil {
			return cerr
		}
		return guard("branch", func() { s.builder.CreateCondBr(cond, then, otherwise) })
	}

	var sw llvm.Value
	if cerr := guard("switch", func() {
		sw = s.builder.CreateSwitch(disc, otherwise, len(term.Targets))
	}); cerr != nil {
		return cerr
	}
	for _, c := range term.Targets {
		target, ok := s.blocks[c.Target]
		if !ok {
			// Switch case with an unbound target block is silently skipped,
			// same disposition as an unbound Goto.
			s.debugf("skipped switch case with unbound target", "value", c.Value, "target", c.Target)
			continue
		}
		key := llvm.ConstInt(s.context.Int64Type(), uint64(c.Value), true)
		sw.AddCase(key, target)
	}
	return nil
}
