package codegen

import "formac/src/mir"

// compileStatement realizes a single mir.Statement as a store instruction
// (Assign) or does nothing (Nop).
func (s *Session) compileStatement(stmt mir.Statement) *CodegenError {
	switch stmt.Kind {
	case mir.SAssign:
		val, err := s.compileRvalue(stmt.Rvalue)
		if err != nil {
			return err
		}
		slot, ok := s.locals[stmt.Place.Local]
		if !ok {
			// Assign-to-unknown-slot is a permissive gap: the store is
			// silently dropped rather than treated as an error.
			s.debugf("dropped assignment to unknown local", "local", stmt.Place.Local)
			return nil
		}
		return guard("store", func() { s.builder.CreateStore(val, slot) })
	case mir.SNop:
		return nil
	default:
		return newErr("Unsupported statement kind: %d", int(stmt.Kind))
	}
}
