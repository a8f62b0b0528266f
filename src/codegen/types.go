package codegen

import (
	"tinygo.org/x/go-llvm"

	"formac/src/mir"
)

// lowerType maps a mir.Ty to its native IR type. It is a total function:
// unknown Ty values fall back to a 64-bit integer so the lowerer never
// fails — every local stays storable and every return stays typed.
func (s *Session) lowerType(ty mir.Ty) llvm.Type {
	switch ty {
	case mir.Int, mir.I64:
		return s.context.Int64Type()
	case mir.I32:
		return s.context.Int32Type()
	case mir.I16:
		return s.context.Int16Type()
	case mir.I8, mir.Unit:
		return s.context.Int8Type()
	case mir.Bool:
		return s.context.Int1Type()
	case mir.Float, mir.F64:
		return s.context.DoubleType()
	case mir.F32:
		return s.context.FloatType()
	case mir.Str:
		return llvm.PointerType(s.context.Int8Type(), 0)
	default:
		return s.context.Int64Type()
	}
}
