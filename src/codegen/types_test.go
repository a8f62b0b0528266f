package codegen

import (
	"testing"

	"tinygo.org/x/go-llvm"

	"formac/src/mir"
)

// TestTypeLowering verifies that every named Ty round-trips to the native
// IR type the lowering table specifies, and that an unrecognized Ty falls
// back to a 64-bit integer.
func TestTypeLowering(t *testing.T) {
	cases := []struct {
		name string
		ty   mir.Ty
		kind llvm.TypeKind
		bits int // only checked for integer/float kinds
	}{
		{"Int", mir.Int, llvm.IntegerTypeKind, 64},
		{"I64", mir.I64, llvm.IntegerTypeKind, 64},
		{"I32", mir.I32, llvm.IntegerTypeKind, 32},
		{"I16", mir.I16, llvm.IntegerTypeKind, 16},
		{"I8", mir.I8, llvm.IntegerTypeKind, 8},
		{"Unit", mir.Unit, llvm.IntegerTypeKind, 8},
		{"Bool", mir.Bool, llvm.IntegerTypeKind, 1},
		{"Float", mir.Float, llvm.DoubleTypeKind, 0},
		{"F64", mir.F64, llvm.DoubleTypeKind, 0},
		{"F32", mir.F32, llvm.FloatTypeKind, 0},
		{"Str", mir.Str, llvm.PointerTypeKind, 0},
		{"fallback", mir.Ty(9999), llvm.IntegerTypeKind, 64},
	}

	s := NewSession(Config{ModuleName: "types"})
	defer s.Dispose()

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := s.lowerType(c.ty)
			if got.TypeKind() != c.kind {
				t.Fatalf("lowerType(%s): expected kind %v, got %v", c.name, c.kind, got.TypeKind())
			}
			if c.kind == llvm.IntegerTypeKind && got.IntTypeWidth() != c.bits {
				t.Fatalf("lowerType(%s): expected width %d, got %d", c.name, c.bits, got.IntTypeWidth())
			}
		})
	}
}
