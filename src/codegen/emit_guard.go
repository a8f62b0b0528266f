package codegen

import "fmt"

// guard runs an instruction-emitting closure and converts any panic raised
// by the underlying native builder (tinygo.org/x/go-llvm surfaces invalid
// builder state as a panic from the C++ assertion it wraps, rather than as
// a Go error the way a Result-returning builder API would) into a
// CodegenError carrying an "<op> failed" message prefix. Every call site
// names its own instruction category so the resulting message is
// consistent across the whole error taxonomy.
func guard(op string, fn func()) (err *CodegenError) {
	defer func() {
		if r := recover(); r != nil {
			err = wrapErr(fmt.Errorf("%v", r), "%s failed", op)
		}
	}()
	fn()
	return nil
}
