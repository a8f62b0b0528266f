package codegen

import (
	"os"

	"tinygo.org/x/go-llvm"
)

// GetTextualIR returns the module's textual IR at its current state. It is
// idempotent: repeated calls on an unchanged module return byte-identical
// strings, since it only reads the module.
func (s *Session) GetTextualIR() string {
	return s.module.String()
}

// WriteTextualIR writes the module's textual IR to path.
func (s *Session) WriteTextualIR(path string) error {
	if err := os.WriteFile(path, []byte(s.GetTextualIR()), 0o644); err != nil {
		return wrapErr(err, "Failed to write IR")
	}
	return nil
}

// WriteObjectFile emits a host-triple relocatable object for the compiled
// module to path: initialize the native target, resolve a target for the
// configured (or default) triple, build a "generic" CPU target machine at
// default optimization/relocation/code-model settings, then emit the
// object.
func (s *Session) WriteObjectFile(path string) error {
	if err := llvm.InitializeNativeTarget(); err != nil {
		return wrapErr(err, "Failed to initialize LLVM")
	}
	if err := llvm.InitializeNativeAsmPrinter(); err != nil {
		return wrapErr(err, "Failed to initialize LLVM")
	}

	triple := s.cfg.TargetTriple
	if triple == "" {
		triple = llvm.DefaultTargetTriple()
	}

	target, err := llvm.GetTargetFromTriple(triple)
	if err != nil {
		return wrapErr(err, "Failed to get target")
	}

	var machine llvm.TargetMachine
	if cerr := guardCreateTargetMachine(func() {
		machine = target.CreateTargetMachine(triple, "generic", "",
			llvm.CodeGenLevelDefault, llvm.RelocDefault, llvm.CodeModelDefault)
	}); cerr != nil {
		return cerr
	}
	defer machine.Dispose()

	buf, err := machine.EmitToMemoryBuffer(s.module, llvm.ObjectFile)
	if err != nil {
		return wrapErr(err, "Failed to write object file")
	}
	if buf.IsNil() {
		return newErr("Failed to write object file: emitted buffer was empty")
	}

	fd, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o755)
	if err != nil {
		return wrapErr(err, "Failed to write object file")
	}
	defer func() { _ = fd.Close() }()

	if _, err := fd.Write(buf.Bytes()); err != nil {
		return wrapErr(err, "Failed to write object file")
	}
	return nil
}

// guardCreateTargetMachine recovers from a panic raised while constructing a
// target machine for an unsupported/misconfigured triple-CPU combination and
// reports it as a "Failed to create target machine" error.
func guardCreateTargetMachine(fn func()) (err *CodegenError) {
	defer func() {
		if r := recover(); r != nil {
			err = newErr("Failed to create target machine: %v", r)
		}
	}()
	fn()
	return nil
}
