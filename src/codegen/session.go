// Package codegen lowers a typed, block-structured mir.Program into LLVM IR
// and emits either textual IR or a relocatable object file through the host
// LLVM toolchain. A Session is bound to one native IR context and produces
// exactly one module; it is not safe for concurrent use — every operation
// that emits an instruction depends on the builder's shared insertion
// cursor, so a Session is an exclusive writer over its module.
package codegen

import (
	"log/slog"
	"os"

	"tinygo.org/x/go-llvm"

	"formac/src/mir"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Config carries the compiler knobs a driver supplies when opening a
// Session — a plain struct of settings, with no flag parsing inside the
// core itself.
type Config struct {
	ModuleName   string       // Name given to the output module. Required.
	Verbose      bool         // Log a summary line when Compile succeeds and a debug line for every silent no-op.
	TargetTriple string       // Override the target triple used by WriteObjectFile. Empty means host default.
	Logger       *slog.Logger // Destination for verbose diagnostics. Defaults to a stderr text handler at debug level.
}

// Session is one compile-and-emit unit: one context borrow, one module, one
// builder, scoped to one Program. Create a fresh Session per Program.
type Session struct {
	cfg     Config
	log     *slog.Logger
	context llvm.Context
	module  llvm.Module
	builder llvm.Builder

	functions map[string]llvm.Value   // name -> declared FunctionValue.
	locals    map[int]llvm.Value      // local index -> stack slot address, reset per function.
	blocks    map[int]llvm.BasicBlock // MIR block index -> native basic block, reset per function.
	current   llvm.Value              // Function currently being compiled; zero Value when none.

	compiled bool // Set once Compile has returned successfully; Session becomes read-only for emitters.
}

// ---------------------
// ----- functions -----
// ---------------------

// NewSession creates a fresh compilation session bound to a new native IR
// context and module. Callers must call Dispose when done with it.
func NewSession(cfg Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	ctx := llvm.NewContext()
	return &Session{
		cfg:       cfg,
		log:       cfg.Logger,
		context:   ctx,
		module:    ctx.NewModule(cfg.ModuleName),
		builder:   ctx.NewBuilder(),
		functions: make(map[string]llvm.Value),
		locals:    make(map[int]llvm.Value),
	}
}

// Dispose releases the native context, module and builder owned by this
// Session. Calling it more than once, or using the Session afterwards, is
// undefined — the same contract the underlying LLVM bindings carry.
func (s *Session) Dispose() {
	s.builder.Dispose()
	s.module.Dispose()
	s.context.Dispose()
}

// Compile lowers every function of program into s's module in two passes:
// first every function signature is declared so forward and mutually
// recursive calls resolve, then every function body is filled in. The
// declaration pass unconditionally precedes the body pass.
func (s *Session) Compile(program *mir.Program) error {
	for i := range program.Functions {
		if err := s.declareFunction(&program.Functions[i]); err != nil {
			return err
		}
	}
	for i := range program.Functions {
		if err := s.compileFunctionBody(&program.Functions[i]); err != nil {
			return err
		}
	}
	s.compiled = true
	if s.cfg.Verbose {
		s.log.Info("compile complete", "functions", len(program.Functions))
	}
	return nil
}

// debugf logs a verbose diagnostic if the session was configured for it.
// Used for the silent no-op paths (assign/branch/switch-case to an unknown
// slot or block) that are permissive gaps rather than errors.
func (s *Session) debugf(msg string, args ...interface{}) {
	if s.cfg.Verbose {
		s.log.Debug(msg, args...)
	}
}
