package starlark

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// maxExecutionSteps bounds script execution so a runaway loop in a user
// config cannot hang startup.
const maxExecutionSteps = 10_000_000

// ErrNoScript is returned by LoadFile when the script file does not exist.
var ErrNoScript = errors.New("config script not found")

// fileOptions allows top-level control flow and reassignment, which config
// scripts commonly use to build tables.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// Exec runs a config script against the predeclared globals and returns the
// globals it defines.
func Exec(filename string, src []byte, logger *slog.Logger) (starlark.StringDict, error) {
	return ExecWith(filename, src, nil, logger)
}

// ExecWith is Exec with extra predeclared globals. Names in extra shadow
// the builtins.
func ExecWith(filename string, src []byte, extra starlark.StringDict, logger *slog.Logger) (starlark.StringDict, error) {
	thread := newThread(filename, logger)

	predeclared := Predeclared()
	if len(extra) > 0 {
		merged := make(starlark.StringDict, len(predeclared)+len(extra))
		maps.Copy(merged, predeclared)
		maps.Copy(merged, extra)
		predeclared = merged
	}

	globals, err := starlark.ExecFileOptions(fileOptions, thread, filename, src, predeclared)
	if err != nil {
		return nil, newEvalError(filename, err)
	}

	return globals, nil
}

// LoadFile reads and executes the script at path.
func LoadFile(path string, logger *slog.Logger) (starlark.StringDict, error) {
	return LoadFileWith(path, nil, logger)
}

// LoadFileWith is LoadFile with extra predeclared globals.
func LoadFileWith(path string, extra starlark.StringDict, logger *slog.Logger) (starlark.StringDict, error) {
	src, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's configured script
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoScript, path)
		}
		return nil, &LoadError{File: path, Message: fmt.Sprintf("failed to read file: %v", err)}
	}
	return ExecWith(path, src, extra, logger)
}

// newThread creates a Starlark thread for one script run.
func newThread(name string, logger *slog.Logger) *starlark.Thread {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			logger.Debug("script print", "script", name, "msg", msg)
		},
	}
	thread.SetMaxExecutionSteps(maxExecutionSteps)
	return thread
}

// EvalError represents an error during script execution.
type EvalError struct {
	File    string
	Line    int
	Message string
}

func (e *EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// newEvalError extracts a line number from syntax, resolve and runtime errors.
func newEvalError(file string, err error) *EvalError {
	e := &EvalError{File: file, Message: err.Error()}

	var (
		syntaxErr  syntax.Error
		resolveErr resolve.ErrorList
		runtimeErr *starlark.EvalError
	)
	switch {
	case errors.As(err, &syntaxErr):
		e.Line = int(syntaxErr.Pos.Line)
		e.Message = syntaxErr.Msg
	case errors.As(err, &resolveErr) && len(resolveErr) > 0:
		e.Line = int(resolveErr[0].Pos.Line)
		e.Message = resolveErr[0].Msg
	case errors.As(err, &runtimeErr):
		e.Message = runtimeErr.Msg
		// Innermost frame last; builtin frames carry no line.
		for i := len(runtimeErr.CallStack) - 1; i >= 0; i-- {
			if line := runtimeErr.CallStack[i].Pos.Line; line > 0 {
				e.Line = int(line)
				break
			}
		}
	}

	return e
}

// LoadError represents an error reading a script file.
type LoadError struct {
	File    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}
