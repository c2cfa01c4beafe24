package input

import (
	"os"
	"sync"

	"github.com/ava12/procin/source"
)

// Shared is a source created on first use and guarded by a mutex.
// Each binding list is read while the mutex is locked, so concurrent readers never interleave tokens
// within one list. Calling Shared methods from inside Do deadlocks.
type Shared struct {
	once sync.Once
	mu   sync.Mutex
	open func() (source.Source, error)
	src  source.Source
	err  error
}

// NewShared creates a shared source, open is called once on first use.
func NewShared(open func() (source.Source, error)) *Shared {
	return &Shared{open: open}
}

var (
	stdin = NewShared(func() (source.Source, error) {
		return source.NewAuto("stdin", os.Stdin)
	})
	interactive = NewShared(func() (source.Source, error) {
		return source.NewLine("stdin", os.Stdin), nil
	})
)

// Stdin returns the process-wide source reading os.Stdin, its kind is chosen by source.NewAuto.
// Must not be mixed with InteractiveStdin: each one buffers input independently.
func Stdin() *Shared {
	return stdin
}

// InteractiveStdin returns the process-wide line-by-line source reading os.Stdin,
// suitable for interactive judges that wait for an answer before sending the next query.
func InteractiveStdin() *Shared {
	return interactive
}

// Do calls f with the underlying source while holding the lock.
// Returns the error of source creation or the error returned by f.
func (s *Shared) Do(f func(source.Source) error) error {
	s.once.Do(func() {
		s.src, s.err = s.open()
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	return f(s.src)
}

// Scan reads a binding list, see Group.Scan.
func (s *Shared) Scan(text string, ptrs ...any) error {
	return s.ScanVars(text, nil, ptrs...)
}

// ScanVars reads a binding list using vars in length expressions, see Group.ScanVars.
func (s *Shared) ScanVars(text string, vars Vars, ptrs ...any) error {
	g, e := cached(text, vars.names())
	if e != nil {
		return e
	}
	return s.Do(func(src source.Source) error {
		return g.ScanVars(src, vars, ptrs...)
	})
}

// IsEmpty reports whether there are no more tokens.
func (s *Shared) IsEmpty() (res bool, e error) {
	e = s.Do(func(src source.Source) error {
		var ee error
		res, ee = src.IsEmpty()
		return ee
	})
	return
}

func must(e error) {
	if e != nil {
		panic(e)
	}
}

// Input reads a binding list from Stdin to ptrs. Panics with *procin.Error on failure.
func Input(text string, ptrs ...any) {
	must(stdin.Scan(text, ptrs...))
}

// InputVars reads a binding list from Stdin to ptrs using vars in length expressions.
// Panics with *procin.Error on failure.
func InputVars(text string, vars Vars, ptrs ...any) {
	must(stdin.ScanVars(text, vars, ptrs...))
}

// InputInteractive reads a binding list from InteractiveStdin to ptrs. Panics with *procin.Error on failure.
func InputInteractive(text string, ptrs ...any) {
	must(interactive.Scan(text, ptrs...))
}

// IsStdinEmpty reports whether Stdin has no more tokens. Panics with *procin.Error on failure.
func IsStdinEmpty() bool {
	res, e := stdin.IsEmpty()
	must(e)
	return res
}

// IsStdinEmptyInteractive reports whether InteractiveStdin has no more tokens.
// Panics with *procin.Error on failure.
func IsStdinEmptyInteractive() bool {
	res, e := interactive.IsEmpty()
	must(e)
	return res
}
