package sandbox

import (
	"fmt"
	"time"

	"github.com/cwbudde/deconst/internal/lexer"
	"github.com/cwbudde/deconst/internal/parser"
)

// TreeWalker is the default Evaluator: it parses the assembled program
// with internal/parser and walks it with eval, running the walk on its
// own goroutine so a timeout can be enforced without the tree-walker
// needing any native preemption points. A timed-out goroutine is
// orphaned, not killed — Go has no safe way to cancel a running
// goroutine from outside — but its Context is discarded, so a stuck
// evaluation simply can't contribute partial results (spec.md §4.6,
// §7 SandboxTimeout).
type TreeWalker struct{}

// NewTreeWalker returns the tree-walking Evaluator.
func NewTreeWalker() *TreeWalker { return &TreeWalker{} }

func (w *TreeWalker) Run(source string, timeout time.Duration) (Outcome, *Context) {
	ctx := NewContext()

	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		return Fatal, ctx
	}

	done := make(chan struct{})
	var panicked any

	go func() {
		defer func() {
			if r := recover(); r != nil {
				panicked = r
			}
			close(done)
		}()
		env := NewGlobalEnvironment(ctx)
		eval(program, env)
	}()

	select {
	case <-done:
		if panicked != nil {
			return Fatal, NewContext()
		}
		return OK, ctx
	case <-time.After(timeout):
		return Timeout, NewContext()
	}
}

// ErrAssembly describes a parse failure in the assembled program
// (spec.md §7 AssemblyError). Run does not construct it: it reports
// such a failure only as Fatal.
type ErrAssembly struct {
	Messages []string
}

func (e *ErrAssembly) Error() string {
	return fmt.Sprintf("sandbox: %d error(s) in assembled program", len(e.Messages))
}
