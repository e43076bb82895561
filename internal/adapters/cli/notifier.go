package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/example/assess/internal/ports/secondary"
)

// ConsoleNotifier implements secondary.Notifier by printing a one-line toast.
type ConsoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

var _ secondary.Notifier = (*ConsoleNotifier)(nil)

// NewConsoleNotifier creates a notifier writing to out.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

// NotifyError prints a failed operation.
func (n *ConsoleNotifier) NotifyError(ctx context.Context, op string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, errStyle.Sprintf("✗ failed to %s: %v", op, err))
}
