package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"tripmate/internal/notify"
)

// terminalToaster prints toasts as colored lines.
type terminalToaster struct {
	mu    sync.Mutex
	out   io.Writer
	title *color.Color
	bad   *color.Color
}

func newTerminalToaster(out io.Writer) *terminalToaster {
	return &terminalToaster{
		out:   out,
		title: color.New(color.FgCyan, color.Bold),
		bad:   color.New(color.FgRed, color.Bold),
	}
}

func (t *terminalToaster) Show(toast notify.Toast) {
	t.mu.Lock()
	defer t.mu.Unlock()

	head := t.title
	if toast.Variant == notify.VariantDestructive {
		head = t.bad
	}

	head.Fprint(t.out, toast.Title)
	if toast.Message != "" {
		fmt.Fprintf(t.out, "  %s", toast.Message)
	}
	fmt.Fprintln(t.out)
}
