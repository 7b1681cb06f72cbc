package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/nao1215/tls11scan/internal/model"
)

// defaultBuffer is the notice channel capacity. Probes block only when the
// writer falls this far behind.
const defaultBuffer = 64

// Kind classifies a notice and selects its color.
type Kind int

const (
	// KindInfo is general run information, such as the number of targets loaded.
	KindInfo Kind = iota

	// KindProgress announces that a probe is starting.
	KindProgress

	// KindAlert announces a vulnerable target.
	KindAlert

	// KindFailure announces a probe that could not classify its target.
	KindFailure

	// KindWarning is a run-level warning.
	KindWarning
)

// Notice is one line of console output.
type Notice struct {
	Kind    Kind
	Message string
}

// Console writes notices to a single output stream from one goroutine.
type Console struct {
	out     io.Writer
	palette *Palette
	notices chan Notice
	done    chan struct{}

	// mu guards closed. Senders hold the read lock while sending so that
	// Close never closes the channel under an in-flight send.
	mu     sync.RWMutex
	closed bool
}

// Option configures a Console.
type Option func(*consoleOptions)

type consoleOptions struct {
	color    *bool
	capacity int
}

// WithColor forces colors on or off. By default colors are used when the
// output is a terminal.
func WithColor(enabled bool) Option {
	return func(o *consoleOptions) {
		o.color = &enabled
	}
}

// withBuffer sets the notice channel capacity. Non-positive values are ignored.
func withBuffer(n int) Option {
	return func(o *consoleOptions) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// New creates a Console writing to out and starts its writer goroutine.
// Call Close to flush pending notices and stop the goroutine.
func New(out io.Writer, opts ...Option) *Console {
	o := consoleOptions{capacity: defaultBuffer}
	for _, opt := range opts {
		opt(&o)
	}

	enabled := ColorEnabled(out)
	if o.color != nil {
		enabled = *o.color
	}

	c := &Console{
		out:     out,
		palette: NewPalette(enabled),
		notices: make(chan Notice, o.capacity),
		done:    make(chan struct{}),
	}
	go c.run()
	return c
}

// run is the only code that writes to c.out.
func (c *Console) run() {
	defer close(c.done)
	for n := range c.notices {
		// Each line is a single Write so it cannot be split by the runtime.
		// Write errors are ignored: notices are best effort.
		_, _ = io.WriteString(c.out, c.colorFor(n.Kind).Sprint(n.Message)+"\n") //nolint:errcheck
	}
}

func (c *Console) colorFor(kind Kind) *color.Color {
	switch kind {
	case KindProgress, KindInfo:
		return c.palette.Info
	case KindAlert:
		return c.palette.Alert
	case KindFailure, KindWarning:
		return c.palette.Failure
	default:
		return c.palette.Bold
	}
}

// Send queues a notice. It is safe for concurrent use.
// Notices sent after Close are discarded.
func (c *Console) Send(n Notice) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	c.notices <- n
}

// Close flushes queued notices and stops the writer goroutine.
// It is safe to call more than once.
func (c *Console) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.notices)
	}
	c.mu.Unlock()
	<-c.done
}

// Infof queues an informational notice.
func (c *Console) Infof(format string, args ...any) {
	c.Send(Notice{Kind: KindInfo, Message: "[+] " + fmt.Sprintf(format, args...)})
}

// Warnf queues a run-level warning.
func (c *Console) Warnf(format string, args ...any) {
	c.Send(Notice{Kind: KindWarning, Message: "[!] Warning: " + fmt.Sprintf(format, args...)})
}

// Progress announces that target is about to be probed.
func (c *Console) Progress(target model.Target) {
	c.Send(Notice{Kind: KindProgress, Message: "[+] Scanning " + target.Address()})
}

// Alert announces that target has TLS 1.1 enabled.
func (c *Console) Alert(target model.Target) {
	c.Send(Notice{Kind: KindAlert, Message: "[!] TLSv1.1 ENABLED on " + target.Address()})
}

// Failure announces that target could not be scanned.
func (c *Console) Failure(target model.Target, reason string) {
	c.Send(Notice{Kind: KindFailure, Message: fmt.Sprintf("[!] Error scanning %s: %s", target.Address(), reason)})
}
