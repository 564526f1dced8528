package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerDelay = 100 * time.Millisecond

// Spinner shows an animated message while an operation runs. On a
// non-terminal writer it prints nothing until Stop, which then writes a
// single status line.
type Spinner struct {
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	message string
	s       *spinner.Spinner
}

// NewSpinner returns a stopped spinner writing to out.
func NewSpinner(out io.Writer, caps TerminalCapabilities) *Spinner {
	return &Spinner{out: out, caps: caps, symbols: SelectSymbols(caps)}
}

// Start begins animating message. Starting twice replaces the message.
func (p *Spinner) Start(message string) {
	p.message = message
	if !p.caps.IsTTY {
		return
	}
	if p.s == nil {
		p.s = spinner.New(spinner.CharSets[p.symbols.SpinnerSet], spinnerDelay, spinner.WithWriter(p.out))
		if !p.caps.SupportsColor {
			_ = p.s.Color("reset")
		}
	}
	p.s.Suffix = " " + message
	if !p.s.Active() {
		p.s.Start()
	}
}

// Stop ends the animation and prints the final status: the checkmark and
// result on success, the failure symbol and message otherwise.
func (p *Spinner) Stop(result string, err error) {
	if p.s != nil && p.s.Active() {
		p.s.Stop()
	}
	if err != nil {
		fmt.Fprintf(p.out, "%s %s\n", p.symbols.Failure, p.message)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", p.symbols.Checkmark, result)
}
