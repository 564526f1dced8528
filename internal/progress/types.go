// Package progress provides terminal progress feedback for long-running
// convlog operations: a spinner while history is read and symbol sets that
// degrade to ASCII on limited terminals.
package progress

// TerminalCapabilities describes what the output terminal can display.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// ProgressSymbols is the symbol set chosen for a terminal.
type ProgressSymbols struct {
	Checkmark string
	Failure   string
	// SpinnerSet indexes github.com/briandowns/spinner.CharSets.
	SpinnerSet int
}
