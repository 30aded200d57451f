package robot

// Warnings accumulates init-time problems into one user visible message.
type Warnings struct {
	generated bool
	message   string
}

// Append adds msg, separating it from any earlier message with ", ".
func (w *Warnings) Append(msg string) {
	if w.generated {
		w.message += ", "
	}
	w.generated = true
	w.message += msg
}

// Generated returns whether anything was appended.
func (w *Warnings) Generated() bool {
	return w.generated
}

// Message returns the accumulated message.
func (w *Warnings) Message() string {
	return w.message
}
