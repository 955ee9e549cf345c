package render

import "fmt"

// DiagnosticHead opens every diagnostic, in every dialect.
const DiagnosticHead = "ERROR WHILE HANDLING ELEMENT"

// ReprLimit caps the node representation embedded in a diagnostic.
const ReprLimit = 300

// Notice is an error whose message is already formatted for display.
type Notice string

func (n Notice) Error() string { return string(n) }

// Report formats err for a diagnostic. Notices are shown verbatim; other
// errors are printed with %+v, which includes the stack trace recorded
// by github.com/pkg/errors.
func Report(err error) string {
	if notice, ok := err.(Notice); ok {
		return string(notice)
	}
	return fmt.Sprintf("%+v", err)
}

// Truncate shortens s to limit runes and reports how many were dropped.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + fmt.Sprintf("... (n=%d more chars hidden)", len(r)-limit)
}
