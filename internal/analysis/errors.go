package analysis

import "fmt"

// AnalysisError reports a failure inside one stage of an analysis.
type AnalysisError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis failed at %s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis failed at %s: %s", e.Stage, e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}
