package board

import "fmt"

// RuleError is an expected, user-facing rule violation. Handlers surface
// Reason verbatim; it is never a programmer error.
type RuleError struct {
	Reason string
}

func (e *RuleError) Error() string { return e.Reason }

func ruleErrorf(format string, args ...interface{}) *RuleError {
	return &RuleError{Reason: fmt.Sprintf(format, args...)}
}

// NoCapacityError means the placement resolver found no bucket with room
// for the batch. Expected and user-facing, same as RuleError, but carries
// the batch size so callers can react to it.
type NoCapacityError struct {
	TaskCount int
	Message   string
}

func (e *NoCapacityError) Error() string { return e.Message }

func noCapacity(taskCount int, message string) *NoCapacityError {
	if message == "" {
		plural := ""
		if taskCount != 1 {
			plural = "s"
		}
		message = fmt.Sprintf("No bucket has room for %d task%s", taskCount, plural)
	}
	return &NoCapacityError{TaskCount: taskCount, Message: message}
}
