package layout

import "fmt"

// StageError identifies the house and the violated constraint, prefixed with
// the stage that raised it. Stage orchestration retries on these and rethrows
// the last one unmodified when a stage's attempt budget is exhausted.
type StageError struct {
	Stage string
	House int
	Msg   string
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: house %d: %s", e.Stage, e.House, e.Msg)
}

func stageErrf(stage string, house int, format string, args ...any) *StageError {
	return &StageError{Stage: stage, House: house, Msg: fmt.Sprintf(format, args...)}
}
