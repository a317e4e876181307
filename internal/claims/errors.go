package claims

import "fmt"

// ModelOutputError reports that the language model returned something other
// than the valid JSON the prompt demanded. It is never retried or repaired;
// the server boundary maps it to a distinct client-facing message.
type ModelOutputError struct {
	Stage string // "structure" or "synthesize"
	Err   error
}

func (e *ModelOutputError) Error() string {
	return fmt.Sprintf("%s: invalid model output: %v", e.Stage, e.Err)
}

func (e *ModelOutputError) Unwrap() error {
	return e.Err
}
