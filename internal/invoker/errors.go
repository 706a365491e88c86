package invoker

import "fmt"

// FunctionError reports an invocation where the function itself failed
type FunctionError struct {
	FunctionName string
	Kind         string
	Payload      string
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("function %s failed (%s): %s", e.FunctionName, e.Kind, e.Payload)
}
