package flow

import "errors"

// Domain errors for circuit operations.
var (
	// ErrParameterBounds indicates a parameter value outside its declared range.
	ErrParameterBounds = errors.New("flow: parameter out of valid bounds")

	// ErrUnknownParam indicates a parameter name the circuit does not define.
	ErrUnknownParam = errors.New("flow: unknown parameter")

	// ErrUnknownCircuit indicates a circuit name with no registered model.
	ErrUnknownCircuit = errors.New("flow: unknown circuit")
)
