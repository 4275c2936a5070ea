package service

import "strings"

// Canonical operation names as stored in the calculations table.
const (
	OpAdd      = "add"
	OpSubtract = "subtract"
	OpMultiply = "multiply"
	OpDivide   = "divide"
)

// operationAliases maps accepted spellings to canonical names. Input is
// lowercased before lookup.
var operationAliases = map[string]string{
	"add":            OpAdd,
	"addition":       OpAdd,
	"sub":            OpSubtract,
	"subtract":       OpSubtract,
	"subtraction":    OpSubtract,
	"mul":            OpMultiply,
	"multiply":       OpMultiply,
	"multiplication": OpMultiply,
	"div":            OpDivide,
	"divide":         OpDivide,
	"division":       OpDivide,
}

// CalculationSpec carries the client-supplied part of a calculation.
// Result is never part of the spec; it is always derived here.
type CalculationSpec struct {
	Operation string
	OperandA  float64
	OperandB  float64
}

// ParseOperation normalizes an operation name to its canonical form.
func ParseOperation(s string) (string, error) {
	op, ok := operationAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", invalidf("unsupported operation %q", s)
	}
	return op, nil
}

// Compute evaluates a canonical operation. Division by zero is a
// validation failure, never an Inf/NaN result.
func Compute(operation string, a, b float64) (float64, error) {
	switch operation {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, invalidf("division by zero")
		}
		return a / b, nil
	default:
		return 0, invalidf("unsupported operation %q", operation)
	}
}

// resolveSpec normalizes the operation and computes the result, rejecting
// the spec before anything touches storage.
func resolveSpec(spec CalculationSpec) (string, float64, error) {
	op, err := ParseOperation(spec.Operation)
	if err != nil {
		return "", 0, err
	}
	result, err := Compute(op, spec.OperandA, spec.OperandB)
	if err != nil {
		return "", 0, err
	}
	return op, result, nil
}
