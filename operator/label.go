package operator

// Labels maps each operator to the verb phrase used when narrating a
// top-level operation.
type Labels struct {
	Add      string
	Subtract string
	Multiply string
	Divide   string
	Power    string
	Fallback string
}

// EnglishLabels is the default label set.
var EnglishLabels = Labels{
	Add:      "Added",
	Subtract: "Subtracted",
	Multiply: "Multiplied",
	Divide:   "Divided",
	Power:    "Raised to the power",
	Fallback: "Operated",
}

// SpanishLabels is the label set of the Spanish catalog.
var SpanishLabels = Labels{
	Add:      "Se sumó",
	Subtract: "Se restó",
	Multiply: "Se multiplicó",
	Divide:   "Se dividió",
	Power:    "Se elevó a la potencia",
	Fallback: "Operó",
}

// For returns the phrase for op, or the fallback for unknown operators.
func (l Labels) For(op rune) string {
	switch op {
	case Add:
		return l.Add
	case Subtract:
		return l.Subtract
	case Multiply:
		return l.Multiply
	case Divide:
		return l.Divide
	case Power:
		return l.Power
	default:
		return l.Fallback
	}
}

// Label returns the English phrase for op.
func Label(op rune) string {
	return EnglishLabels.For(op)
}
