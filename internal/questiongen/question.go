package questiongen

// ErrorType classifies the kind of mistake a wrong answer most likely
// signals. Tags feed the error log and the teacher reports.
type ErrorType string

const (
	ErrFact    ErrorType = "E_FACT"    // recall of a basic fact
	ErrPlace   ErrorType = "E_PLACE"   // place value / decimal alignment
	ErrProc    ErrorType = "E_PROC"    // procedure applied wrongly
	ErrConcept ErrorType = "E_CONCEPT" // the underlying idea
	ErrReading ErrorType = "E_READ"    // misread the statement
	ErrTime    ErrorType = "E_TIME"    // ran out of time
	ErrOther   ErrorType = "E_OTHER"
)

// AllErrorTypes lists the error classifications in report order.
func AllErrorTypes() []ErrorType {
	return []ErrorType{ErrFact, ErrPlace, ErrProc, ErrConcept, ErrReading, ErrTime, ErrOther}
}

// Question is one multiple-choice item ready for display. Options always
// holds exactly 4 distinct strings, one equal to Correct; answers are judged
// by strict string equality against Correct.
type Question struct {
	SkillID   string
	Prompt    string
	Options   []string
	Correct   string
	Hint      string
	ErrorType ErrorType
}
