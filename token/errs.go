package token

import "fmt"

// SyntaxError is the positioned diagnostic shared by the query engine and
// the document decoder. Start and End are byte offsets into Doc; line and
// column pairs are derived from them, 1-based.
type SyntaxError struct {
	Msg      string
	Filename string
	Doc      string
	Start    int
	End      int

	Line    int
	Col     int
	EndLine int
	EndCol  int
}

// NewSyntaxError builds a SyntaxError spanning [start, end). An end at or
// before start marks a single position.
func NewSyntaxError(msg, filename, doc string, start, end int) *SyntaxError {
	if end <= start {
		end = start
	}
	pd := NewPosDoc(doc)
	e := &SyntaxError{
		Msg:      msg,
		Filename: filename,
		Doc:      doc,
		Start:    start,
		End:      end,
	}
	e.Line, e.Col = pd.LineCol(start)
	e.EndLine, e.EndCol = pd.LineCol(end)
	return e
}

func (e *SyntaxError) Error() string {
	lineRange := fmt.Sprintf("%d", e.Line)
	if e.EndLine != e.Line {
		lineRange = fmt.Sprintf("%d-%d", e.Line, e.EndLine)
	}
	colRange := fmt.Sprintf("%d", e.Col)
	if e.EndCol != e.Col {
		colRange = fmt.Sprintf("%d-%d", e.Col, e.EndCol)
	}
	return fmt.Sprintf("%s (%s, line %s, column %s)", e.Msg, e.Filename, lineRange, colRange)
}
