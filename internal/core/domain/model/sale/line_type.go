package sale

import (
	"fmt"

	"saleedit/internal/pkg/errs"
)

// LineType distinguishes product lines from layout lines.
type LineType string

const (
	LineTypeLine    LineType = "line"
	LineTypeTitle   LineType = "title"
	LineTypeComment LineType = "comment"
)

// ParseLineType validates s as a LineType.
func ParseLineType(s string) (LineType, error) {
	t := LineType(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t LineType) Validate() error {
	switch t {
	case LineTypeLine, LineTypeTitle, LineTypeComment:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("line type", fmt.Errorf("%q is not a valid line type", string(t)))
	}
}

func (t LineType) String() string {
	return string(t)
}
