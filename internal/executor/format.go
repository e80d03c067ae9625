package executor

import (
	"fmt"
	"strings"

	"golang.org/x/text/message"
	xnumber "golang.org/x/text/number"

	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/symbols"
)

// groupedFormat renders a number with the locale's digit grouping.
const groupedFormat = ","

// formatValue renders the value of an integer, decimal or boolean
// element. A format is either "," or a printf verb string.
func (x *Executor) formatValue(v symbols.Value, format *string, line int) (string, error) {
	v = symbols.Unwrap(v)
	if format == nil || *format == "" {
		s, _ := symbols.Text(v)
		return s, nil
	}
	var n any
	switch val := v.(type) {
	case *symbols.IntegerValue:
		n = val.Value
	case *symbols.DecimalValue:
		n = val.Value
	case *symbols.BooleanValue:
		return fmt.Sprint(val.Value), nil
	case nil:
		return "", nil
	default:
		s, _ := symbols.Text(v)
		return s, nil
	}
	if *format == groupedFormat {
		return message.NewPrinter(x.locale).Sprint(xnumber.Decimal(n)), nil
	}
	out := fmt.Sprintf(*format, n)
	if strings.Contains(out, "%!") {
		return "", diagnostics.Otherf(x.docID, line, "cannot format %v with %q", n, *format)
	}
	return out, nil
}
