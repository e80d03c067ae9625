package analyzer

import (
	"strings"

	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/parser"
	"github.com/funvibe/ftdc/internal/symbols"
)

// event analyzes an `$on-<name>$: <action>` header. The action is a call;
// inside it VALUE and CHECKED name the element's current input state.
func (a *Analyzer) event(e *ast.Event, sc *scope) (symbols.State[*symbols.Event], error) {
	name, err := ParseEventName(e.Name, sc.docID(), e.Line)
	if err != nil {
		return symbols.State[*symbols.Event]{}, err
	}
	node, err := parser.ParseExpression(parser.StripBraces(e.Action), e.Line)
	if err != nil {
		return symbols.State[*symbols.Event]{}, diagnostics.WithDocument(err, sc.docID(), e.Line)
	}
	call, ok := node.(*ast.CallExpression)
	if !ok {
		return symbols.State[*symbols.Event]{}, diagnostics.Parsef(sc.docID(), e.Line, "event action `%s` is not a function call", e.Action)
	}

	if b, ok := lookupBuiltin(call.FunctionName()); ok && !b.action {
		return symbols.State[*symbols.Event]{}, diagnostics.Parsef(sc.docID(), e.Line, "`%s` cannot be used as an event action", b.name)
	}
	st, err := a.functionCall(call, sc.forEvent(), e.Line)
	if err != nil || st.IsContinue() {
		return symbols.Forward[*symbols.Event](st), err
	}
	return symbols.Done(&symbols.Event{Name: name, Action: st.Value, Line: e.Line}), nil
}

// ParseEventName parses `click`, `global-key[ctrl-s]` or
// `rive-play[timeline]`.
func ParseEventName(text, docID string, line int) (symbols.EventName, error) {
	base, data, bracketed := text, "", false
	if open := strings.Index(text, "["); open >= 0 && strings.HasSuffix(text, "]") {
		base, data, bracketed = text[:open], text[open+1:len(text)-1], true
	}
	kind, ok := symbols.EventKindByName(base)
	if !ok {
		return symbols.EventName{}, diagnostics.Parsef(docID, line, "unknown event `%s`", text)
	}
	name := symbols.EventName{Kind: kind}
	switch kind {
	case symbols.EventGlobalKey, symbols.EventGlobalKeySeq:
		if !bracketed || data == "" {
			return symbols.EventName{}, diagnostics.Parsef(docID, line, "event `%s` needs a key list", text)
		}
		name.Keys = strings.Split(data, "-")
	case symbols.EventRivePlay, symbols.EventRivePause, symbols.EventRiveStateChange:
		if !bracketed || data == "" {
			return symbols.EventName{}, diagnostics.Parsef(docID, line, "event `%s` needs a timeline", text)
		}
		name.Timeline = data
	default:
		if bracketed {
			return symbols.EventName{}, diagnostics.Parsef(docID, line, "event `%s` takes no data", base)
		}
	}
	return name, nil
}

