package dependencies

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/elements"
	"github.com/funvibe/ftdc/internal/evaluator"
	"github.com/funvibe/ftdc/internal/styles"
	"github.com/funvibe/ftdc/internal/symbols"
	"github.com/funvibe/ftdc/internal/typesystem"
)

// deviceBreakpoints are the device states a type variable switches between.
var deviceBreakpoints = []string{"mobile", "xl", "desktop"}

// Variables records the dependencies between global variables of the
// documents in docIDs: a variable whose value reads another global
// depends on it, color and image-src variables depend on the dark mode
// and type variables on the device.
func Variables(eval *evaluator.Evaluator, docIDs []string, m *elements.DependencyMap) error {
	st := eval.Symbols()
	for _, docID := range docIDs {
		for _, name := range st.DocumentNames(docID) {
			t, _ := st.Find(name)
			v, ok := t.(*symbols.Variable)
			if !ok || v.Value == nil {
				continue
			}
			for _, u := range eval.Trace(v.Value, evaluator.NewEnv()) {
				if u.Variable == v.Name {
					continue
				}
				d := variableDependency(nil)
				if u.Remaining != "" {
					remaining := u.Remaining
					d.Remaining = &remaining
				}
				elements.AddDependency(m, u.Variable, v.Name, d)
			}
			if err := pseudoVariables(eval, v, m); err != nil {
				return err
			}
		}
	}
	return nil
}

func variableDependency(condition any) *elements.Dependency {
	return &elements.Dependency{
		Type:       elements.DependencyVariable,
		Condition:  condition,
		Parameters: orderedmap.New[string, *elements.Parameter](),
	}
}

func pseudoVariables(eval *evaluator.Evaluator, v *symbols.Variable, m *elements.DependencyMap) error {
	rec, ok := typesystem.Inner(typesystem.StripConstant(v.Kind.Kind)).(typesystem.KRecord)
	if !ok {
		return nil
	}
	switch rec.Name {
	case config.ColorRecord, config.ImageSrcRecord:
		light, dark, ok, err := sides(eval, v)
		if err != nil || !ok {
			return err
		}
		if rec.Name == config.ColorRecord {
			c, err := styles.NewColor(light, dark)
			if err != nil {
				doc, _, _ := symbols.SplitQualified(v.Name)
				return diagnostics.Parsef(doc, v.Line, "`%s`: %v", v.Name, err)
			}
			light = c.ToCSSString(styles.Target{})
			dark = c.ToCSSString(styles.Target{DarkMode: true})
		}
		d := variableDependency(true)
		d.Parameters.Set("value", &elements.Parameter{
			Value:   elements.ConditionalValue{Value: dark},
			Default: &elements.ConditionalValue{Value: light},
		})
		elements.AddDependency(m, config.DarkModeVariable, v.Name, d)
	case config.TypeRecord, config.ResponsiveTypeRecord:
		for _, device := range deviceBreakpoints {
			elements.AddDependency(m, config.DeviceVariable, v.Name, variableDependency(device))
		}
	}
	return nil
}

// sides reads the light and dark fields of a color or image-src variable.
// A missing dark side repeats the light one.
func sides(eval *evaluator.Evaluator, v *symbols.Variable) (string, string, bool, error) {
	val, err := eval.Resolve(v.Value, evaluator.NewEnv())
	if err != nil {
		return "", "", false, err
	}
	r, ok := symbols.Unwrap(val).(*symbols.RecordValue)
	if !ok {
		return "", "", false, nil
	}
	field := func(name string) (string, error) {
		pv, ok := r.Field(name)
		if !ok {
			return "", nil
		}
		fv, err := eval.Resolve(pv, evaluator.NewEnv())
		if err != nil {
			return "", err
		}
		s, _ := symbols.Text(symbols.Unwrap(fv))
		return s, nil
	}
	light, err := field("light")
	if err != nil {
		return "", "", false, err
	}
	dark, err := field("dark")
	if err != nil {
		return "", "", false, err
	}
	if dark == "" {
		dark = light
	}
	return light, dark, true, nil
}
