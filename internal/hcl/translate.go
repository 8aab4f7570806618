package hcl

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/plancreator/internal/config"
	"github.com/vk/plancreator/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// translate converts the decoded blocks of one file into a model.
func (l *Loader) translate(ctx context.Context, root *fileRoot) (*config.Model, error) {
	model := config.New()

	if e := root.Engine; e != nil {
		if e.Workers != nil {
			if *e.Workers <= 0 {
				return nil, fmt.Errorf("engine: workers must be positive, got %d", *e.Workers)
			}
			model.Engine.Workers = *e.Workers
		}
		if e.MaxRounds != nil {
			model.Engine.MaxRounds = *e.MaxRounds
		}
		timeout, err := durationValue(e.RoundTimeout)
		if err != nil {
			return nil, fmt.Errorf("engine: round_timeout: %w", err)
		}
		model.Engine.RoundTimeout = timeout
	}

	if lg := root.Logging; lg != nil {
		if lg.Level != nil {
			model.Logging.Level = *lg.Level
		}
		if lg.Format != nil {
			model.Logging.Format = *lg.Format
		}
	}

	for _, st := range root.StepTypes {
		if _, exists := model.StepTypes[st.Name]; exists {
			return nil, fmt.Errorf("step_type %q is declared more than once", st.Name)
		}
		def, err := translateStepType(ctx, st)
		if err != nil {
			return nil, err
		}
		model.StepTypes[st.Name] = def
	}
	return model, nil
}

func translateStepType(ctx context.Context, s *stepTypeBlock) (*config.StepType, error) {
	def := &config.StepType{Name: s.Name, Defaults: cty.NilVal}
	if s.Facilitator != nil {
		def.Facilitator = *s.Facilitator
	}

	val, err := staticValue(s.Defaults)
	if err != nil {
		return nil, fmt.Errorf("step_type %q: defaults: %w", s.Name, err)
	}
	if !val.IsNull() {
		ty := val.Type()
		if !ty.IsObjectType() && !ty.IsMapType() {
			return nil, fmt.Errorf("step_type %q: defaults must be an object, got %s", s.Name, ty.FriendlyName())
		}
		def.Defaults = val
	}

	ctxlog.FromContext(ctx).Debug("Translated step type.", "type", s.Name, "facilitator", def.Facilitator, "has_defaults", !val.IsNull())
	return def, nil
}

// staticValue evaluates an optional attribute that may not reference
// variables. A missing attribute yields a null value.
func staticValue(expr hcl.Expression) (cty.Value, error) {
	if expr == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return val, nil
}

// durationValue accepts either a Go duration string ("90s") or a number of
// seconds.
func durationValue(expr hcl.Expression) (time.Duration, error) {
	val, err := staticValue(expr)
	if err != nil {
		return 0, err
	}
	if val.IsNull() {
		return 0, nil
	}

	if val.Type() == cty.Number {
		var seconds float64
		if err := gocty.FromCtyValue(val, &seconds); err != nil {
			return 0, err
		}
		if seconds <= 0 {
			return 0, fmt.Errorf("must be positive, got %v", seconds)
		}
		return time.Duration(seconds * float64(time.Second)), nil
	}

	strVal, err := convert.Convert(val, cty.String)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %s to a duration: %w", val.Type().FriendlyName(), err)
	}
	var s string
	if err := gocty.FromCtyValue(strVal, &s); err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}
