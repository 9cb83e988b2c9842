package template

import "fmt"

// edgeMargin is the minimum clearance between the outermost pin center
// and the body corner, used by the fit predicate for perimeter families.
const edgeMargin = 0.2

// Validate checks a template against its family's validity predicate and
// returns every violated constraint. An empty slice means the template
// is usable for generation.
func Validate(t *Template) []ValidationError {
	var errs []ValidationError

	add := func(param string, err error) {
		errs = append(errs, ValidationError{Family: t.Family, Parameter: param, Err: err})
	}

	for _, dim := range []struct {
		name  string
		value float64
	}{
		{"body_width", t.BodyWidth},
		{"body_length", t.BodyLength},
		{"body_height", t.BodyHeight},
		{"pitch", t.Pitch},
	} {
		if dim.value <= 0 {
			add(dim.name, fmt.Errorf("%w: got %g", ErrBadDimension, dim.value))
		}
	}
	if t.PinCount <= 0 {
		add("pin_count", fmt.Errorf("%w: got %d", ErrBadDimension, t.PinCount))
	}

	// Shape predicates below divide by pitch and pin count; bail out
	// before producing nonsense follow-on errors.
	if len(errs) > 0 {
		return errs
	}

	switch t.Shape() {
	case ShapeQuad:
		if t.PerimeterPinCount()%4 != 0 {
			add("pin_count", fmt.Errorf("%w: quad count %d not divisible by 4", ErrPinCountShape, t.PerimeterPinCount()))
			break
		}
		span := float64(t.PinsPerSide()-1) * t.Pitch
		if span > t.BodyWidth-2*edgeMargin || span > t.BodyLength-2*edgeMargin {
			add("pitch", fmt.Errorf("%w: array span %.3gmm on %gx%gmm body", ErrBodyOverflow, span, t.BodyWidth, t.BodyLength))
		}
		if !t.Leadless() && t.LeadSpan <= t.BodyWidth {
			add("lead_span", fmt.Errorf("%w: lead span %gmm must exceed body width %gmm", ErrTemplateInvalid, t.LeadSpan, t.BodyWidth))
		}

	case ShapeDual:
		if t.PerimeterPinCount()%2 != 0 {
			add("pin_count", fmt.Errorf("%w: dual count %d not divisible by 2", ErrPinCountShape, t.PerimeterPinCount()))
			break
		}
		span := float64(t.PinsPerSide()-1) * t.Pitch
		if span > t.BodyLength-2*edgeMargin {
			add("pitch", fmt.Errorf("%w: row span %.3gmm on %gmm body", ErrBodyOverflow, span, t.BodyLength))
		}

	case ShapeArray:
		if t.Rows <= 0 || t.Columns <= 0 {
			add("rows", fmt.Errorf("%w: %dx%d grid", ErrBadDimension, t.Rows, t.Columns))
			break
		}
		if t.BallDiameter <= 0 {
			add("ball_diameter", fmt.Errorf("%w: got %g", ErrBadDimension, t.BallDiameter))
		}
		if populated := t.Rows*t.Columns - len(t.Depopulated); populated != t.PinCount {
			add("pin_count", fmt.Errorf("%w: grid holds %d populated balls, pin_count is %d", ErrTemplateInvalid, populated, t.PinCount))
		}
		if float64(t.Columns-1)*t.Pitch > t.BodyWidth || float64(t.Rows-1)*t.Pitch > t.BodyLength {
			add("pitch", fmt.Errorf("%w: ball grid exceeds %gx%gmm body", ErrBodyOverflow, t.BodyWidth, t.BodyLength))
		}
	}

	if t.ThermalPad != nil {
		if t.ThermalPad.Width <= 0 || t.ThermalPad.Height <= 0 {
			add("thermal_pad", fmt.Errorf("%w: %gx%gmm", ErrBadDimension, t.ThermalPad.Width, t.ThermalPad.Height))
		} else if t.ThermalPad.Width >= t.BodyWidth || t.ThermalPad.Height >= t.BodyLength {
			add("thermal_pad", fmt.Errorf("%w: thermal pad %gx%gmm exceeds body", ErrBodyOverflow, t.ThermalPad.Width, t.ThermalPad.Height))
		}
	}

	return errs
}
