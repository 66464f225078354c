package validator

// Rule is a deferred check plus the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

func newRule(field, code, msg string, check func() bool, params ...any) Rule {
	p := map[string]any{"field": field}
	for i := 0; i+1 < len(params); i += 2 {
		if k, ok := params[i].(string); ok {
			p[k] = params[i+1]
		}
	}
	return Rule{
		Check: check,
		Error: ValidationError{Field: field, Message: msg, Code: "validation." + code, Params: p},
	}
}

// WithMessage returns a copy of r reporting msg instead.
func (r Rule) WithMessage(msg string) Rule {
	r.Error.Message = msg
	return r
}

// When makes rule pass unconditionally unless cond holds.
func When(cond bool, rule Rule) Rule {
	check := rule.Check
	rule.Check = func() bool { return !cond || check() }
	return rule
}

// Apply runs every rule and returns ValidationErrors for the ones that
// failed, or nil.
func Apply(rules ...Rule) error {
	var failed ValidationErrors
	for _, r := range rules {
		if !r.Check() {
			failed = append(failed, r.Error)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return failed
}
