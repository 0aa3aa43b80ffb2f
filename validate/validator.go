package validate

import (
	"github.com/dshills/hl7cursor/hl7"
)

// ValidationResult represents the outcome of validating an HL7 message.
type ValidationResult interface {
	// Valid returns true if no validation errors occurred.
	Valid() bool
	// Errors returns all validation errors encountered.
	Errors() []ValidationError
	// Warnings returns all validation warnings encountered.
	Warnings() []ValidationWarning
}

// Validator validates HL7 messages against a set of rules.
type Validator interface {
	// Validate applies all rules to the message and returns the result.
	Validate(msg Queryable) ValidationResult
	// ValidateSegment validates a specific segment against applicable rules.
	ValidateSegment(seg *hl7.Segment) ValidationResult
}

// validationResult is the concrete implementation of ValidationResult.
type validationResult struct {
	errors   []ValidationError
	warnings []ValidationWarning
}

// Valid returns true if no validation errors occurred.
func (r *validationResult) Valid() bool {
	return len(r.errors) == 0
}

// Errors returns all validation errors encountered.
func (r *validationResult) Errors() []ValidationError {
	if r.errors == nil {
		return []ValidationError{}
	}
	// Return a copy to prevent external modification
	result := make([]ValidationError, len(r.errors))
	copy(result, r.errors)
	return result
}

// Warnings returns all validation warnings encountered.
func (r *validationResult) Warnings() []ValidationWarning {
	if r.warnings == nil {
		return []ValidationWarning{}
	}
	// Return a copy to prevent external modification
	result := make([]ValidationWarning, len(r.warnings))
	copy(result, r.warnings)
	return result
}

// validator is the concrete implementation of Validator.
type validator struct {
	rules []Rule
}

// New creates a new Validator with the specified rules.
func New(rules ...Rule) Validator {
	return &validator{
		rules: rules,
	}
}

// NewWithRuleSet creates a new Validator from a RuleSet.
func NewWithRuleSet(rs RuleSet) Validator {
	return &validator{
		rules: rs.Rules(),
	}
}

// Validate applies all rules to the message and returns the result.
func (v *validator) Validate(msg Queryable) ValidationResult {
	result := &validationResult{
		errors:   make([]ValidationError, 0),
		warnings: make([]ValidationWarning, 0),
	}

	if msg == nil {
		result.errors = append(result.errors, ValidationError{
			Rule:    "validator",
			Message: "message is nil",
		})
		return result
	}

	for _, rule := range v.rules {
		if errs := rule.Validate(msg); len(errs) > 0 {
			result.errors = append(result.errors, errs...)
		}
	}

	return result
}

// ValidateSegment validates a specific segment against applicable rules.
// Only rules whose location starts with the segment name will be applied.
func (v *validator) ValidateSegment(seg *hl7.Segment) ValidationResult {
	result := &validationResult{
		errors:   make([]ValidationError, 0),
		warnings: make([]ValidationWarning, 0),
	}

	if seg == nil {
		result.errors = append(result.errors, ValidationError{
			Rule:    "validator",
			Message: "segment is nil",
		})
		return result
	}

	segName := seg.Name()

	// Create a wrapper that allows rules to query just this segment
	wrapper := &segmentWrapper{seg: seg}

	for _, rule := range v.rules {
		loc := rule.Location()
		// Check if this rule applies to the segment
		if len(loc) >= len(segName) && loc[:len(segName)] == segName {
			// Check for exact match or continuation with dot
			if len(loc) == len(segName) || loc[len(segName)] == '.' || loc[len(segName)] == '[' {
				if errs := rule.Validate(wrapper); len(errs) > 0 {
					result.errors = append(result.errors, errs...)
				}
			}
		}
	}

	return result
}

// segmentWrapper adapts a lone *hl7.Segment to Queryable so rule
// implementations written against a whole message can validate one segment
// in isolation. It resolves a location the same way path.go's message-level
// resolve does, minus the segment-selection step, since the segment is
// already chosen.
type segmentWrapper struct {
	seg *hl7.Segment
}

// Get implements Queryable against the wrapped segment.
func (w *segmentWrapper) Get(location string) (string, error) {
	loc, err := hl7.ParseLocation(location)
	if err != nil {
		return "", err
	}
	if loc.Segment != w.seg.Name() {
		return "", nil
	}

	var cur hl7.Element = w.seg
	if !loc.HasField() {
		return cur.Value(), nil
	}
	cur = cur.Child(loc.Field)

	rep := loc.Repetition
	if rep < 0 {
		rep = 0
	}
	cur = cur.Child(rep + 1)
	if !loc.HasComponent() {
		return cur.Value(), nil
	}
	cur = cur.Child(loc.Component)
	if !loc.HasSubComponent() {
		return cur.Value(), nil
	}
	return cur.Child(loc.SubComponent).Value(), nil
}
