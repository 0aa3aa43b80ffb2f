// Package validate provides validation rules and validators for HL7 v2.x messages.
//
// The validate package enables comprehensive validation of HL7 messages against
// configurable rules. It supports required field checking, value constraints,
// pattern matching, length validation, and custom validation functions.
//
// # Basic Usage
//
// Build rules with At, then create a validator and validate a message:
//
//	v := validate.New(
//	    validate.At("MSH.9").Required().Build(),   // Message type required
//	    validate.At("MSH.10").Required().Build(),  // Control ID required
//	    validate.At("PID.3.1").Required().Build(),  // Patient ID required
//	)
//
//	result := v.Validate(msg)
//	if !result.Valid() {
//	    for _, err := range result.Errors() {
//	        log.Printf("Validation error: %v", err)
//	    }
//	}
//
// # Built-in Validation Rules
//
// At returns a RuleBuilder; each builder method appends a rule for that location.
//
// Required - Ensures a field is present and non-empty:
//
//	validate.At("PID.3.1").Required().Build()
//	validate.At("PID.5").Required().WithDescription("Patient name is required").Build()
//
// Value - Ensures a field has a specific value:
//
//	validate.At("MSH.9.1").Value("ADT").Build()  // Message type must be ADT
//	validate.At("MSH.11").Value("P").Build()     // Processing ID must be Production
//
// Pattern - Validates against a regular expression:
//
//	// Date format: YYYYMMDD
//	validate.At("PID.7").Pattern(`^\d{8}$`).Build()
//
//	// Phone number format
//	validate.At("PID.13").Pattern(`^\(\d{3}\)\d{3}-\d{4}$`).Build()
//
// Length - Validates field length:
//
//	validate.At("PID.3.1").Length(1, 20).Build()  // ID between 1-20 chars
//	validate.At("PID.5").Length(1, 0).Build()     // Name at least 1 char, no max
//
// OneOf - Validates against a list of allowed values:
//
//	validate.At("PID.8").OneOf("M", "F", "O", "U").Build()  // Gender codes
//	validate.At("MSH.11").OneOf("P", "T", "D").Build()      // Processing IDs
//
// Custom - Validates with a custom function:
//
//	validate.At("PID.7").Custom(func(value string) error {
//	    _, err := time.Parse("20060102", value)
//	    if err != nil {
//	        return fmt.Errorf("invalid date format")
//	    }
//	    return nil
//	}).Build()
//
// # Combining Rules
//
// Chain builder calls to attach multiple rules to the same location; Build
// wraps them in a composite rule that must pass in full:
//
//	// Patient ID must be present, 1-20 chars, alphanumeric
//	patientIDRule := validate.At("PID.3.1").
//	    Required().
//	    Length(1, 20).
//	    Pattern(`^[A-Z0-9]+$`).
//	    Build()
//
//	v := validate.New(patientIDRule)
//
// # RuleSets
//
// RuleSet groups related rules and lets them be merged. The package ships
// standard sets per segment and per message type:
//
//	v := validate.NewWithRuleSet(validate.ADTRules())   // MSH + PID
//	v := validate.NewWithRuleSet(validate.ORURules())   // MSH + PID + OBR + OBX
//
//	// Build a custom set
//	custom := validate.MSHRules().Merge(validate.PIDRules()).Add(
//	    validate.At("PV1.2").Required().Build(),
//	)
//
// # Message Type Specific Validation
//
// Create validators for specific message types by composing At-built rules:
//
//	// ADT^A01 (Admit) validator
//	adtA01Validator := validate.New(
//	    // MSH requirements
//	    validate.At("MSH.9").Required().Build(),
//	    validate.At("MSH.9.1").Value("ADT").Build(),
//	    validate.At("MSH.9.2").Value("A01").Build(),
//
//	    // PID requirements
//	    validate.At("PID.3.1").Required().Build(), // Patient ID
//	    validate.At("PID.5").Required().Build(),   // Patient Name
//	    validate.At("PID.7").Required().Build(),   // DOB
//	    validate.At("PID.8").OneOf("M", "F", "O", "U").Build(),
//
//	    // PV1 requirements for admit
//	    validate.At("PV1.2").Required().Build(),  // Patient class
//	    validate.At("PV1.3").Required().Build(),  // Assigned location
//	    validate.At("PV1.44").Required().Build(), // Admit date/time
//	)
//
// # Validation Results
//
// Validate returns a ValidationResult carrying detailed errors:
//
//	result := v.Validate(msg)
//	for _, err := range result.Errors() {
//	    fmt.Printf("Location: %s\n", err.Location)
//	    fmt.Printf("Rule: %s\n", err.Rule)
//	    fmt.Printf("Message: %s\n", err.Message)
//	    if err.Expected != "" {
//	        fmt.Printf("Expected: %s\n", err.Expected)
//	    }
//	    if err.Actual != "" {
//	        fmt.Printf("Actual: %s\n", err.Actual)
//	    }
//	}
//
// # Creating Custom Rules
//
// Implement the Rule interface for custom validation logic. Validate takes a
// Queryable, the subset of *hl7.Message (or a wrapped segment, via
// ValidateSegment) that exposes Get(location):
//
//	type Rule interface {
//	    Validate(msg validate.Queryable) []ValidationError
//	    Location() string
//	    Description() string
//	}
//
// Example custom rule:
//
//	type dateRangeRule struct {
//	    location string
//	    min, max time.Time
//	}
//
//	func (r *dateRangeRule) Validate(msg validate.Queryable) []ValidationError {
//	    value, err := msg.Get(r.location)
//	    if err != nil || value == "" {
//	        return nil // Let required rule handle presence
//	    }
//
//	    date, err := time.Parse("20060102", value)
//	    if err != nil {
//	        return []ValidationError{{
//	            Location: r.location,
//	            Rule:     "dateRange",
//	            Message:  "invalid date format",
//	        }}
//	    }
//
//	    if date.Before(r.min) || date.After(r.max) {
//	        return []ValidationError{{
//	            Location: r.location,
//	            Rule:     "dateRange",
//	            Message:  "date out of range",
//	            Expected: fmt.Sprintf("%s to %s",
//	                r.min.Format("2006-01-02"),
//	                r.max.Format("2006-01-02")),
//	            Actual:   date.Format("2006-01-02"),
//	        }}
//	    }
//
//	    return nil
//	}
//
// # Example: ORU Message Validation
//
//	// Validator for ORU^R01 (Lab Results)
//	oruValidator := validate.New(
//	    // Message header
//	    validate.At("MSH.9").Required().Build(),
//	    validate.At("MSH.9.1").Value("ORU").Build(),
//	    validate.At("MSH.9.2").Value("R01").Build(),
//
//	    // Patient identification
//	    validate.At("PID.3.1").Required().Build(),
//	    validate.At("PID.5").Required().Build(),
//
//	    // Order information
//	    validate.At("OBR.4").Required().Build(), // Universal service ID
//	    validate.At("OBR.7").Required().Build(), // Observation date/time
//
//	    // These check the first OBX segment only
//	    validate.At("OBX.3").Required().Build(),
//	    validate.At("OBX.5").Required().Build(),
//	    validate.At("OBX.11").OneOf("F", "C", "P", "I").Build(), // Result status
//	)
//
//	// Validate incoming lab result
//	msg, _ := parse.New().Parse(labData)
//	result := oruValidator.Validate(msg)
//	if !result.Valid() {
//	    return fmt.Errorf("invalid ORU message: %d validation errors", len(result.Errors()))
//	}
package validate
