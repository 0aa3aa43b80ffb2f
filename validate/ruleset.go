package validate

import "fmt"

// RuleSet is a reusable, combinable collection of validation rules.
type RuleSet interface {
	Rules() []Rule
	Add(rules ...Rule) RuleSet
	Merge(other RuleSet) RuleSet
}

type ruleSet struct {
	rules []Rule
}

// NewRuleSet builds a RuleSet out of the given rules.
func NewRuleSet(rules ...Rule) RuleSet {
	rs := &ruleSet{rules: make([]Rule, 0, len(rules))}
	rs.rules = append(rs.rules, rules...)
	return rs
}

func (rs *ruleSet) Rules() []Rule {
	if len(rs.rules) == 0 {
		return []Rule{}
	}
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

func (rs *ruleSet) Add(rules ...Rule) RuleSet {
	rs.rules = append(rs.rules, rules...)
	return rs
}

func (rs *ruleSet) Merge(other RuleSet) RuleSet {
	if other == nil {
		return NewRuleSet(rs.rules...)
	}
	combined := make([]Rule, 0, len(rs.rules)+len(other.Rules()))
	combined = append(combined, rs.rules...)
	combined = append(combined, other.Rules()...)
	return NewRuleSet(combined...)
}

// Field numbers standard rulesets check, named to avoid bare magic numbers
// wherever a rule location is built below. These mirror the accessors in
// the segments package (MSH, PID, PV1, OBR, OBX, ORC) without importing it,
// since validate only ever needs the field's ordinal, not its decoded value.
const (
	mshMessageType  = 9
	mshControlID    = 10
	mshVersionID    = 12
	pidIdentifier   = 3
	pv1PatientClass = 2
	obrServiceID    = 4
	obxValueType    = 2
	obxObservation  = 3
	orcOrderControl = 1
)

func field(segment string, n int) string {
	return fmt.Sprintf("%s.%d", segment, n)
}

// MSHRules validates the minimum fields every message needs to be routable:
// message type, control ID, and version.
func MSHRules() RuleSet {
	return NewRuleSet(
		At(field("MSH", mshMessageType)).Required().WithDescription("Message Type is required").Build(),
		At(field("MSH", mshControlID)).Required().WithDescription("Message Control ID is required").Build(),
		At(field("MSH", mshVersionID)).Required().WithDescription("Version ID is required").Build(),
	)
}

// PIDRules validates the patient identifier is present.
func PIDRules() RuleSet {
	return NewRuleSet(
		At(field("PID", pidIdentifier)).Required().WithDescription("Patient Identifier is required").Build(),
	)
}

// PV1Rules validates the patient class is present.
func PV1Rules() RuleSet {
	return NewRuleSet(
		At(field("PV1", pv1PatientClass)).Required().WithDescription("Patient Class is required").Build(),
	)
}

// OBRRules validates the ordered service identifier is present.
func OBRRules() RuleSet {
	return NewRuleSet(
		At(field("OBR", obrServiceID)).Required().WithDescription("Universal Service Identifier is required").Build(),
	)
}

// OBXRules validates the observation's value type and identifier are present.
func OBXRules() RuleSet {
	return NewRuleSet(
		At(field("OBX", obxValueType)).Required().WithDescription("Value Type is required").Build(),
		At(field("OBX", obxObservation)).Required().WithDescription("Observation Identifier is required").Build(),
	)
}

// ORCRules validates the order control code is present.
func ORCRules() RuleSet {
	return NewRuleSet(
		At(field("ORC", orcOrderControl)).Required().WithDescription("Order Control is required").Build(),
	)
}

// ADTRules covers Admit/Discharge/Transfer messages: MSH + PID.
func ADTRules() RuleSet {
	return MSHRules().Merge(PIDRules())
}

// ORURules covers Observation Result messages: MSH, PID, OBR, OBX.
func ORURules() RuleSet {
	return MSHRules().Merge(PIDRules()).Merge(OBRRules()).Merge(OBXRules())
}

// ORMRules covers Order messages: MSH, PID, OBR.
func ORMRules() RuleSet {
	return MSHRules().Merge(PIDRules()).Merge(OBRRules())
}

// ORMWithOrderControlRules covers Order messages whose ORC-1 order control
// code also needs validating, layering ORCRules on top of ORMRules.
func ORMWithOrderControlRules() RuleSet {
	return ORMRules().Merge(ORCRules())
}

// StandardRules is the minimum ruleset applicable to every HL7 message.
func StandardRules() RuleSet {
	return MSHRules()
}
