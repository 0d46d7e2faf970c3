package puzzle

import (
	"testing"
)

// Make sure error messages never panic and are never empty.  The
// testing of individual cases (and removal of unused errors) we
// leave to the functional testing done of other files.
func TestErrorNoPanicNoEmpty(t *testing.T) {
	defer (func() {
		if e := recover(); e != nil {
			t.Fatalf("Panic during testing: %v", e)
		}
	})()
	for sc := int(UnknownScope); sc <= int(MaxScope); sc++ {
		for st := int(UnknownStructure); st < int(MaxStructure); st++ {
			for at := int(UnknownAttribute); at < int(MaxAttribute); at++ {
				for co := int(UnknownCondition); co < int(MaxCondition); co++ {
					e := Error{
						Scope:     ErrorScope(sc),
						Structure: ErrorStructure(st),
						Attribute: ErrorAttribute(at),
						Condition: ErrorCondition(co),
					}
					m := e.Error()
					t.Log(m)
					if len(m) == 0 {
						t.Errorf("Empty error message for %+v", e)
					}
				}
			}
		}
	}
}

func TestErrorClassification(t *testing.T) {
	gen := Error{
		Scope:     GenerationScope,
		Structure: ScopeStructure,
		Condition: RetriesExhaustedCondition,
		Values:    ErrorData{192},
	}
	if !IsGenerationFailure(gen) {
		t.Errorf("Generation failure not classified as one: %v", gen)
	}
	if IsContradiction(gen) {
		t.Errorf("Generation failure classified as contradiction: %v", gen)
	}
	con := Error{
		Scope:     BoardScope,
		Structure: AttributeValueStructure,
		Attribute: CellAttribute,
		Condition: ContradictionCondition,
		Values:    ErrorData{Cell{1, 2}},
	}
	if !IsContradiction(con) {
		t.Errorf("Contradiction not classified as one: %v", con)
	}
	if IsGenerationFailure(con) {
		t.Errorf("Contradiction classified as generation failure: %v", con)
	}
	if IsGenerationFailure(nil) || IsContradiction(nil) {
		t.Errorf("nil error classified as a puzzle condition")
	}
}

func TestErrorCustomMessage(t *testing.T) {
	e := Error{Message: "pre-canned"}
	if e.Error() != "pre-canned" {
		t.Errorf("Custom message not used: %q", e.Error())
	}
}
