package domain

import (
	"fmt"
	"strings"
)

// ValidationCode classifies which rule failed.
type ValidationCode string

// Validation codes, in evaluation order.
const (
	ValidationOK                ValidationCode = ""
	ValidationMissingField      ValidationCode = "missing_field"
	ValidationMissingPhoto      ValidationCode = "missing_photo"
	ValidationIncompleteItems   ValidationCode = "incomplete_checklist"
	ValidationMissingSignatures ValidationCode = "missing_signatures"
)

// ValidationResult is the outcome of Validate. Focus names the field,
// item or signature role the user should fix first.
type ValidationResult struct {
	OK     bool           `json:"ok"`
	Code   ValidationCode `json:"code,omitempty"`
	Reason string         `json:"reason,omitempty"`
	Focus  string         `json:"focus,omitempty"`
}

// Err returns nil for a passing result and a *ValidationError otherwise.
func (r ValidationResult) Err() error {
	if r.OK {
		return nil
	}
	return &ValidationError{Result: r}
}

// requiredFields are checked in this order.
var requiredFields = []IdentityField{
	FieldClientName, FieldVehicleModel, FieldPlate, FieldColor, FieldOdometer, FieldDate, FieldRenterRG,
}

// Validate decides whether a record is ready for a report.
// Rules short-circuit in order: required identity fields, mandatory
// general photos, answered checklist items, then both signatures.
func Validate(in *Inspection, schema *Schema) ValidationResult {
	for _, f := range requiredFields {
		var missing bool
		if f == FieldDate {
			missing = in.Date.IsZero()
		} else {
			missing = strings.TrimSpace(in.Identity.Get(f)) == ""
		}
		if missing {
			return ValidationResult{
				Code:   ValidationMissingField,
				Reason: fmt.Sprintf("required field %q is empty", f.Label()),
				Focus:  f.String(),
			}
		}
	}

	for _, id := range schema.MandatoryPhotoItems() {
		if len(in.Photos[id]) > 0 {
			continue
		}
		name := id
		if item, ok := schema.Item(id); ok {
			name = item.Name
		}
		return ValidationResult{
			Code:   ValidationMissingPhoto,
			Reason: fmt.Sprintf("general photo required: %s", name),
			Focus:  id,
		}
	}

	for _, item := range schema.Items() {
		if !item.Kind.RequiresAnswer() {
			continue
		}
		if in.AnswerFor(item).IsEmpty() {
			return ValidationResult{
				Code:   ValidationIncompleteItems,
				Reason: fmt.Sprintf("checklist incomplete: %s has not been evaluated", item.Name),
				Focus:  item.ID,
			}
		}
	}

	switch {
	case in.InspectorSignature.IsAbsent():
		return ValidationResult{
			Code:   ValidationMissingSignatures,
			Reason: "inspector and renter signatures are required",
			Focus:  SignatureInspector.String(),
		}
	case in.RenterSignature.IsAbsent():
		return ValidationResult{
			Code:   ValidationMissingSignatures,
			Reason: "inspector and renter signatures are required",
			Focus:  SignatureRenter.String(),
		}
	}

	return ValidationResult{OK: true}
}
