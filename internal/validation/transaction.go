package validation

import (
	"fmt"
	"strings"

	"tkbet/internal/models"
)

// ValidateAmount checks a requested amount against the method limits.
func ValidateAmount(amount, min, max float64) error {
	if amount <= 0 {
		return NewError(
			"Amount must be greater than zero",
			"এমাউন্ট শূন্যের চেয়ে বড় হতে হবে",
		)
	}
	if amount < min || amount > max {
		return NewError(
			fmt.Sprintf("Amount must be between %v and %v", min, max),
			fmt.Sprintf("এমাউন্ট %v থেকে %v এর মধ্যে হতে হবে", min, max),
		)
	}
	return nil
}

// ValidateRequiredInputs checks the submitted input values against the
// method's input descriptors. Every descriptor flagged required must have a
// non-empty value.
func ValidateRequiredInputs(descriptors []models.UserInputDescriptor, values []models.InputValue) error {
	byName := make(map[string]string, len(values))
	for _, v := range values {
		byName[v.Name] = strings.TrimSpace(v.Value)
	}
	for _, d := range descriptors {
		if !d.IsRequired.Bool() {
			continue
		}
		if byName[d.Name] == "" {
			label := d.Label
			if label == "" {
				label = d.Name
			}
			labelBD := d.LabelBD
			if labelBD == "" {
				labelBD = label
			}
			return NewError(
				fmt.Sprintf("%s is required", label),
				fmt.Sprintf("%s প্রয়োজন", labelBD),
			)
		}
	}
	return nil
}

// FindTrxID extracts the payment transaction ID from submitted inputs. Any
// field whose name contains "trxid" (case-insensitive) is treated as the
// carrier, matching how methods name the field in their input descriptors.
func FindTrxID(values []models.InputValue) string {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v.Name), "trxid") {
			return strings.TrimSpace(v.Value)
		}
	}
	return ""
}

// HasSpecialChar reports whether the string contains a non-alphanumeric
// character outside the small set allowed in wallet numbers.
func HasSpecialChar(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '+' || r == '-' || r == ' ':
		default:
			return true
		}
	}
	return false
}
