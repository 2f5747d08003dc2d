package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Payment method kinds
const (
	MethodKindDeposit  = "deposit"
	MethodKindWithdraw = "withdraw"
)

// User input field types accepted by the config boundary.
var UserInputTypes = []string{"text", "number", "tel"}

// FlexBool unmarshals both proper booleans and the legacy "true"/"false"
// strings the original method configs were stored with.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	s := strings.ToLower(strings.Trim(string(data), `"`))
	switch s {
	case "true", "1":
		*b = true
	case "false", "0", "", "null":
		*b = false
	default:
		return fmt.Errorf("invalid boolean value %q", s)
	}
	return nil
}

func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

func (b FlexBool) Bool() bool { return bool(b) }

// UserInputDescriptor describes one named field the user must fill when
// submitting a transaction for this method (e.g. the TrxID).
type UserInputDescriptor struct {
	Name               string   `json:"name"`
	Label              string   `json:"label"`
	LabelBD            string   `json:"labelBD"`
	Type               string   `json:"type"`
	IsRequired         FlexBool `json:"isRequired"`
	FieldInstruction   string   `json:"fieldInstruction,omitempty"`
	FieldInstructionBD string   `json:"fieldInstructionBD,omitempty"`
}

// UserInputList stores the ordered descriptors as jsonb.
type UserInputList []UserInputDescriptor

func (l UserInputList) Value() (driver.Value, error) { return json.Marshal(l) }
func (l *UserInputList) Scan(value interface{}) error { return scanJSON(value, l) }

// PaymentMethod is the static configuration for one deposit or withdrawal
// channel. Created and edited by administrators, read-only to the storefront.
// Soft-deleted so transactions keep a resolvable reference.
type PaymentMethod struct {
	gorm.Model
	MethodName        string `gorm:"not null"`
	MethodNameBD      string
	Kind              string       `gorm:"not null;index"` // deposit | withdraw
	Gateways          StringSlice  `gorm:"type:jsonb"`     // e.g. bKash, Nagad, Rocket
	Amounts           Float64Slice `gorm:"type:jsonb"`     // quick-pick amounts
	MinAmount         float64      `gorm:"default:100"`
	MaxAmount         float64      `gorm:"default:25000"`
	AgentWalletNumber string
	MethodImage       string
	ButtonColor       string
	Instruction       string
	InstructionBD     string
	UserInputs        UserInputList `gorm:"type:jsonb"`
	Status            string        `gorm:"default:'active';index"`
}

// HasGateway reports whether channel is one of the method's gateways.
// Channel names are matched case-insensitively.
func (m *PaymentMethod) HasGateway(channel string) bool {
	for _, g := range m.Gateways {
		if strings.EqualFold(g, channel) {
			return true
		}
	}
	return false
}

// Validate checks a method config once, at the admin boundary. Consumers can
// then rely on descriptor names being unique and field types being known.
func (m *PaymentMethod) Validate() error {
	if m.MethodName == "" {
		return fmt.Errorf("methodName is required")
	}
	if m.Kind != MethodKindDeposit && m.Kind != MethodKindWithdraw {
		return fmt.Errorf("kind must be %q or %q", MethodKindDeposit, MethodKindWithdraw)
	}
	if m.MinAmount > m.MaxAmount {
		return fmt.Errorf("minAmount %v exceeds maxAmount %v", m.MinAmount, m.MaxAmount)
	}
	seen := make(map[string]bool, len(m.UserInputs))
	for _, input := range m.UserInputs {
		if input.Name == "" {
			return fmt.Errorf("user input with empty name")
		}
		if seen[input.Name] {
			return fmt.Errorf("duplicate user input name %q", input.Name)
		}
		seen[input.Name] = true
		if !validInputType(input.Type) {
			return fmt.Errorf("user input %q has unknown type %q", input.Name, input.Type)
		}
	}
	return nil
}

func validInputType(t string) bool {
	for _, known := range UserInputTypes {
		if t == known {
			return true
		}
	}
	return false
}
