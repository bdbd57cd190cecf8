package session

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Well-known state keys. Keys are namespaced by feature so independent
// features never collide in the state document.
const (
	// StateKeyActiveVehicle holds the vehicle the conversation is about.
	StateKeyActiveVehicle = "vehicle.active_profile"

	// StateKeyDiagnosticLevel holds the diagnostic-accuracy tier the
	// assistant is operating at for this session.
	StateKeyDiagnosticLevel = "diagnostic.level"

	// StateKeyUnits holds the user's measurement-unit preference.
	StateKeyUnits = "prefs.units"
)

// ActiveVehicle is the state document stored under StateKeyActiveVehicle.
// ProfileID references a saved profile for persistent owners; the inline
// fields carry enough to keep working if that profile is later deleted.
type ActiveVehicle struct {
	ProfileID string `json:"profile_id,omitempty"`
	VIN       string `json:"vin,omitempty"`
	Year      int    `json:"year,omitempty"`
	Make      string `json:"make,omitempty"`
	Model     string `json:"model,omitempty"`
	Trim      string `json:"trim,omitempty"`
	Mileage   int    `json:"mileage,omitempty"`
}

// DiagnosticLevel is the state document stored under StateKeyDiagnosticLevel.
type DiagnosticLevel struct {
	Level string `json:"level"`
}

// Diagnostic accuracy levels.
const (
	DiagnosticBasic    = "basic"
	DiagnosticStandard = "standard"
	DiagnosticAdvanced = "advanced"
)

// UnitsPreference is the state document stored under StateKeyUnits.
type UnitsPreference struct {
	System string `json:"system"` // "metric" or "imperial"
}

// stateCodec validates the raw JSON stored under one well-known key.
// Storage itself stays schema-flexible; validation happens at the write
// boundary so each feature's state shape is checked where it enters.
type stateCodec func(raw json.RawMessage) error

func strictDecode(raw json.RawMessage, into any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(into)
}

var stateCodecs = map[string]stateCodec{
	StateKeyActiveVehicle: func(raw json.RawMessage) error {
		var v ActiveVehicle
		return strictDecode(raw, &v)
	},
	StateKeyDiagnosticLevel: func(raw json.RawMessage) error {
		var d DiagnosticLevel
		if err := strictDecode(raw, &d); err != nil {
			return err
		}
		switch d.Level {
		case DiagnosticBasic, DiagnosticStandard, DiagnosticAdvanced:
			return nil
		default:
			return fmt.Errorf("unknown diagnostic level %q", d.Level)
		}
	},
	StateKeyUnits: func(raw json.RawMessage) error {
		var u UnitsPreference
		if err := strictDecode(raw, &u); err != nil {
			return err
		}
		if u.System != "metric" && u.System != "imperial" {
			return fmt.Errorf("unknown unit system %q", u.System)
		}
		return nil
	},
}

// ValidateStateValue checks a state value before it is written. Values must
// be valid JSON; values under well-known keys must additionally match that
// key's document schema. Unknown keys remain schema-flexible.
func ValidateStateValue(key string, raw json.RawMessage) error {
	if len(raw) == 0 {
		return fmt.Errorf("state value for %q is empty", key)
	}
	if !json.Valid(raw) {
		return fmt.Errorf("state value for %q is not valid JSON", key)
	}
	if codec, ok := stateCodecs[key]; ok {
		if err := codec(raw); err != nil {
			return fmt.Errorf("state value for %q: %w", key, err)
		}
	}
	return nil
}
