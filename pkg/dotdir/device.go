package dotdir

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/motorlogic/garage/pkg/session"
)

const (
	deviceFile = "device.json"
)

// DeviceState represents the persisted identity of this installation.
// It carries the stable device id presented to the sync engine and the clock
// of the last operation this device has applied, which is where incremental
// sync resumes after a restart.
type DeviceState struct {
	// DeviceID is the stable identifier for this installation.
	DeviceID string `json:"device_id"`

	// OwnerID is the owner this device last synced as. Guest owners
	// (guest_ prefix) are ephemeral and replaced on sign-in.
	OwnerID string `json:"owner_id,omitempty"`

	// LastSynced is the clock of the newest operation applied locally.
	LastSynced session.Clock `json:"last_synced"`
}

// LoadDeviceState loads the device state from a target .garage/device.json.
// Returns nil, nil if no device state exists (fresh installation).
// If overrideDir is non-empty, it is used instead of the default ~/.garage/ location.
func (m *Manager) LoadDeviceState(overrideDir string) (*DeviceState, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, deviceFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading device state: %w", err)
	}

	state := &DeviceState{}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing device state: %w", err)
	}

	return state, nil
}

// SaveDeviceState persists the device state to a target .garage/device.json.
func (m *Manager) SaveDeviceState(state *DeviceState, overrideDir string) error {
	if state == nil {
		return errors.New("cannot save nil device state")
	}

	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling device state: %w", err)
	}

	path := filepath.Join(dir, deviceFile)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing device state: %w", err)
	}

	return nil
}

// ClearDeviceState removes the device state file.
// This resets the installation so the next run registers as a new device.
// If overrideDir is non-empty, it is used instead of the default ~/.garage/ location.
// Returns nil if the file doesn't exist (already cleared).
func (m *Manager) ClearDeviceState(overrideDir string) error {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, deviceFile)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("removing device state: %w", err)
	}

	return nil
}
