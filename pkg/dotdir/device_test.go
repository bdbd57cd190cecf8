package dotdir_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motorlogic/garage/pkg/dotdir"
	"github.com/motorlogic/garage/pkg/session"
)

var _ = Describe("dotdir.Manager device state", func() {
	var tmpDir string
	var m *dotdir.Manager

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "dotdir-test-*")
		Expect(err).NotTo(HaveOccurred())
		m = dotdir.NewManager()
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Describe("LoadDeviceState", func() {
		It("returns nil when no device file exists", func() {
			state, err := m.LoadDeviceState(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(state).To(BeNil())
		})

		It("loads a valid device state", func() {
			data := `{"device_id":"phone-1","owner_id":"acct_42","last_synced":{"wall_micros":1700000000000000,"counter":3,"device":"phone-1"}}`
			err := os.WriteFile(filepath.Join(tmpDir, "device.json"), []byte(data), 0o600)
			Expect(err).NotTo(HaveOccurred())

			state, err := m.LoadDeviceState(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(state).NotTo(BeNil())
			Expect(state.DeviceID).To(Equal("phone-1"))
			Expect(state.OwnerID).To(Equal("acct_42"))
			Expect(state.LastSynced.WallMicros).To(Equal(int64(1700000000000000)))
			Expect(state.LastSynced.Counter).To(Equal(uint64(3)))
		})

		It("returns error for invalid JSON", func() {
			err := os.WriteFile(filepath.Join(tmpDir, "device.json"), []byte("not json"), 0o600)
			Expect(err).NotTo(HaveOccurred())

			state, err := m.LoadDeviceState(tmpDir)
			Expect(err).To(HaveOccurred())
			Expect(state).To(BeNil())
		})
	})

	Describe("SaveDeviceState", func() {
		It("persists device state to disk", func() {
			state := &dotdir.DeviceState{
				DeviceID:   "car-head-unit",
				OwnerID:    "acct_7",
				LastSynced: session.Clock{WallMicros: 42, Counter: 1, Device: "car-head-unit"},
			}

			err := m.SaveDeviceState(state, tmpDir)
			Expect(err).NotTo(HaveOccurred())

			_, err = os.Stat(filepath.Join(tmpDir, "device.json"))
			Expect(err).NotTo(HaveOccurred())

			loaded, err := m.LoadDeviceState(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(state))
		})

		It("returns error for nil state", func() {
			err := m.SaveDeviceState(nil, tmpDir)
			Expect(err).To(HaveOccurred())
		})

		It("overwrites existing device state", func() {
			first := &dotdir.DeviceState{DeviceID: "first"}
			second := &dotdir.DeviceState{DeviceID: "second"}

			Expect(m.SaveDeviceState(first, tmpDir)).To(Succeed())
			Expect(m.SaveDeviceState(second, tmpDir)).To(Succeed())

			loaded, err := m.LoadDeviceState(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.DeviceID).To(Equal("second"))
		})
	})

	Describe("ClearDeviceState", func() {
		It("removes the device file", func() {
			state := &dotdir.DeviceState{DeviceID: "to-clear"}
			Expect(m.SaveDeviceState(state, tmpDir)).To(Succeed())

			Expect(m.ClearDeviceState(tmpDir)).To(Succeed())

			loaded, err := m.LoadDeviceState(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(BeNil())
		})

		It("succeeds when no device file exists", func() {
			Expect(m.ClearDeviceState(tmpDir)).To(Succeed())
		})
	})
})
