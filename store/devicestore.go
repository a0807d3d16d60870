package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/taboo/engine"
)

var (
	ErrUnknownDeviceID = errors.New("unknown device ID")
	ErrNilDevice       = errors.New("device is nil")
)

type DeviceStore interface {
	FindDevice(deviceID string) *engine.Device
	AddDevice(device *engine.Device) error
	RemoveDevice(deviceID string) error
	Devices() []string
}

// InMemoryDeviceStore maps device id to device
type InMemoryDeviceStore struct {
	devices map[string]*engine.Device
	mu      sync.RWMutex
}

// NewInMemoryDeviceStore constructs an InMemoryDeviceStore
func NewInMemoryDeviceStore() *InMemoryDeviceStore {
	return &InMemoryDeviceStore{
		devices: map[string]*engine.Device{},
	}
}

func (s *InMemoryDeviceStore) FindDevice(deviceID string) *engine.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()

	device, ok := s.devices[deviceID]
	if !ok {
		return nil
	}
	return device
}

func (s *InMemoryDeviceStore) AddDevice(device *engine.Device) error {
	if device == nil {
		return ErrNilDevice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.devices[device.ID()]; exists {
		return fmt.Errorf("device with id %s already exists", device.ID())
	}

	s.devices[device.ID()] = device
	return nil
}

func (s *InMemoryDeviceStore) RemoveDevice(deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.devices[deviceID]; !ok {
		return ErrUnknownDeviceID
	}

	delete(s.devices, deviceID)
	return nil
}

// Devices lists the ids of every stored device
func (s *InMemoryDeviceStore) Devices() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.devices))
	for id := range s.devices {
		ids = append(ids, id)
	}
	return ids
}
