package smarthouse

import (
	"errors"
	"testing"
)

func TestRegisterFloor_SortedAndIdempotent(t *testing.T) {
	h := NewHouse("Test House")

	h.RegisterFloor(2)
	h.RegisterFloor(0)
	first := h.RegisterFloor(1)
	again := h.RegisterFloor(1)

	if first != again {
		t.Error("RegisterFloor() with existing level returned a new floor")
	}

	floors := h.Floors()
	if len(floors) != 3 {
		t.Fatalf("Floors() returned %d floors, want 3", len(floors))
	}
	for i, want := range []int{0, 1, 2} {
		if floors[i].Level != want {
			t.Errorf("Floors()[%d].Level = %d, want %d", i, floors[i].Level, want)
		}
	}
}

func TestRegisterRoom(t *testing.T) {
	h := NewHouse("Test House")
	h.RegisterFloor(0)

	tests := []struct {
		name    string
		floor   int
		room    string
		wantErr error
	}{
		{"valid room", 0, "Kitchen", nil},
		{"empty name", 0, "", ErrInvalidRoom},
		{"unknown floor", 5, "Attic", ErrFloorNotFound},
		{"duplicate name", 0, "Kitchen", ErrDuplicateRoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, err := h.RegisterRoom(tt.floor, 12.5, tt.room)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("RegisterRoom() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("RegisterRoom() error = %v", err)
			}
			if room.Name != tt.room || room.FloorLevel != tt.floor || room.Area != 12.5 {
				t.Errorf("RegisterRoom() = %+v", room)
			}
		})
	}

	if got := len(h.Floor(0).Rooms()); got != 1 {
		t.Errorf("Floor(0).Rooms() has %d rooms, want 1", got)
	}
	if h.Room("Kitchen") == nil {
		t.Error("Room(Kitchen) = nil")
	}
}

func TestRegisterDevice(t *testing.T) {
	h := NewHouse("Test House")
	h.RegisterFloor(0)
	kitchen, err := h.RegisterRoom(0, 10, "Kitchen")
	if err != nil {
		t.Fatalf("RegisterRoom() error = %v", err)
	}

	sensor := NewSensor("temp-1", "Elko", "Thermo", "Temperature Sensor")
	if err := h.RegisterDevice(kitchen, sensor); err != nil {
		t.Fatalf("RegisterDevice() error = %v", err)
	}
	if sensor.Room() != kitchen {
		t.Error("RegisterDevice() did not set the device room")
	}
	if got := kitchen.Devices(); len(got) != 1 || got[0] != Device(sensor) {
		t.Errorf("kitchen.Devices() = %v", got)
	}

	t.Run("duplicate id", func(t *testing.T) {
		err := h.RegisterDevice(kitchen, NewActuator("temp-1", "", "", "Plug"))
		if !errors.Is(err, ErrDuplicateDevice) {
			t.Errorf("RegisterDevice() error = %v, want %v", err, ErrDuplicateDevice)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		err := h.RegisterDevice(kitchen, NewSensor("", "", "", ""))
		if !errors.Is(err, ErrInvalidDevice) {
			t.Errorf("RegisterDevice() error = %v, want %v", err, ErrInvalidDevice)
		}
	})

	t.Run("nil room", func(t *testing.T) {
		err := h.RegisterDevice(nil, NewSensor("temp-2", "", "", ""))
		if !errors.Is(err, ErrRoomNotFound) {
			t.Errorf("RegisterDevice() error = %v, want %v", err, ErrRoomNotFound)
		}
	})

	t.Run("room of another house", func(t *testing.T) {
		other := NewHouse("Other")
		other.RegisterFloor(0)
		foreign, err := other.RegisterRoom(0, 5, "Shed")
		if err != nil {
			t.Fatalf("RegisterRoom() error = %v", err)
		}
		err = h.RegisterDevice(foreign, NewSensor("temp-3", "", "", ""))
		if !errors.Is(err, ErrRoomNotFound) {
			t.Errorf("RegisterDevice() error = %v, want %v", err, ErrRoomNotFound)
		}
	})
}

func TestHouseLookups(t *testing.T) {
	h := NewHouse("Test House")
	h.RegisterFloor(0)
	h.RegisterFloor(1)
	living, _ := h.RegisterRoom(0, 30, "Living Room") //nolint:errcheck // Fixture
	bed, _ := h.RegisterRoom(1, 15.5, "Bedroom")      //nolint:errcheck // Fixture

	sensor := NewSensor("temp-1", "", "", "Temperature Sensor")
	plug := NewActuator("plug-1", "", "", "Smart Plug")
	for _, reg := range []struct {
		room   *Room
		device Device
	}{{living, sensor}, {bed, plug}} {
		if err := h.RegisterDevice(reg.room, reg.device); err != nil {
			t.Fatalf("RegisterDevice() error = %v", err)
		}
	}

	if got := h.TotalArea(); got != 45.5 {
		t.Errorf("TotalArea() = %v, want 45.5", got)
	}
	if h.Sensor("temp-1") != sensor {
		t.Error("Sensor(temp-1) did not return the sensor")
	}
	if h.Sensor("plug-1") != nil {
		t.Error("Sensor(plug-1) should be nil for an actuator")
	}
	if h.Actuator("plug-1") != plug {
		t.Error("Actuator(plug-1) did not return the actuator")
	}
	if h.Device("missing") != nil {
		t.Error("Device(missing) should be nil")
	}
	if got := len(h.Sensors()); got != 1 {
		t.Errorf("Sensors() returned %d, want 1", got)
	}
	if got := len(h.Actuators()); got != 1 {
		t.Errorf("Actuators() returned %d, want 1", got)
	}
	if h.RoomByID(0) != nil {
		t.Error("RoomByID(0) should be nil")
	}

	living.ID = 7
	if h.RoomByID(7) != living {
		t.Error("RoomByID(7) did not return the living room")
	}
}
