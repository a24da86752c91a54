package smarthouse

import (
	"fmt"
	"sort"
)

// House is the root of the device registry. It owns the floors, indexes
// rooms by name and devices by id.
type House struct {
	Name string `json:"name"`

	floors      []*Floor
	rooms       []*Room
	roomsByName map[string]*Room
	devices     []Device
	devicesByID map[string]Device
}

// Floor is one storey of the house, identified by its level.
type Floor struct {
	Level int `json:"level"`
	rooms []*Room
}

// Room is a physical space on a floor.
type Room struct {
	// ID is the primary key in the rooms table; 0 for rooms that were
	// registered in memory and never loaded from the store.
	ID         int64   `json:"id,omitempty"`
	FloorLevel int     `json:"floor"`
	Area       float64 `json:"area"`
	Name       string  `json:"name"`

	house   *House
	devices []Device
}

// NewHouse creates an empty house.
func NewHouse(name string) *House {
	return &House{
		Name:        name,
		roomsByName: make(map[string]*Room),
		devicesByID: make(map[string]Device),
	}
}

// RegisterFloor adds a floor at the given level. Registering an existing
// level returns the existing floor. Floors are kept in ascending level order.
func (h *House) RegisterFloor(level int) *Floor {
	if f := h.Floor(level); f != nil {
		return f
	}

	f := &Floor{Level: level}
	idx := sort.Search(len(h.floors), func(i int) bool {
		return h.floors[i].Level >= level
	})
	h.floors = append(h.floors, nil)
	copy(h.floors[idx+1:], h.floors[idx:])
	h.floors[idx] = f
	return f
}

// RegisterRoom creates a room on an existing floor and indexes it by name.
//
// Returns:
//   - *Room: the new room
//   - error: ErrInvalidRoom for an empty name, ErrFloorNotFound when the
//     floor was never registered, ErrDuplicateRoom when the name is taken
func (h *House) RegisterRoom(floorLevel int, area float64, name string) (*Room, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is empty", ErrInvalidRoom)
	}
	floor := h.Floor(floorLevel)
	if floor == nil {
		return nil, fmt.Errorf("%w: level %d", ErrFloorNotFound, floorLevel)
	}
	if _, exists := h.roomsByName[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateRoom, name)
	}

	room := &Room{
		FloorLevel: floorLevel,
		Area:       area,
		Name:       name,
		house:      h,
	}
	floor.rooms = append(floor.rooms, room)
	h.rooms = append(h.rooms, room)
	h.roomsByName[name] = room
	return room, nil
}

// RegisterDevice attaches a device to a room of this house and sets the
// device's room reference.
func (h *House) RegisterDevice(room *Room, device Device) error {
	if device == nil || device.Info().ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidDevice)
	}
	if room == nil || room.house != h {
		return fmt.Errorf("%w: device %s", ErrRoomNotFound, device.Info().ID)
	}
	id := device.Info().ID
	if _, exists := h.devicesByID[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateDevice, id)
	}

	device.Info().room = room
	room.devices = append(room.devices, device)
	h.devices = append(h.devices, device)
	h.devicesByID[id] = device
	return nil
}

// Floors returns the floors in ascending level order.
func (h *House) Floors() []*Floor {
	out := make([]*Floor, len(h.floors))
	copy(out, h.floors)
	return out
}

// Floor returns the floor at level, or nil.
func (h *House) Floor(level int) *Floor {
	for _, f := range h.floors {
		if f.Level == level {
			return f
		}
	}
	return nil
}

// Rooms returns all rooms in registration order.
func (h *House) Rooms() []*Room {
	out := make([]*Room, len(h.rooms))
	copy(out, h.rooms)
	return out
}

// Room returns the room with the given name, or nil.
func (h *House) Room(name string) *Room {
	return h.roomsByName[name]
}

// RoomByID returns the room loaded from the store row with the given id, or nil.
func (h *House) RoomByID(id int64) *Room {
	if id == 0 {
		return nil
	}
	for _, r := range h.rooms {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Devices returns all devices in registration order.
func (h *House) Devices() []Device {
	out := make([]Device, len(h.devices))
	copy(out, h.devices)
	return out
}

// Device returns the device with the given id, or nil.
func (h *House) Device(id string) Device {
	return h.devicesByID[id]
}

// Sensor returns the sensor with the given id, or nil if there is no such
// device or it is not a sensor.
func (h *House) Sensor(id string) *Sensor {
	s, _ := h.devicesByID[id].(*Sensor)
	return s
}

// Actuator returns the actuator with the given id, or nil if there is no
// such device or it is not an actuator.
func (h *House) Actuator(id string) *Actuator {
	a, _ := h.devicesByID[id].(*Actuator)
	return a
}

// Sensors returns all sensors in registration order.
func (h *House) Sensors() []*Sensor {
	var out []*Sensor
	for _, d := range h.devices {
		if s, ok := d.(*Sensor); ok {
			out = append(out, s)
		}
	}
	return out
}

// Actuators returns all actuators in registration order.
func (h *House) Actuators() []*Actuator {
	var out []*Actuator
	for _, d := range h.devices {
		if a, ok := d.(*Actuator); ok {
			out = append(out, a)
		}
	}
	return out
}

// TotalArea returns the summed area of all rooms.
func (h *House) TotalArea() float64 {
	var total float64
	for _, r := range h.rooms {
		total += r.Area
	}
	return total
}

// Rooms returns the rooms on this floor in registration order.
func (f *Floor) Rooms() []*Room {
	out := make([]*Room, len(f.rooms))
	copy(out, f.rooms)
	return out
}

// Devices returns the devices in this room in registration order.
func (r *Room) Devices() []Device {
	out := make([]Device, len(r.devices))
	copy(out, r.devices)
	return out
}
