package transport

import (
	"time"

	"soundhub/internal/device"
)

// Transport defines a generic interface for publishing inventory data or events.
// Implementations must be safe for concurrent use.
type Transport interface {
	Send(data any) error
	Close() error
}

// DeviceInfo is the wire representation of a single device descriptor.
type DeviceInfo struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	Purpose           string `json:"purpose"`
	Raw               bool   `json:"raw"`
	SampleRateMin     int    `json:"sample_rate_min"`
	SampleRateMax     int    `json:"sample_rate_max"`
	SampleRateDefault int    `json:"sample_rate_default"`
	Layout            string `json:"layout"`
	Channels          int    `json:"channels"`
}

// InventoryMessage is a point-in-time view of the device inventory, suitable
// for JSON encoding to WebSocket clients.
type InventoryMessage struct {
	Seq           uint32       `json:"seq"`
	Timestamp     int64        `json:"timestamp"`
	Outputs       []DeviceInfo `json:"outputs"`
	Inputs        []DeviceInfo `json:"inputs"`
	DefaultOutput int          `json:"default_output"`
	DefaultInput  int          `json:"default_input"`
}

// NewInventoryMessage flattens a snapshot into its wire representation.
func NewInventoryMessage(seq uint32, snap *device.Snapshot) *InventoryMessage {
	msg := &InventoryMessage{
		Seq:           seq,
		Timestamp:     time.Now().UnixNano(),
		Outputs:       make([]DeviceInfo, 0, len(snap.Outputs)),
		Inputs:        make([]DeviceInfo, 0, len(snap.Inputs)),
		DefaultOutput: snap.DefaultOutput,
		DefaultInput:  snap.DefaultInput,
	}
	for _, d := range snap.Outputs {
		msg.Outputs = append(msg.Outputs, newDeviceInfo(d))
	}
	for _, d := range snap.Inputs {
		msg.Inputs = append(msg.Inputs, newDeviceInfo(d))
	}
	return msg
}

func newDeviceInfo(d *device.Descriptor) DeviceInfo {
	return DeviceInfo{
		Name:              d.Name,
		Description:       d.Description,
		Purpose:           d.Purpose.String(),
		Raw:               d.Raw,
		SampleRateMin:     d.SampleRateMin,
		SampleRateMax:     d.SampleRateMax,
		SampleRateDefault: d.SampleRateDefault,
		Layout:            d.Layout.Name,
		Channels:          len(d.Layout.Channels),
	}
}
