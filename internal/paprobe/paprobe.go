// Package paprobe fills descriptor capabilities through the PortAudio host
// API. It is the probe backend of choice where procfs is unavailable, at the
// cost of a cgo dependency.
package paprobe

import (
	"fmt"
	"strings"

	"github.com/gordonklaus/portaudio"

	"soundhub/internal/device"
)

// Indirection points for tests.
var (
	paInitialize = portaudio.Initialize
	paTerminate  = portaudio.Terminate
	paDevices    = portaudio.Devices
)

// Prober implements device.Prober against PortAudio. New must be paired with
// a Close call to release the host API.
type Prober struct{}

// New initializes the PortAudio subsystem.
func New() (*Prober, error) {
	if err := paInitialize(); err != nil {
		return nil, fmt.Errorf("paprobe: initialize host API: %v: %w", err, device.ErrSystemResources)
	}
	return &Prober{}, nil
}

// Close shuts the PortAudio subsystem down.
func (p *Prober) Close() error {
	if err := paTerminate(); err != nil {
		return fmt.Errorf("paprobe: terminate host API: %w", err)
	}
	return nil
}

// Probe matches the descriptor against PortAudio's device table and copies
// over the host's idea of its capabilities. Fallback fields are set up front,
// so an unmatched device still comes out usable.
func (p *Prober) Probe(d *device.Descriptor) error {
	d.SampleRateMin = device.StandardRate
	d.SampleRateMax = device.StandardRate
	d.SampleRateDefault = device.StandardRate
	d.Layout = device.LayoutStereo

	infos, err := paDevices()
	if err != nil {
		return fmt.Errorf("paprobe: enumerate host devices: %v: %w", err, device.ErrSystemResources)
	}

	info := match(infos, d)
	if info == nil {
		return fmt.Errorf("paprobe: no host device matches %s: %w", d.Name, device.ErrOpeningDevice)
	}

	rate := int(info.DefaultSampleRate)
	if rate > 0 {
		d.SampleRateMin = rate
		d.SampleRateMax = rate
		d.SampleRateDefault = device.PreferredRate(rate, rate)
	}

	channels := info.MaxOutputChannels
	if d.Purpose == device.Input {
		channels = info.MaxInputChannels
	}
	if channels > 0 {
		d.Layout = device.GuessLayout(channels)
	}
	return nil
}

// match finds the host device backing a descriptor. PortAudio device names on
// this platform embed the native address, e.g. "HDA Intel: ALC887 (hw:0,0)",
// so a substring match in either direction covers raw and hinted names.
func match(infos []*portaudio.DeviceInfo, d *device.Descriptor) *portaudio.DeviceInfo {
	for _, info := range infos {
		if info == nil {
			continue
		}
		if d.Purpose == device.Output && info.MaxOutputChannels == 0 {
			continue
		}
		if d.Purpose == device.Input && info.MaxInputChannels == 0 {
			continue
		}
		if strings.Contains(info.Name, d.Name) || strings.Contains(d.Name, info.Name) {
			return info
		}
	}
	return nil
}
