package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"soundhub/internal/device"
)

type fakeInventory struct {
	snapshot *device.Snapshot
}

func (f *fakeInventory) FlushEvents()              {}
func (f *fakeInventory) WaitEvents()               {}
func (f *fakeInventory) Wakeup()                   {}
func (f *fakeInventory) Devices() *device.Snapshot { return f.snapshot }

func testSnapshot() *device.Snapshot {
	snap := device.NewSnapshot()
	snap.Outputs = []*device.Descriptor{
		{Name: "default:CARD=PCH", Description: "HDA Intel PCH: Default Audio Device",
			Purpose: device.Output, Layout: device.LayoutStereo,
			SampleRateMin: 8000, SampleRateMax: 192000, SampleRateDefault: 48000},
		{Name: "hw:0,0", Description: "HDA Intel PCH ALC887 Analog",
			Purpose: device.Output, Raw: true, Layout: device.LayoutStereo,
			SampleRateMin: 44100, SampleRateMax: 44100, SampleRateDefault: 44100},
	}
	snap.Inputs = []*device.Descriptor{
		{Name: "hw:1,0", Description: "Scarlett 2i2 USB", Purpose: device.Input,
			Raw: true, Layout: device.LayoutStereo,
			SampleRateMin: 48000, SampleRateMax: 48000, SampleRateDefault: 48000},
	}
	snap.DefaultOutput = 0
	snap.DefaultInput = 0
	return snap
}

func readyModel(t *testing.T) DeviceListModel {
	t.Helper()
	m := NewDeviceListModel(&fakeInventory{snapshot: testSnapshot()})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(DeviceListModel)
	updated, _ = m.Update(snapshotMsg{snapshot: testSnapshot()})
	return updated.(DeviceListModel)
}

func TestRenderDevicesSections(t *testing.T) {
	m := readyModel(t)

	out := m.renderDevices()
	for _, want := range []string{"Playback", "Capture", "default:CARD=PCH", "hw:0,0", "hw:1,0"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered list missing %q", want)
		}
	}
	// Defaults carry a marker.
	if !strings.Contains(out, "* default:CARD=PCH") {
		t.Error("default output not marked")
	}
}

func TestRenderDevicesEmpty(t *testing.T) {
	m := NewDeviceListModel(&fakeInventory{snapshot: device.NewSnapshot()})
	m.snapshot = device.NewSnapshot()
	if out := m.renderDevices(); !strings.Contains(out, "No sound devices") {
		t.Errorf("empty inventory rendered as %q", out)
	}
}

func TestNavigationAndDetail(t *testing.T) {
	m := readyModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(DeviceListModel)
	if m.selectedIndex != 1 {
		t.Fatalf("selectedIndex = %d, want 1", m.selectedIndex)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(DeviceListModel)
	if m.activeScreen != DetailScreen {
		t.Fatal("enter did not open detail screen")
	}

	detail := m.renderDeviceDetail()
	for _, want := range []string{"hw:0,0", "raw hardware", "44100", "Stereo"} {
		if !strings.Contains(detail, want) {
			t.Errorf("detail missing %q in %q", want, detail)
		}
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(DeviceListModel)
	if m.activeScreen != ListScreen {
		t.Error("esc did not return to list screen")
	}
}

func TestSnapshotShrinkResetsSelection(t *testing.T) {
	m := readyModel(t)
	m.selectedIndex = 2

	small := device.NewSnapshot()
	small.Outputs = []*device.Descriptor{
		{Name: "hw:0,0", Purpose: device.Output, Layout: device.LayoutStereo},
	}
	updated, _ := m.Update(snapshotMsg{snapshot: small})
	m = updated.(DeviceListModel)
	if m.selectedIndex != 0 {
		t.Errorf("selectedIndex = %d after shrink, want 0", m.selectedIndex)
	}
}
