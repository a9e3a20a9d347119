package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"soundhub/internal/device"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#25A065")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#25A065")).
			Underline(true)
)

// Inventory is the engine surface the TUI consumes: a live snapshot plus the
// ability to block until the inventory changes.
type Inventory interface {
	FlushEvents()
	WaitEvents()
	Wakeup()
	Devices() *device.Snapshot
}

// ScreenType defines which screen is currently active
type ScreenType int

const (
	ListScreen ScreenType = iota
	DetailScreen
)

// DeviceListModel is the Bubble Tea model for the live device inventory.
type DeviceListModel struct {
	inventory     Inventory
	snapshot      *device.Snapshot
	selectedIndex int
	viewport      viewport.Model
	ready         bool
	activeScreen  ScreenType
}

type snapshotMsg struct {
	snapshot *device.Snapshot
}

// Init loads the current inventory and starts listening for changes.
func (m DeviceListModel) Init() tea.Cmd {
	return tea.Batch(m.fetchSnapshot, m.waitForChange)
}

// fetchSnapshot flushes pending inventory changes and returns the result.
func (m DeviceListModel) fetchSnapshot() tea.Msg {
	m.inventory.FlushEvents()
	return snapshotMsg{m.inventory.Devices()}
}

// waitForChange blocks until the inventory changes, then returns the new
// snapshot. Re-issued from Update after every snapshotMsg so the view stays
// live across hot-plug events.
func (m DeviceListModel) waitForChange() tea.Msg {
	m.inventory.WaitEvents()
	return snapshotMsg{m.inventory.Devices()}
}

// flatDevices returns outputs followed by inputs for a single selectable list.
func (m DeviceListModel) flatDevices() []*device.Descriptor {
	if m.snapshot == nil {
		return nil
	}
	all := make([]*device.Descriptor, 0, m.snapshot.Len())
	all = append(all, m.snapshot.Outputs...)
	all = append(all, m.snapshot.Inputs...)
	return all
}

func (m DeviceListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4)
			m.viewport.Style = lipgloss.NewStyle()
			m.ready = true

			if m.snapshot != nil {
				m.viewport.SetContent(m.renderDevices())
			}
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}

	case snapshotMsg:
		m.snapshot = msg.snapshot
		if m.selectedIndex >= len(m.flatDevices()) {
			m.selectedIndex = 0
		}
		if m.ready {
			if m.activeScreen == DetailScreen {
				m.viewport.SetContent(m.renderDeviceDetail())
			} else {
				m.viewport.SetContent(m.renderDevices())
			}
		}
		// Keep listening for the next change.
		cmds = append(cmds, m.waitForChange)

	case tea.KeyMsg:
		// Keys that work everywhere.
		if key.Matches(msg, key.NewBinding(key.WithKeys("q", "ctrl+c"))) {
			m.inventory.Wakeup()
			return m, tea.Quit
		}

		if m.activeScreen == ListScreen {
			switch {
			case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
				if m.selectedIndex > 0 {
					m.selectedIndex--
					m.viewport.SetContent(m.renderDevices())
				}

			case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
				if m.selectedIndex < len(m.flatDevices())-1 {
					m.selectedIndex++
					m.viewport.SetContent(m.renderDevices())
				}

			case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
				if len(m.flatDevices()) > 0 {
					m.activeScreen = DetailScreen
					m.viewport.SetContent(m.renderDeviceDetail())
				}
			}
		} else if m.activeScreen == DetailScreen {
			if key.Matches(msg, key.NewBinding(key.WithKeys("esc"))) {
				m.activeScreen = ListScreen
				m.viewport.SetContent(m.renderDevices())
			}
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m DeviceListModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var title, help string

	if m.activeScreen == ListScreen {
		title = titleStyle.Render("Sound Devices")
		help = infoStyle.Render("↑/↓: Navigate • Enter: Details • q: Quit")
	} else {
		title = titleStyle.Render("Device Details")
		help = infoStyle.Render("Esc: Back • q: Quit")
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, m.viewport.View(), help)
}

// renderDevices formats the inventory as two sections, outputs then inputs.
func (m DeviceListModel) renderDevices() string {
	if m.snapshot == nil || m.snapshot.Len() == 0 {
		return "No sound devices found."
	}

	var sb strings.Builder
	flatIndex := 0

	renderSection := func(name string, devices []*device.Descriptor, defaultIndex int) {
		if len(devices) == 0 {
			return
		}
		sb.WriteString(sectionStyle.Render(name))
		sb.WriteString("\n")
		for i, d := range devices {
			marker := " "
			if i == defaultIndex {
				marker = "*"
			}
			line := fmt.Sprintf("%s %s\n    %s\n", marker, d.Name, d.Description)
			if flatIndex == m.selectedIndex {
				line = highlightStyle.Render(line)
			}
			sb.WriteString(line)
			flatIndex++
		}
		sb.WriteString("\n")
	}

	renderSection("Playback", m.snapshot.Outputs, m.snapshot.DefaultOutput)
	renderSection("Capture", m.snapshot.Inputs, m.snapshot.DefaultInput)

	return sb.String()
}

// renderDeviceDetail formats the capability view for the selected device.
func (m DeviceListModel) renderDeviceDetail() string {
	all := m.flatDevices()
	if m.selectedIndex >= len(all) {
		return "No device selected."
	}
	d := all[m.selectedIndex]

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n\n", d.Name))
	sb.WriteString(fmt.Sprintf("Description:  %s\n", d.Description))
	sb.WriteString(fmt.Sprintf("Direction:    %s\n", d.Purpose))
	if d.Raw {
		sb.WriteString("Access:       raw hardware\n")
	} else {
		sb.WriteString("Access:       shared\n")
	}
	sb.WriteString(fmt.Sprintf("Sample rates: %d - %d Hz (default %d)\n",
		d.SampleRateMin, d.SampleRateMax, d.SampleRateDefault))
	sb.WriteString(fmt.Sprintf("Layout:       %s (%d channels)\n",
		d.Layout.Name, len(d.Layout.Channels)))

	return sb.String()
}

// NewDeviceListModel creates a device list model bound to an inventory engine.
func NewDeviceListModel(inventory Inventory) DeviceListModel {
	return DeviceListModel{
		inventory:     inventory,
		selectedIndex: 0,
		activeScreen:  ListScreen,
	}
}

// StartDeviceListUI launches the Bubble Tea TUI over the live inventory.
func StartDeviceListUI(inventory Inventory) error {
	p := tea.NewProgram(
		NewDeviceListModel(inventory),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
