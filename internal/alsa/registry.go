// Package alsa reads the kernel sound registry through procfs. It needs no
// cgo, so the inventory engine cross-compiles cleanly; capability probing is
// correspondingly best effort, reporting conservative ranges when the driver
// keeps the details to itself.
package alsa

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"soundhub/internal/device"
)

// DefaultRoot is where the kernel exposes the sound registry.
const DefaultRoot = "/proc/asound"

// Registry enumerates hardware cards and synthesizes the logical hint layer
// from them, the way the platform configuration layer expands its per-card
// name templates.
type Registry struct {
	// Root overrides the procfs location, for tests.
	Root string
}

func (r *Registry) root() string {
	if r.Root != "" {
		return r.Root
	}
	return DefaultRoot
}

//  0 [PCH            ]: HDA-Intel - HDA Intel PCH
var cardLine = regexp.MustCompile(`^\s*(\d+)\s+\[(\S+)\s*\]:\s+\S+.*? - (.+)$`)

var pcmDir = regexp.MustCompile(`^pcm(\d+)([pc])$`)

// Cards returns the hardware cards in driver-assigned order. A system without
// sound support yields an empty inventory, not an error.
func (r *Registry) Cards() ([]device.Card, error) {
	data, err := os.ReadFile(filepath.Join(r.root(), "cards"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("alsa: read card registry: %v: %w", err, device.ErrSystemResources)
	}

	cards := parseCards(string(data))
	for i := range cards {
		if err := r.fillDevices(&cards[i]); err != nil {
			return nil, err
		}
	}
	return cards, nil
}

func parseCards(data string) []device.Card {
	var cards []device.Card
	for _, line := range strings.Split(data, "\n") {
		m := cardLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		index, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		cards = append(cards, device.Card{
			Index: index,
			ID:    m[2],
			Name:  strings.TrimSpace(m[3]),
		})
	}
	return cards
}

// fillDevices discovers the card's PCM sub-devices from its procfs directory.
// Each pcm<N>p / pcm<N>c entry marks one direction of sub-device N.
func (r *Registry) fillDevices(card *device.Card) error {
	dir := filepath.Join(r.root(), fmt.Sprintf("card%d", card.Index))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("alsa: read card %d: %v: %w", card.Index, err, device.ErrSystemResources)
	}

	byIndex := make(map[int]*device.PCMDevice)
	for _, entry := range entries {
		m := pcmDir.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		index, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		pcm := byIndex[index]
		if pcm == nil {
			pcm = &device.PCMDevice{Index: index}
			byIndex[index] = pcm
		}
		if m[2] == "p" {
			pcm.Playback = true
		} else {
			pcm.Capture = true
		}
		if pcm.Name == "" {
			pcm.Name = readPCMName(filepath.Join(dir, entry.Name(), "info"))
		}
	}

	indexes := make([]int, 0, len(byIndex))
	for i := range byIndex {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	for _, i := range indexes {
		card.Devices = append(card.Devices, *byIndex[i])
	}
	return nil
}

// readPCMName pulls the "name:" field out of a PCM info file. An unreadable
// info file degrades to an empty name.
func readPCMName(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		if rest, ok := strings.CutPrefix(line, "name: "); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}
