package device

import (
	"fmt"
	"strings"

	applog "soundhub/internal/log"
)

// Enumerator performs full scans of the device registry, assembling immutable
// inventory snapshots. A pass either produces a complete snapshot or fails
// with an error; it never publishes partial state.
type Enumerator struct {
	Registry Registry
	Prober   Prober
}

// Scan runs one enumeration pass: the hint layer first, then the raw hardware
// cards, concatenated in registry order.
func (e *Enumerator) Scan() (*Snapshot, error) {
	snap := NewSnapshot()

	hints, err := e.Registry.Hints()
	if err != nil {
		return nil, fmt.Errorf("device hints: %w", err)
	}
	for _, h := range hints {
		e.scanHint(snap, h)
	}

	cards, err := e.Registry.Cards()
	if err != nil {
		return nil, fmt.Errorf("hardware cards: %w", err)
	}
	for _, card := range cards {
		e.scanCard(snap, card)
	}

	return snap, nil
}

// scanHint expands one hint into descriptors, one per direction consistent
// with the hint, applying the exclusion policy.
func (e *Enumerator) scanHint(snap *Snapshot, h Hint) {
	if excludedHint(h.Name) {
		return
	}

	short, detail := splitDescription(h.Description)
	desc := short
	if detail != "" {
		desc = short + ": " + detail
	}

	for _, purpose := range []Purpose{Output, Input} {
		if purpose == Output && h.Direction == DirectionInput {
			continue
		}
		if purpose == Input && h.Direction == DirectionOutput {
			continue
		}
		// Hints whose detail text mentions "output" but carry no direction
		// are mislabeled duplicates; never surface them as capture devices.
		if purpose == Input && detail != "" &&
			strings.Contains(strings.ToLower(detail), "output") {
			continue
		}

		d := &Descriptor{
			Name:        h.Name,
			Description: desc,
			Purpose:     purpose,
		}
		e.probe(d)
		snap.append(d, strings.HasPrefix(h.Name, defaultHintPrefix))
	}
}

// scanCard adds one raw descriptor per (sub-device, direction) combination
// that exists on the card.
func (e *Enumerator) scanCard(snap *Snapshot, card Card) {
	for _, pcm := range card.Devices {
		for _, purpose := range []Purpose{Output, Input} {
			if purpose == Output && !pcm.Playback {
				continue
			}
			if purpose == Input && !pcm.Capture {
				continue
			}

			d := &Descriptor{
				Name:        fmt.Sprintf("hw:%d,%d", card.Index, pcm.Index),
				Description: card.Name + " " + pcm.Name,
				Purpose:     purpose,
				Raw:         true,
			}
			e.probe(d)
			snap.append(d, false)
		}
	}
}

// probe is best effort: a device that cannot be fully probed is still better
// reported than hidden.
func (e *Enumerator) probe(d *Descriptor) {
	if err := e.Prober.Probe(d); err != nil {
		applog.Debugf("enumerate: probe %s: %v", d.Name, err)
	}
}
