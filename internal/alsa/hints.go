package alsa

import "soundhub/internal/device"

// nullHint mirrors the platform's global sample-sink entry. Enumeration
// policy filters it back out; yielding it here keeps the hint layer faithful
// to what the configuration layer actually exposes.
var nullHint = device.Hint{
	Name:        "null",
	Description: "Discard all samples (playback) or generate zero samples (capture)",
}

// Hints synthesizes the logical device names for each card, mirroring the
// per-card templates the sound configuration layer expands: a default entry,
// the redundant sysdefault/front/surround aliases, and the direct mixing and
// snooping plugins for the directions the card supports.
func (r *Registry) Hints() ([]device.Hint, error) {
	cards, err := r.Cards()
	if err != nil {
		return nil, err
	}

	hints := []device.Hint{nullHint}
	for _, card := range cards {
		var playback, capture bool
		for _, pcm := range card.Devices {
			playback = playback || pcm.Playback
			capture = capture || pcm.Capture
		}

		hints = append(hints,
			device.Hint{
				Name:        "default:CARD=" + card.ID,
				Description: card.Name + "\nDefault Audio Device",
			},
			device.Hint{
				Name:        "sysdefault:CARD=" + card.ID,
				Description: card.Name + "\nDefault Audio Device",
			},
		)
		if playback {
			hints = append(hints,
				device.Hint{
					Name:        "front:CARD=" + card.ID + ",DEV=0",
					Description: card.Name + "\nFront output",
					Direction:   device.DirectionOutput,
				},
				device.Hint{
					Name:        "surround40:CARD=" + card.ID + ",DEV=0",
					Description: card.Name + "\n4.0 Surround output",
					Direction:   device.DirectionOutput,
				},
				device.Hint{
					Name:        "surround51:CARD=" + card.ID + ",DEV=0",
					Description: card.Name + "\n5.1 Surround output",
					Direction:   device.DirectionOutput,
				},
				device.Hint{
					Name:        "dmix:CARD=" + card.ID + ",DEV=0",
					Description: card.Name + "\nDirect sample mixing device",
					Direction:   device.DirectionOutput,
				},
			)
		}
		if capture {
			hints = append(hints, device.Hint{
				Name:        "dsnoop:CARD=" + card.ID + ",DEV=0",
				Description: card.Name + "\nDirect sample snooping device",
				Direction:   device.DirectionInput,
			})
		}
	}
	return hints, nil
}
