package alsa

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"soundhub/internal/device"
)

// Conservative capability range reported when the driver exposes nothing
// better. procfs only reveals a stream's negotiated parameters while it is
// open, so idle devices fall back to these bounds.
const (
	fallbackRateMin = 8000
	fallbackRateMax = 192000
)

// Prober fills descriptor capabilities from procfs. For raw devices with an
// open stream it reads the negotiated hardware parameters; everything else
// gets the fallback range and a stereo layout.
type Prober struct {
	// Root overrides the procfs location, for tests.
	Root string
}

func (p *Prober) root() string {
	if p.Root != "" {
		return p.Root
	}
	return DefaultRoot
}

// Probe implements device.Prober. The fallback fields are filled before any
// file access, so a failed probe still leaves a usable descriptor.
func (p *Prober) Probe(d *device.Descriptor) error {
	d.SampleRateMin = fallbackRateMin
	d.SampleRateMax = fallbackRateMax
	d.SampleRateDefault = device.PreferredRate(fallbackRateMin, fallbackRateMax)
	d.Layout = device.LayoutStereo

	card, dev, ok := parseRawName(d.Name)
	if !ok {
		return nil
	}

	hp, err := p.readHWParams(card, dev, d.Purpose)
	if err != nil {
		return err
	}
	if hp == nil {
		return nil
	}

	d.SampleRateMin = hp.rate
	d.SampleRateMax = hp.rate
	d.SampleRateDefault = device.PreferredRate(hp.rate, hp.rate)
	d.Layout = device.BestLayout([]device.Layout{
		device.GuessLayout(hp.channels),
		device.LayoutStereo,
	})
	return nil
}

// parseRawName extracts card and device indexes from a "hw:<card>,<device>"
// name. Hinted names do not match and are probed with fallbacks only.
func parseRawName(name string) (card, dev int, ok bool) {
	rest, found := strings.CutPrefix(name, "hw:")
	if !found {
		return 0, 0, false
	}
	parts := strings.SplitN(rest, ",", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	card, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	dev, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return card, dev, true
}

type hwParams struct {
	rate     int
	channels int
}

// readHWParams reads the negotiated parameters of sub-device stream 0.
// A closed or absent stream yields nil without error.
func (p *Prober) readHWParams(card, dev int, purpose device.Purpose) (*hwParams, error) {
	suffix := "p"
	if purpose == device.Input {
		suffix = "c"
	}
	path := filepath.Join(p.root(),
		fmt.Sprintf("card%d", card),
		fmt.Sprintf("pcm%d%s", dev, suffix),
		"sub0", "hw_params")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("alsa: probe hw:%d,%d: %v: %w", card, dev, err, device.ErrOpeningDevice)
	}

	text := strings.TrimSpace(string(data))
	if text == "closed" || text == "no setup" {
		return nil, nil
	}

	hp := &hwParams{}
	for _, line := range strings.Split(text, "\n") {
		if rest, ok := strings.CutPrefix(line, "rate: "); ok {
			// "rate: 44100 (44100/1)"
			if fields := strings.Fields(rest); len(fields) > 0 {
				hp.rate, _ = strconv.Atoi(fields[0])
			}
		}
		if rest, ok := strings.CutPrefix(line, "channels: "); ok {
			hp.channels, _ = strconv.Atoi(strings.TrimSpace(rest))
		}
	}
	if hp.rate == 0 {
		return nil, nil
	}
	return hp, nil
}
