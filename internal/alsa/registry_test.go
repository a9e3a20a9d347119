package alsa

import (
	"os"
	"path/filepath"
	"testing"

	"soundhub/internal/device"
)

const cardsFixture = ` 0 [PCH            ]: HDA-Intel - HDA Intel PCH
                      HDA Intel PCH at 0xf7f30000 irq 31
 1 [USB            ]: USB-Audio - Scarlett 2i2 USB
                      Focusrite Scarlett 2i2 USB at usb-0000:00:14.0-2
`

// writeFixture lays out a procfs-shaped tree under a temp dir.
func writeFixture(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for path, content := range files {
		full := filepath.Join(root, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestCardsParsesRegistry(t *testing.T) {
	root := writeFixture(t, map[string]string{
		"cards":                "", // overwritten below
		"card0/pcm0p/info":     "card: 0\ndevice: 0\nname: ALC887 Analog\n",
		"card0/pcm0c/info":     "card: 0\ndevice: 0\nname: ALC887 Analog\n",
		"card0/pcm1p/info":     "card: 0\ndevice: 1\nname: ALC887 Digital\n",
		"card1/pcm0c/info":     "card: 1\ndevice: 0\nname: USB Audio\n",
		"card1/codec#0/ignore": "",
	})
	if err := os.WriteFile(filepath.Join(root, "cards"), []byte(cardsFixture), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := &Registry{Root: root}
	cards, err := reg.Cards()
	if err != nil {
		t.Fatalf("Cards error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}

	pch := cards[0]
	if pch.Index != 0 || pch.ID != "PCH" || pch.Name != "HDA Intel PCH" {
		t.Errorf("card 0 = %+v", pch)
	}
	if len(pch.Devices) != 2 {
		t.Fatalf("card 0 has %d devices, want 2", len(pch.Devices))
	}
	analog := pch.Devices[0]
	if analog.Index != 0 || !analog.Playback || !analog.Capture || analog.Name != "ALC887 Analog" {
		t.Errorf("device 0 = %+v", analog)
	}
	digital := pch.Devices[1]
	if digital.Index != 1 || !digital.Playback || digital.Capture {
		t.Errorf("device 1 = %+v", digital)
	}

	usb := cards[1]
	if usb.Index != 1 || usb.ID != "USB" {
		t.Errorf("card 1 = %+v", usb)
	}
	if len(usb.Devices) != 1 || usb.Devices[0].Playback || !usb.Devices[0].Capture {
		t.Errorf("card 1 devices = %+v", usb.Devices)
	}
}

func TestCardsMissingRegistryIsEmpty(t *testing.T) {
	reg := &Registry{Root: filepath.Join(t.TempDir(), "absent")}
	cards, err := reg.Cards()
	if err != nil {
		t.Fatalf("Cards error: %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("got %d cards from an absent registry, want 0", len(cards))
	}
}

func TestHintsExpandPerCardTemplates(t *testing.T) {
	root := writeFixture(t, map[string]string{
		"card0/pcm0p/info": "name: ALC887 Analog\n",
		"card0/pcm0c/info": "name: ALC887 Analog\n",
	})
	cards := " 0 [PCH            ]: HDA-Intel - HDA Intel PCH\n"
	if err := os.WriteFile(filepath.Join(root, "cards"), []byte(cards), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := &Registry{Root: root}
	hints, err := reg.Hints()
	if err != nil {
		t.Fatalf("Hints error: %v", err)
	}

	byName := make(map[string]device.Hint, len(hints))
	for _, h := range hints {
		byName[h.Name] = h
	}

	if _, ok := byName["null"]; !ok {
		t.Error("missing null hint")
	}
	def, ok := byName["default:CARD=PCH"]
	if !ok {
		t.Fatal("missing default hint")
	}
	if def.Direction != device.DirectionUnspecified {
		t.Errorf("default hint direction = %v, want unspecified", def.Direction)
	}
	if def.Description != "HDA Intel PCH\nDefault Audio Device" {
		t.Errorf("default hint description = %q", def.Description)
	}
	if h, ok := byName["dmix:CARD=PCH,DEV=0"]; !ok || h.Direction != device.DirectionOutput {
		t.Errorf("dmix hint = %+v, ok = %v", h, ok)
	}
	if h, ok := byName["dsnoop:CARD=PCH,DEV=0"]; !ok || h.Direction != device.DirectionInput {
		t.Errorf("dsnoop hint = %+v, ok = %v", h, ok)
	}
	if _, ok := byName["sysdefault:CARD=PCH"]; !ok {
		t.Error("missing sysdefault hint")
	}
}

func TestHintsSkipDirectionlessPlugins(t *testing.T) {
	root := writeFixture(t, map[string]string{
		"card0/pcm0c/info": "name: Mic\n",
	})
	cards := " 0 [Mic            ]: USB-Audio - USB Mic\n"
	if err := os.WriteFile(filepath.Join(root, "cards"), []byte(cards), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := &Registry{Root: root}
	hints, err := reg.Hints()
	if err != nil {
		t.Fatalf("Hints error: %v", err)
	}
	for _, h := range hints {
		switch {
		case h.Name == "dmix:CARD=Mic,DEV=0",
			h.Name == "front:CARD=Mic,DEV=0":
			t.Errorf("capture-only card produced playback plugin hint %q", h.Name)
		}
	}
}
