package device

import "testing"

func TestBestLayout(t *testing.T) {
	stereo := LayoutStereo
	fiveOne := builtinLayouts[4]

	t.Run("greatest channel count wins", func(t *testing.T) {
		got := BestLayout([]Layout{stereo, fiveOne})
		if got.Count() != 6 {
			t.Errorf("count = %d, want 6", got.Count())
		}
	})

	t.Run("first seen wins ties", func(t *testing.T) {
		a := Layout{Name: "A", Channels: []ChannelID{ChannelFrontLeft, ChannelFrontRight}}
		b := Layout{Name: "B", Channels: []ChannelID{ChannelSideLeft, ChannelSideRight}}
		got := BestLayout([]Layout{a, b})
		if got.Name != "A" {
			t.Errorf("tie broken to %q, want first-seen A", got.Name)
		}
	})

	t.Run("truncates to MaxChannels", func(t *testing.T) {
		wide := Layout{Channels: make([]ChannelID, MaxChannels+8)}
		got := BestLayout([]Layout{wide})
		if got.Count() != MaxChannels {
			t.Errorf("count = %d, want %d", got.Count(), MaxChannels)
		}
	})

	t.Run("names recognized arrangements", func(t *testing.T) {
		anon := Layout{Channels: []ChannelID{ChannelFrontLeft, ChannelFrontRight}}
		got := BestLayout([]Layout{anon})
		if got.Name != "Stereo" {
			t.Errorf("name = %q, want Stereo", got.Name)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		got := BestLayout(nil)
		if got.Count() != 0 {
			t.Errorf("count = %d, want 0", got.Count())
		}
	})
}

func TestPreferredRate(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		want     int
	}{
		{"standard within range", 8000, 192000, 48000},
		{"standard at min", 48000, 96000, 48000},
		{"standard at max", 8000, 48000, 48000},
		{"range below standard", 8000, 44100, 44100},
		{"range above standard", 88200, 192000, 192000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreferredRate(tt.min, tt.max); got != tt.want {
				t.Errorf("PreferredRate(%d, %d) = %d, want %d",
					tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestSplitDescription(t *testing.T) {
	tests := []struct {
		desc, short, detail string
	}{
		{"HDA Intel\nALC887 Analog", "HDA Intel", "ALC887 Analog"},
		{"single line", "single line", ""},
		{"", "", ""},
		{"a\nb\nc", "a", "b\nc"},
	}
	for _, tt := range tests {
		short, detail := splitDescription(tt.desc)
		if short != tt.short || detail != tt.detail {
			t.Errorf("splitDescription(%q) = %q, %q, want %q, %q",
				tt.desc, short, detail, tt.short, tt.detail)
		}
	}
}
