package device

import "testing"

func TestQualifyingEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   ChangeEvent
		want bool
	}{
		{"device node created", ChangeEvent{Op: OpCreate, Name: "pcmC0D0p"}, true},
		{"device node deleted", ChangeEvent{Op: OpDelete, Name: "pcmC0D0c"}, true},
		{"long device node", ChangeEvent{Op: OpCreate, Name: "pcmC12D31p"}, true},
		{"overflow always qualifies", ChangeEvent{Op: OpOverflow}, true},
		{"directory entry", ChangeEvent{Op: OpCreate, Name: "pcmC0D0p", IsDir: true}, false},
		{"non-structural op", ChangeEvent{Op: OpOther, Name: "pcmC0D0p"}, false},
		{"wrong prefix", ChangeEvent{Op: OpCreate, Name: "controlC0x"}, false},
		{"too short to be a node", ChangeEvent{Op: OpCreate, Name: "pcmC0"}, false},
		{"control node", ChangeEvent{Op: OpCreate, Name: "controlC0"}, false},
		{"timer node", ChangeEvent{Op: OpDelete, Name: "timer"}, false},
		{"empty name", ChangeEvent{Op: OpCreate}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := qualifyingEvent(tt.ev); got != tt.want {
				t.Errorf("qualifyingEvent(%+v) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}
