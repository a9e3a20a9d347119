package device

// ChannelID identifies the role of one channel within a layout.
type ChannelID int

const (
	ChannelInvalid ChannelID = iota
	ChannelFrontLeft
	ChannelFrontRight
	ChannelFrontCenter
	ChannelLFE
	ChannelBackLeft
	ChannelBackRight
	ChannelSideLeft
	ChannelSideRight
	ChannelBackCenter
)

// MaxChannels bounds the length of a channel layout. Maps reported with more
// positions than this are truncated.
const MaxChannels = 24

// Layout is an ordered list of channel roles.
type Layout struct {
	Name     string
	Channels []ChannelID
}

// Count returns the number of channels in the layout.
func (l Layout) Count() int {
	return len(l.Channels)
}

var builtinLayouts = []Layout{
	{Name: "Mono", Channels: []ChannelID{ChannelFrontCenter}},
	{Name: "Stereo", Channels: []ChannelID{ChannelFrontLeft, ChannelFrontRight}},
	{Name: "2.1", Channels: []ChannelID{ChannelFrontLeft, ChannelFrontRight, ChannelLFE}},
	{Name: "4.0", Channels: []ChannelID{
		ChannelFrontLeft, ChannelFrontRight, ChannelBackLeft, ChannelBackRight}},
	{Name: "5.1", Channels: []ChannelID{
		ChannelFrontLeft, ChannelFrontRight, ChannelFrontCenter, ChannelLFE,
		ChannelBackLeft, ChannelBackRight}},
	{Name: "7.1", Channels: []ChannelID{
		ChannelFrontLeft, ChannelFrontRight, ChannelFrontCenter, ChannelLFE,
		ChannelBackLeft, ChannelBackRight, ChannelSideLeft, ChannelSideRight}},
}

// LayoutMono and LayoutStereo are the common fallbacks probers reach for when
// a device reports no channel map of its own.
var (
	LayoutMono   = builtinLayouts[0]
	LayoutStereo = builtinLayouts[1]
)

// BestLayout selects the richest of the candidate channel maps: the one with
// the greatest channel count wins, first seen wins ties. The result is
// truncated to MaxChannels and, when it matches a well-known arrangement,
// carries that arrangement's name.
func BestLayout(candidates []Layout) Layout {
	var best Layout
	for _, c := range candidates {
		if len(c.Channels) > len(best.Channels) {
			best = c
		}
	}
	if len(best.Channels) > MaxChannels {
		best.Channels = best.Channels[:MaxChannels]
	}
	if best.Name == "" {
		best.Name = builtinName(best.Channels)
	}
	return best
}

// GuessLayout returns the conventional layout for a channel count, or an
// unnamed layout of unknown roles when no convention matches.
func GuessLayout(channels int) Layout {
	for _, b := range builtinLayouts {
		if len(b.Channels) == channels {
			return b
		}
	}
	if channels > MaxChannels {
		channels = MaxChannels
	}
	if channels <= 0 {
		return Layout{}
	}
	return Layout{Channels: make([]ChannelID, channels)}
}

func builtinName(channels []ChannelID) string {
	for _, b := range builtinLayouts {
		if channelsEqual(b.Channels, channels) {
			return b.Name
		}
	}
	return ""
}

func channelsEqual(a, b []ChannelID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
