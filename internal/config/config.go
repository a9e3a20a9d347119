package config

import "time"

// Boundaries and defaults for the device engine and its consumers.
const (
	DefaultLogLevel     = "info"
	DefaultWatchDir     = "/dev/snd"     // Kernel sound node directory to watch for hot-plug.
	DefaultProcRoot     = "/proc/asound" // ALSA procfs registry root.
	DefaultProbeBackend = BackendALSA    // Capability probe backend.
	DefaultSampleRate   = 48000          // Preferred stream rate (Hz).
	DefaultBitDepth     = 16             // Recording bit depth.
	DefaultFormat       = "wav"          // Recording container.
	DefaultFrames       = 512            // Frames per capture buffer.

	// Probe backends.
	BackendALSA      = "alsa"      // Pure-Go procfs probing.
	BackendPortAudio = "portaudio" // Host API probing via PortAudio.

	// Hardware limits.
	MinSampleRate   = 8000   // Minimum usable sample rate (Hz).
	MaxSampleRate   = 192000 // Maximum supported sample rate (Hz).
	MaxBufferFrames = 8192   // Maximum frames per buffer (power of 2).
)

// Config is the main application configuration, loaded from YAML.
type Config struct {
	Debug     bool            `yaml:"debug"`             // Verbose logging and other debug features.
	LogLevel  string          `yaml:"log_level"`         // Logging level ("debug", "info", "warn", "error").
	Command   string          `yaml:"command,omitempty"` // One-off command to execute instead of the TUI.
	TUIMode   bool            `yaml:"-"`                 // Terminal UI mode, set by the CLI.
	Devices   DeviceConfig    `yaml:"devices"`   // Device discovery settings.
	Capture   CaptureConfig   `yaml:"capture"`   // Audio recording settings.
	Transport TransportConfig `yaml:"transport"` // Inventory publishing settings.
}

// DeviceConfig holds settings for device discovery and probing.
type DeviceConfig struct {
	WatchDir     string `yaml:"watch_dir"`     // Directory watched for device node changes.
	ProcRoot     string `yaml:"proc_root"`     // ALSA procfs root for the registry and prober.
	ProbeBackend string `yaml:"probe_backend"` // "alsa" or "portaudio".
}

// CaptureConfig holds settings for recording from an input device.
type CaptureConfig struct {
	Device          string `yaml:"device"`               // Device name to capture from ("" for default input).
	OutputDir       string `yaml:"output_dir"`           // Directory to save recorded files.
	OutputFile      string `yaml:"-"`                    // Explicit output path, set by the CLI.
	Format          string `yaml:"format"`               // File format for recordings (wav only for now).
	BitDepth        int    `yaml:"bit_depth"`            // Bit depth for recorded audio (16 or 24).
	SampleRate      int    `yaml:"sample_rate"`          // Capture sample rate in Hz.
	Channels        int    `yaml:"channels"`             // Channels to capture (1 mono, 2 stereo).
	FramesPerBuffer int    `yaml:"frames_per_buffer"`    // Frames per capture buffer.
	LowLatency      bool   `yaml:"low_latency"`          // Request low latency settings from the device.
	MaxDuration     int    `yaml:"max_duration_seconds"` // Max seconds per file (0 for unlimited).
}

// TransportConfig holds settings for publishing inventory changes over the network.
type TransportConfig struct {
	WSEnabled        bool          `yaml:"ws_enabled"`         // Serve inventory snapshots over WebSocket.
	WSListenAddress  string        `yaml:"ws_listen_address"`  // Listen address for the WebSocket server.
	UDPEnabled       bool          `yaml:"udp_enabled"`        // Send change packets over UDP.
	UDPTargetAddress string        `yaml:"udp_target_address"` // Target address and port for UDP packets.
	UDPSendInterval  time.Duration `yaml:"udp_send_interval"`  // Minimum interval between UDP packets.
}
