// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file specified by path. If path is
// empty, it searches default locations ("config.yaml"). If no file is found, it
// uses built-in defaults. After loading, environment variable overrides are
// applied and the final configuration is validated.
func LoadConfig(path string) (*Config, error) {
	cfg := Config{
		Debug:    false,
		LogLevel: DefaultLogLevel,
		Devices: DeviceConfig{
			WatchDir:     DefaultWatchDir,
			ProcRoot:     DefaultProcRoot,
			ProbeBackend: DefaultProbeBackend,
		},
		Capture: CaptureConfig{
			Device:          "", // Default input device.
			OutputDir:       "./recordings",
			Format:          DefaultFormat,
			BitDepth:        DefaultBitDepth,
			SampleRate:      DefaultSampleRate,
			Channels:        2,
			FramesPerBuffer: DefaultFrames,
			MaxDuration:     0, // 0 for unlimited.
		},
		Transport: TransportConfig{
			WSEnabled:        false,
			WSListenAddress:  "127.0.0.1:8080",
			UDPEnabled:       false,
			UDPTargetAddress: "127.0.0.1:9090",
			UDPSendInterval:  33 * time.Millisecond,
		},
	}

	if path == "" {
		// Potential locations for the config file.
		candidates := []string{
			"config.yaml",
		}
		found := false
		for _, candidate := range candidates {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				found = true
				break
			}
		}
		if !found {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return &cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides AFTER loading from file.
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	switch c.Devices.ProbeBackend {
	case BackendALSA, BackendPortAudio:
	default:
		return fmt.Errorf("devices.probe_backend '%s' is not one of: %s, %s",
			c.Devices.ProbeBackend, BackendALSA, BackendPortAudio)
	}

	if c.Capture.SampleRate < MinSampleRate || c.Capture.SampleRate > MaxSampleRate {
		return fmt.Errorf("capture.sample_rate %d outside [%d, %d]",
			c.Capture.SampleRate, MinSampleRate, MaxSampleRate)
	}
	if c.Capture.FramesPerBuffer <= 0 || c.Capture.FramesPerBuffer > MaxBufferFrames {
		return fmt.Errorf("capture.frames_per_buffer %d outside (0, %d]",
			c.Capture.FramesPerBuffer, MaxBufferFrames)
	}
	if c.Capture.BitDepth != 16 && c.Capture.BitDepth != 24 {
		return fmt.Errorf("capture.bit_depth %d is not 16 or 24", c.Capture.BitDepth)
	}

	if c.Transport.WSEnabled && !strings.Contains(c.Transport.WSListenAddress, ":") {
		return fmt.Errorf("transport.ws_listen_address '%s' appears invalid (missing port?)",
			c.Transport.WSListenAddress)
	}
	if c.Transport.UDPEnabled {
		if !strings.Contains(c.Transport.UDPTargetAddress, ":") {
			return fmt.Errorf("transport.udp_target_address '%s' appears invalid (missing port?)",
				c.Transport.UDPTargetAddress)
		}
		if c.Transport.UDPSendInterval <= 0 {
			return fmt.Errorf("transport.udp_send_interval must be positive when UDP is enabled")
		}
	}

	return nil
}

// applyEnvOverrides layers ENV_-prefixed variables over the loaded values.
func (cfg *Config) applyEnvOverrides() {
	// ENV_{...}
	// These are general overrides.

	// ENV_DEBUG
	if val, ok := os.LookupEnv("ENV_DEBUG"); ok {
		if bVal, err := strconv.ParseBool(val); err == nil {
			cfg.Debug = bVal
			fmt.Printf("configuration: Overriding debug from env: %v\n", bVal)
		}
	}
	// ENV_LOG_LEVEL
	if val, ok := os.LookupEnv("ENV_LOG_LEVEL"); ok {
		cfg.LogLevel = val
		fmt.Printf("configuration: Overriding log_level from env: %s\n", val)
	}

	// ENV_WATCH_DIR
	if val, ok := os.LookupEnv("ENV_WATCH_DIR"); ok {
		cfg.Devices.WatchDir = val
		fmt.Printf("configuration: Overriding devices.watch_dir from env: %s\n", val)
	}
	// ENV_PROBE_BACKEND
	if val, ok := os.LookupEnv("ENV_PROBE_BACKEND"); ok {
		cfg.Devices.ProbeBackend = val
		fmt.Printf("configuration: Overriding devices.probe_backend from env: %s\n", val)
	}

	// ENV_UDP_{...}
	// These are specific to the transport layer.

	// ENV_UDP_ENABLED
	if val, ok := os.LookupEnv("ENV_UDP_ENABLED"); ok {
		if bVal, err := strconv.ParseBool(val); err == nil {
			cfg.Transport.UDPEnabled = bVal
			fmt.Printf("configuration: Overriding transport.udp_enabled from env: %v\n", bVal)
		}
	}
	// ENV_UDP_TARGET_ADDRESS
	if val, ok := os.LookupEnv("ENV_UDP_TARGET_ADDRESS"); ok {
		cfg.Transport.UDPTargetAddress = val
		fmt.Printf("configuration: Overriding transport.udp_target_address from env: %s\n", val)
	}
	// ENV_UDP_SEND_INTERVAL
	if val, ok := os.LookupEnv("ENV_UDP_SEND_INTERVAL"); ok {
		if dur, err := time.ParseDuration(val); err == nil {
			cfg.Transport.UDPSendInterval = dur
			fmt.Printf("configuration: Overriding transport.udp_send_interval from env: %s\n", dur)
		}
	}
}
