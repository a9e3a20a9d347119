// SPDX-License-Identifier: MIT
/*
Package capture records from an audio input device to WAV files with:
- Lock-free audio capture using PortAudio
- WAV encoding with atomic recording state
- Pre-allocated buffers to avoid GC in the hot path
*/
package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gordonklaus/portaudio"

	"soundhub/internal/config"
	applog "soundhub/internal/log"
)

// Indirection points for tests.
var (
	paInitialize   = portaudio.Initialize
	paTerminate    = portaudio.Terminate
	paDevices      = portaudio.Devices
	paDefaultInput = portaudio.DefaultInputDevice
)

// Recorder captures audio from one input device and writes it to a WAV file.
type Recorder struct {
	cfg config.CaptureConfig

	// Audio input handling.
	inputBuffer  []int32
	inputDevice  *portaudio.DeviceInfo
	inputLatency time.Duration
	inputStream  *portaudio.Stream

	// Recording state and buffers.
	isRecording int32 // Atomic flag for thread-safe state
	outputFile  *os.File
	wavEncoder  *wav.Encoder
	sampleBuf   *audio.IntBuffer // Reusable buffer for format conversion
}

// NewRecorder initializes PortAudio and resolves the configured input device.
// Pair with a Close call.
func NewRecorder(cfg config.CaptureConfig) (*Recorder, error) {
	if err := paInitialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	inputDevice, err := resolveInput(cfg.Device)
	if err != nil {
		paTerminate()
		return nil, err
	}

	r := &Recorder{
		cfg:         cfg,
		inputBuffer: make([]int32, cfg.FramesPerBuffer*cfg.Channels),
		inputDevice: inputDevice,
	}

	if cfg.LowLatency {
		r.inputLatency = inputDevice.DefaultLowInputLatency
	} else {
		r.inputLatency = inputDevice.DefaultHighInputLatency
	}

	return r, nil
}

// resolveInput finds the capture device by name, or the system default input
// for an empty name.
func resolveInput(name string) (*portaudio.DeviceInfo, error) {
	if name == "" {
		device, err := paDefaultInput()
		if err != nil {
			return nil, fmt.Errorf("no default input device: %w", err)
		}
		return device, nil
	}

	devices, err := paDevices()
	if err != nil {
		return nil, err
	}
	for _, device := range devices {
		if device.MaxInputChannels == 0 {
			continue
		}
		if strings.Contains(device.Name, name) {
			return device, nil
		}
	}
	return nil, fmt.Errorf("no input device matches %q", name)
}

// StartInputStream opens and starts the capture stream.
func (r *Recorder) StartInputStream() error {
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Channels: r.cfg.Channels,
			Device:   r.inputDevice,
			Latency:  r.inputLatency,
		},
		Output: portaudio.StreamDeviceParameters{
			Channels: 0, // Capture only.
			Device:   nil,
		},
		FramesPerBuffer: r.cfg.FramesPerBuffer,
		SampleRate:      float64(r.cfg.SampleRate),
	}

	stream, err := portaudio.OpenStream(params, r.processInputStream)
	if err != nil {
		return err
	}
	r.inputStream = stream

	if err := r.inputStream.Start(); err != nil {
		r.inputStream.Close()
		return err
	}

	return nil
}

// StopInputStream stops and closes the capture stream.
func (r *Recorder) StopInputStream() error {
	if r.inputStream != nil {
		if err := r.inputStream.Stop(); err != nil {
			return err
		}

		if err := r.inputStream.Close(); err != nil {
			return err
		}

		r.inputStream = nil
	}

	return nil
}

// processInputStream is the capture callback.
// Performance Critical:
// - Runs in a dedicated OS thread (LockOSThread)
// - Uses pre-allocated buffers only
// - No dynamic allocations in the hot path
func (r *Recorder) processInputStream(in []int32) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	copy(r.inputBuffer, in)

	if atomic.LoadInt32(&r.isRecording) == 1 && r.wavEncoder != nil {
		for i, sample := range r.inputBuffer {
			r.sampleBuf.Data[i] = int(sample)
		}

		r.sampleBuf.Data = r.sampleBuf.Data[:len(r.inputBuffer)]

		if err := r.wavEncoder.Write(r.sampleBuf); err != nil {
			applog.Errorf("Error writing to WAV file: %v", err)
		}
	}
}

// StartRecording opens filename and begins encoding captured audio into it.
func (r *Recorder) StartRecording(filename string) error {
	if atomic.LoadInt32(&r.isRecording) == 1 {
		return fmt.Errorf("already recording")
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	r.outputFile = file

	r.wavEncoder = wav.NewEncoder(file, r.cfg.SampleRate,
		r.cfg.BitDepth, r.cfg.Channels, 1)

	r.sampleBuf = &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: r.cfg.Channels,
			SampleRate:  r.cfg.SampleRate,
		},
		Data: make([]int, r.cfg.FramesPerBuffer*r.cfg.Channels),
	}

	atomic.StoreInt32(&r.isRecording, 1)

	return nil
}

// StopRecording finalizes the WAV file. A no-op when not recording.
func (r *Recorder) StopRecording() error {
	if atomic.LoadInt32(&r.isRecording) == 0 {
		return nil
	}

	atomic.StoreInt32(&r.isRecording, 0)

	if r.wavEncoder != nil {
		if err := r.wavEncoder.Close(); err != nil {
			return err
		}
		r.wavEncoder = nil
	}

	if r.outputFile != nil {
		if err := r.outputFile.Close(); err != nil {
			return err
		}
		r.outputFile = nil
	}

	return nil
}

// OutputPath builds a timestamped recording path under the configured
// output directory.
func (r *Recorder) OutputPath(now time.Time) string {
	name := fmt.Sprintf("capture-%s.%s", now.Format("20060102-150405"), r.cfg.Format)
	return filepath.Join(r.cfg.OutputDir, name)
}

// Close stops any active recording and stream, then releases PortAudio.
func (r *Recorder) Close() error {
	if atomic.LoadInt32(&r.isRecording) == 1 {
		if err := r.StopRecording(); err != nil {
			return err
		}
	}

	if err := r.StopInputStream(); err != nil {
		return err
	}

	if err := paTerminate(); err != nil {
		return fmt.Errorf("failed to terminate PortAudio: %w", err)
	}
	return nil
}
