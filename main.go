package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"soundhub/cmd"
	"soundhub/internal/alsa"
	"soundhub/internal/capture"
	"soundhub/internal/config"
	"soundhub/internal/device"
	applog "soundhub/internal/log"
	"soundhub/internal/notify"
	"soundhub/internal/paprobe"
	"soundhub/internal/transport"
	"soundhub/internal/transport/udp"
	"soundhub/internal/tui"
	"soundhub/pkg/build"
)

// main wires the inventory engine to its consumers. The program flow has
// three phases:
//
// 1. Startup (Cold Path):
//   - Initialize build information
//   - Parse command line arguments and load configuration
//   - Execute one-off commands if requested
//
// 2. Running:
//   - Start the device watcher engine
//   - Publish inventory changes over the enabled transports
//   - Run the TUI, or block in watch/record mode
//
// 3. Shutdown (Cold Path):
//   - Handle termination signals
//   - Wake any blocked consumer and join the watcher
func main() {
	if err := build.Initialize(); err != nil {
		applog.Fatalf("%v", err)
	}

	cfg, err := cmd.ParseArgs()
	if err != nil {
		applog.Fatalf("%v", err)
	}
	if cfg == nil {
		// Help or version output.
		return
	}

	level, ok := applog.ParseLevel(cfg.LogLevel)
	if !ok {
		applog.Warnf("Unknown log level %q, using info", cfg.LogLevel)
		level = applog.LevelInfo
	}
	if cfg.Debug {
		level = applog.LevelDebug
	}
	applog.SetLevel(level)

	switch cfg.Command {
	case "record":
		if err := runRecord(cfg); err != nil {
			applog.Fatalf("record: %v", err)
		}
		return
	case "list", "watch":
		if err := runInventory(cfg); err != nil {
			applog.Fatalf("%s: %v", cfg.Command, err)
		}
		return
	}

	if !cfg.TUIMode {
		return
	}

	if err := runTUI(cfg); err != nil {
		applog.Fatalf("tui: %v", err)
	}
}

// buildEngine assembles the engine from the configured backends. The returned
// cleanup releases the prober when it holds resources of its own.
func buildEngine(cfg *config.Config, onChange func(*device.Snapshot)) (*device.Engine, func(), error) {
	registry := &alsa.Registry{Root: cfg.Devices.ProcRoot}

	var prober device.Prober
	cleanup := func() {}
	switch cfg.Devices.ProbeBackend {
	case config.BackendPortAudio:
		p, err := paprobe.New()
		if err != nil {
			return nil, nil, err
		}
		prober = p
		cleanup = func() { p.Close() }
	default:
		prober = &alsa.Prober{Root: cfg.Devices.ProcRoot}
	}

	source, err := notify.New(notify.Options{Dir: cfg.Devices.WatchDir})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	engine, err := device.NewEngine(device.Options{
		Registry:        registry,
		Prober:          prober,
		Source:          source,
		OnDevicesChange: onChange,
	})
	if err != nil {
		source.Close()
		cleanup()
		return nil, nil, err
	}

	return engine, cleanup, nil
}

// buildTransports assembles the enabled transports and returns a publish
// callback for inventory snapshots plus a shutdown function.
func buildTransports(cfg *config.Config) (func(*device.Snapshot), func(), error) {
	var transports []transport.Transport
	var publisher *udp.Publisher

	if cfg.Transport.WSEnabled {
		transports = append(transports, transport.NewWebSocketTransport(cfg.Transport.WSListenAddress))
	}
	if cfg.Transport.UDPEnabled {
		sender, err := udp.NewSender(cfg.Transport.UDPTargetAddress)
		if err != nil {
			return nil, nil, err
		}
		pub, err := udp.NewPublisher(cfg.Transport.UDPSendInterval, sender)
		if err != nil {
			sender.Close()
			return nil, nil, err
		}
		pub.Start()
		publisher = pub
		transports = append(transports, wrapSender(sender))
	}
	if len(transports) == 0 && cfg.Debug {
		transports = append(transports, transport.NewLoggingTransport())
	}

	var seq uint32
	publish := func(snap *device.Snapshot) {
		seq++
		msg := transport.NewInventoryMessage(seq, snap)
		for _, t := range transports {
			if _, isUDP := t.(senderTransport); isUDP {
				continue
			}
			if err := t.Send(msg); err != nil {
				applog.Warnf("transport: %v", err)
			}
		}
		if publisher != nil {
			publisher.Update(snap)
		}
	}

	shutdown := func() {
		if publisher != nil {
			publisher.Close()
		}
		for _, t := range transports {
			if err := t.Close(); err != nil {
				applog.Warnf("transport close: %v", err)
			}
		}
	}

	return publish, shutdown, nil
}

// senderTransport adapts the UDP sender into the Transport set so shutdown
// closes it with the rest; the publisher owns the actual packet flow.
type senderTransport struct {
	sender *udp.Sender
}

func wrapSender(s *udp.Sender) senderTransport { return senderTransport{sender: s} }

func (s senderTransport) Send(any) error { return nil }
func (s senderTransport) Close() error   { return s.sender.Close() }

// runInventory implements the list and watch commands.
func runInventory(cfg *config.Config) error {
	publish, shutdownTransports, err := buildTransports(cfg)
	if err != nil {
		return err
	}
	defer shutdownTransports()

	engine, cleanup, err := buildEngine(cfg, publish)
	if err != nil {
		return err
	}
	defer cleanup()
	defer engine.Close()

	engine.FlushEvents()
	printSnapshot(engine.Devices())

	if cfg.Command == "list" {
		return nil
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	quit := make(chan struct{})
	go func() {
		<-done
		close(quit)
		engine.Wakeup()
	}()

	for {
		engine.WaitEvents()
		select {
		case <-quit:
			return nil
		default:
		}
		engine.FlushEvents()
		printSnapshot(engine.Devices())
	}
}

// printSnapshot writes the inventory in the list command's format.
func printSnapshot(snap *device.Snapshot) {
	if snap == nil {
		return
	}

	fmt.Printf("\nSound Devices (%d playback, %d capture)\n\n",
		len(snap.Outputs), len(snap.Inputs))

	printSection := func(name string, devices []*device.Descriptor, defaultIndex int) {
		if len(devices) == 0 {
			return
		}
		fmt.Printf("%s:\n", name)
		for i, d := range devices {
			marker := " "
			if i == defaultIndex {
				marker = "*"
			}
			fmt.Printf("%s [%d] %s\n", marker, i, d.Name)
			fmt.Printf("      %s\n", d.Description)
			fmt.Printf("      %d - %d Hz (default %d), %s\n",
				d.SampleRateMin, d.SampleRateMax, d.SampleRateDefault, d.Layout.Name)
		}
		fmt.Println()
	}

	printSection("Playback", snap.Outputs, snap.DefaultOutput)
	printSection("Capture", snap.Inputs, snap.DefaultInput)
}

// runRecord implements the record command.
func runRecord(cfg *config.Config) error {
	recorder, err := capture.NewRecorder(cfg.Capture)
	if err != nil {
		return err
	}
	defer recorder.Close()

	if err := os.MkdirAll(cfg.Capture.OutputDir, 0o755); err != nil {
		return err
	}

	filename := cfg.Capture.OutputFile
	if filename == "" {
		filename = recorder.OutputPath(time.Now().UTC())
	}

	if err := recorder.StartInputStream(); err != nil {
		return err
	}
	if err := recorder.StartRecording(filename); err != nil {
		return err
	}
	applog.Infof("Recording to %s", filename)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	if cfg.Capture.MaxDuration > 0 {
		select {
		case <-done:
		case <-time.After(time.Duration(cfg.Capture.MaxDuration) * time.Second):
		}
	} else {
		<-done
	}

	if err := recorder.StopRecording(); err != nil {
		return err
	}
	fmt.Printf("\nRecording saved to: %s\n", filename)
	return nil
}

// runTUI runs the live inventory terminal UI.
func runTUI(cfg *config.Config) error {
	publish, shutdownTransports, err := buildTransports(cfg)
	if err != nil {
		return err
	}
	defer shutdownTransports()

	engine, cleanup, err := buildEngine(cfg, publish)
	if err != nil {
		return err
	}
	defer cleanup()
	defer engine.Close()

	return tui.StartDeviceListUI(engine)
}
