package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"soundhub/internal/config"
	"soundhub/pkg/build"
)

// ParseArgs builds the runtime configuration from the config file and command
// line flags. The bare invocation runs the TUI; subcommands select one-off
// modes recorded in Config.Command.
func ParseArgs() (*config.Config, error) {
	buildInfo := build.GetBuildFlags()

	var configPath string
	var verbose bool

	// Flag values layered over the loaded config after Execute.
	var watchDir, procRoot, backend string
	var captureDevice, outputFile string
	var durationSec int

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         buildInfo.Description,
		Version:       buildInfo.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
	}

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	var options *config.Config
	loadOptions := func() error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Debug = true
			cfg.LogLevel = "debug"
		}
		if watchDir != "" {
			cfg.Devices.WatchDir = watchDir
		}
		if procRoot != "" {
			cfg.Devices.ProcRoot = procRoot
		}
		if backend != "" {
			cfg.Devices.ProbeBackend = backend
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		if captureDevice != "" {
			cfg.Capture.Device = captureDevice
		}
		if outputFile != "" {
			cfg.Capture.OutputFile = outputFile
		}
		if durationSec > 0 {
			cfg.Capture.MaxDuration = durationSec
		}
		options = cfg
		return nil
	}

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := loadOptions(); err != nil {
			return err
		}
		options.TUIMode = true
		return nil
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List sound devices and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadOptions(); err != nil {
				return err
			}
			options.Command = "list"
			return nil
		},
	}
	rootCmd.AddCommand(listCmd)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the inventory on every hot-plug change",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadOptions(); err != nil {
				return err
			}
			options.Command = "watch"
			return nil
		},
	}
	rootCmd.AddCommand(watchCmd)

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Record from an input device to a WAV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadOptions(); err != nil {
				return err
			}
			options.Command = "record"
			return nil
		},
	}
	recordCmd.Flags().StringVarP(&captureDevice, "device", "d", "",
		"Input device name. Use 'list' to see available devices.")
	recordCmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"Output file name. Default is capture-YYYYMMDD-HHMMSS.wav in the output directory.")
	recordCmd.Flags().IntVarP(&durationSec, "duration", "t", 0,
		"Recording duration in seconds (0 records until interrupted)")
	rootCmd.AddCommand(recordCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&watchDir, "watch-dir", "",
		"Directory watched for device node changes")
	rootCmd.PersistentFlags().StringVar(&procRoot, "proc-root", "",
		"ALSA procfs root used by the registry and prober")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "",
		"Capability probe backend (alsa or portaudio)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Show verbose output")

	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}
	if options == nil {
		// Help or version output, nothing to run.
		return nil, nil
	}

	return options, nil
}
