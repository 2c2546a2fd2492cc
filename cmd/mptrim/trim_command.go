package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mptrim/internal/config"
	"mptrim/internal/deps"
	"mptrim/internal/history"
	"mptrim/internal/hwaccel"
	"mptrim/internal/logging"
	"mptrim/internal/media/ffprobe"
	"mptrim/internal/services"
	"mptrim/internal/services/ffmpeg"
	"mptrim/internal/trim"
)

type trimFlags struct {
	keep                 bool
	skip                 int
	vaapi                string
	vaapiDecimate        string
	videoToolbox         bool
	videoToolboxDecimate bool
	debug                bool
	outputToCwd          bool
	vfparams             string
}

func runTrim(cmd *cobra.Command, configFlag string, flags trimFlags, inputArg string) error {
	cfg, _, _, err := config.Load(configFlag)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "cli", "load config", "", err)
	}

	// Flag rules fail before anything else happens, subprocesses included.
	accel, err := hwaccel.Resolve(hwaccel.Options{
		VAAPI:                flags.vaapi,
		VAAPIDecimate:        flags.vaapiDecimate,
		VideoToolbox:         flags.videoToolbox,
		VideoToolboxDecimate: flags.videoToolboxDecimate,
	})
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "cli", "resolve acceleration", "", err)
	}

	inputPath, err := filepath.Abs(inputArg)
	if err != nil {
		return services.Wrap(services.ErrFilesystem, "cli", "resolve input path", inputArg, err)
	}

	statuses := deps.CheckBinaries(deps.Requirements(cfg))
	if missing := deps.Missing(statuses); len(missing) > 0 {
		return services.Wrap(services.ErrConfiguration, "cli", "check binaries",
			"missing required binaries: "+strings.Join(missing, ", "), nil)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrFilesystem, "cli", "ensure directories", "", err)
	}

	logger, closeLogs, err := newLogger(cfg, flags.debug)
	if err != nil {
		return err
	}
	defer closeLogs()

	var ledger *history.Store
	if cfg.History.Enabled {
		ledger, err = history.Open(cfg.History.Path)
		if err != nil {
			logger.Warn("history ledger unavailable", "error", err)
		} else {
			defer ledger.Close()
		}
	}

	filter := cfg.Decimate.Filter
	if flags.vfparams != "" {
		filter = flags.vfparams
	}

	job := trim.Job{
		InputPath:      inputPath,
		OutputPath:     outputPath(inputPath, flags.outputToCwd),
		Filter:         filter,
		FrameDuration:  cfg.Decimate.FrameDuration,
		MergeTolerance: cfg.Decimate.MergeTolerance,
		Accel:          accel,
		Encode:         cfg.Encode,
		KeepOriginal:   flags.keep,
		SkipThreshold:  flags.skip,
		Debug:          flags.debug,
	}

	runner := ffmpeg.NewCLI(ffmpeg.WithBinary(cfg.Engine.FFmpegBinary))
	prober := ffprobe.NewCLI(cfg.Engine.FFprobeBinary)
	trimmer := trim.New(logger, runner, prober, ledger)

	outcome, err := trimmer.Run(cmd.Context(), job)
	if err != nil {
		return err
	}

	printOutcome(cmd.OutOrStdout(), job, outcome)
	return nil
}

// outputPath derives the destination next to the input, or in the working
// directory when requested.
func outputPath(inputPath string, toCwd bool) string {
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(inputPath, ext)
	if toCwd {
		stem = filepath.Base(stem)
	}
	return stem + ".trimmed" + ext
}

func newLogger(cfg *config.Config, debug bool) (*slog.Logger, func(), error) {
	level := cfg.Logging.Level
	if debug {
		level = "debug"
	}

	writers := []io.Writer{os.Stderr}
	closeLogs := func() {}
	if cfg.Paths.LogDir != "" {
		if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err == nil {
			logPath := filepath.Join(cfg.Paths.LogDir, "mptrim.log")
			if file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664); err == nil {
				writers = append(writers, file)
				closeLogs = func() { _ = file.Close() }
			}
		}
	}

	var writer io.Writer = writers[0]
	if len(writers) > 1 {
		writer = io.MultiWriter(writers...)
	}
	logger, err := logging.New(writer, logging.Options{Level: level, Format: cfg.Logging.Format})
	if err != nil {
		closeLogs()
		return nil, nil, services.Wrap(services.ErrConfiguration, "cli", "build logger", "", err)
	}
	return logger, closeLogs, nil
}

func printOutcome(out io.Writer, job trim.Job, outcome trim.Outcome) {
	p := message.NewPrinter(language.English)
	switch outcome.State {
	case trim.StateSkipped:
		p.Fprintf(out, "Nothing to trim (%d keep span(s) found); %s left untouched\n",
			len(outcome.Keeps), filepath.Base(job.InputPath))
	case trim.StateDone:
		p.Fprintf(out, "Wrote %s: kept %d span(s), removed %.1fs of duplicate frames\n",
			outcome.OutputPath, len(outcome.Keeps), outcome.RemovedSeconds)
	default:
		fmt.Fprintf(out, "Run finished in state %s\n", outcome.State)
	}
}
