package trim

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"mptrim/internal/decimate"
	"mptrim/internal/fileutil"
	"mptrim/internal/history"
	"mptrim/internal/media/ffprobe"
	"mptrim/internal/services"
	"mptrim/internal/services/ffmpeg"
)

// Outcome summarizes a finished run.
type Outcome struct {
	RunID          string
	State          State
	OutputPath     string
	Keeps          []decimate.Span
	Discards       []decimate.Span
	RemovedSeconds float64
}

// Trimmer orchestrates the two ffmpeg passes for a single run. It is
// strictly sequential: the cut pass never starts before the analysis pass
// has exited and its log is fully captured.
type Trimmer struct {
	logger *slog.Logger
	runner ffmpeg.Runner
	prober ffprobe.Prober
	ledger *history.Store
}

// New constructs a trimmer. The ledger may be nil when history is disabled.
func New(logger *slog.Logger, runner ffmpeg.Runner, prober ffprobe.Prober, ledger *history.Store) *Trimmer {
	return &Trimmer{logger: logger, runner: runner, prober: prober, ledger: ledger}
}

// Run executes the full pipeline for job. The input file is never deleted
// unless the run reaches Done with KeepOriginal and Debug both unset.
func (t *Trimmer) Run(ctx context.Context, job Job) (Outcome, error) {
	runID := uuid.NewString()[:8]
	logger := t.logger.With("component", "trim", "run_id", runID)
	started := time.Now()
	outcome := Outcome{RunID: runID, State: StateIdle, OutputPath: job.OutputPath}

	inputInfo, err := os.Stat(job.InputPath)
	if err != nil {
		outcome.State = StateFailed
		return outcome, services.Wrap(services.ErrFilesystem, "trim", "stat input", job.InputPath, err)
	}
	inputBytes := inputInfo.Size()

	lock := flock.New(runLockPath(job.InputPath))
	locked, err := lock.TryLock()
	if err != nil {
		outcome.State = StateFailed
		return outcome, services.Wrap(services.ErrFilesystem, "trim", "acquire run lock", lock.Path(), err)
	}
	if !locked {
		outcome.State = StateFailed
		return outcome, services.Wrap(services.ErrFilesystem, "trim", "acquire run lock",
			fmt.Sprintf("another mptrim run is already processing %s", job.InputPath), nil)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	workspace, err := os.MkdirTemp("", "mptrim-"+runID+"-")
	if err != nil {
		outcome.State = StateFailed
		return outcome, services.Wrap(services.ErrFilesystem, "trim", "create workspace", "", err)
	}
	defer func() {
		if job.Debug {
			logger.Debug("debug enabled, retaining workspace", "workspace", workspace)
			return
		}
		_ = os.RemoveAll(workspace)
	}()

	probe, err := t.prober.Inspect(ctx, job.InputPath)
	if err != nil {
		outcome.State = StateFailed
		return outcome, services.Wrap(services.ErrExternalTool, "trim", "probe input", job.InputPath, err)
	}
	duration := probe.DurationSeconds()
	hasAudio := probe.AudioStreamCount() > 0
	logger.Debug("probed input", "duration", duration, "has_audio", hasAudio,
		"frame_duration", probe.FrameDurationSeconds())

	outcome.State = StateAnalyzing
	analysisLog, err := t.analyze(ctx, logger, job, workspace)
	if err != nil {
		outcome.State = StateFailed
		t.record(ctx, job, outcome, started, inputBytes)
		return outcome, err
	}

	keeps, discards, err := t.computeSegments(logger, job, analysisLog, duration)
	if err != nil {
		outcome.State = StateFailed
		t.record(ctx, job, outcome, started, inputBytes)
		return outcome, err
	}
	outcome.Keeps = keeps
	outcome.Discards = discards
	outcome.RemovedSeconds = removedSeconds(discards)

	if len(keeps) < job.SkipThreshold {
		logger.Warn("fewer parts than threshold, skipping re-encode",
			"keep_spans", len(keeps), "threshold", job.SkipThreshold)
		outcome.State = StateSkipped
		t.record(ctx, job, outcome, started, inputBytes)
		return outcome, nil
	}

	outcome.State = StateCutting
	if err := t.cut(ctx, logger, job, workspace, keeps, duration, hasAudio); err != nil {
		outcome.State = StateFailed
		t.record(ctx, job, outcome, started, inputBytes)
		return outcome, err
	}

	outcome.State = StateFinalizing
	if err := t.finalize(logger, job); err != nil {
		outcome.State = StateFailed
		t.record(ctx, job, outcome, started, inputBytes)
		return outcome, err
	}

	outcome.State = StateDone
	t.record(ctx, job, outcome, started, inputBytes)
	logger.Info("run complete", "output", job.OutputPath,
		"removed_seconds", outcome.RemovedSeconds, "elapsed", time.Since(started))
	return outcome, nil
}

// analyze runs the decimate pass against a null sink and returns the path
// of the captured stderr log.
func (t *Trimmer) analyze(ctx context.Context, logger *slog.Logger, job Job, workspace string) (string, error) {
	args := append([]string{}, job.Accel.DecimateArgs()...)
	args = append(args,
		"-i", job.InputPath,
		"-vf", job.Filter,
		"-loglevel", "debug",
		"-f", "null", "-",
	)

	inv := ffmpeg.Invocation{
		Args:       args,
		StdoutPath: filepath.Join(workspace, "decimate.stdout.log"),
		StderrPath: filepath.Join(workspace, "decimate.stderr.log"),
	}
	logger.Info("analysis pass starting", "command", ffmpeg.FormatArgs("ffmpeg", args))
	logger.Debug("capturing analysis output", "stdout", inv.StdoutPath, "stderr", inv.StderrPath)

	phase := time.Now()
	if err := t.runner.Run(ctx, inv); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "trim", "analysis pass", "", err)
	}
	logger.Info("analysis pass finished", "elapsed", time.Since(phase))
	return inv.StderrPath, nil
}

func (t *Trimmer) computeSegments(logger *slog.Logger, job Job, analysisLog string, duration float64) ([]decimate.Span, []decimate.Span, error) {
	file, err := os.Open(analysisLog)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrFilesystem, "trim", "open analysis log", analysisLog, err)
	}
	defer file.Close()

	drops, err := decimate.ParseDropEvents(file)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrParse, "trim", "parse analysis log", analysisLog, err)
	}

	discards := decimate.MergeDrops(drops, job.FrameDuration, job.MergeTolerance)
	keeps := decimate.KeepSpans(discards, duration)
	logger.Info("segments computed",
		"drop_events", len(drops), "discard_spans", len(discards), "keep_spans", len(keeps))
	for _, span := range keeps {
		logger.Debug("keeping", "from", span.Start, "to", span.End)
	}
	return keeps, discards, nil
}

// cut writes the ffconcat playlist and runs the re-encode pass.
func (t *Trimmer) cut(ctx context.Context, logger *slog.Logger, job Job, workspace string, keeps []decimate.Span, duration float64, hasAudio bool) error {
	outputDir := filepath.Dir(job.OutputPath)
	if err := fileutil.CheckWritable(outputDir); err != nil {
		return services.Wrap(services.ErrFilesystem, "trim", "check output directory", outputDir, err)
	}
	inputInfo, err := os.Stat(job.InputPath)
	if err != nil {
		return services.Wrap(services.ErrFilesystem, "trim", "stat input", job.InputPath, err)
	}
	free, err := fileutil.FreeSpace(outputDir)
	if err != nil {
		return services.Wrap(services.ErrFilesystem, "trim", "check free space", outputDir, err)
	}
	if free < uint64(inputInfo.Size()) {
		return services.Wrap(services.ErrFilesystem, "trim", "check free space",
			fmt.Sprintf("%s has %d bytes free, input is %d bytes", outputDir, free, inputInfo.Size()), nil)
	}

	playlistPath := filepath.Join(workspace, "mpdecimate_filter.ffconcat")
	playlist := decimate.Playlist(job.InputPath, keeps, duration)
	if err := os.WriteFile(playlistPath, []byte(playlist), 0o644); err != nil {
		return services.Wrap(services.ErrFilesystem, "trim", "write playlist", playlistPath, err)
	}
	logger.Debug("playlist written", "path", playlistPath, "entries", len(keeps))

	var args []string
	if job.Debug {
		args = append(args, "-loglevel", "debug")
	}
	args = append(args, job.Accel.TranscodeArgs()...)
	args = append(args,
		"-safe", "0",
		"-segment_time_metadata", "1",
		"-i", playlistPath,
	)
	if hasAudio {
		args = append(args, "-af", "aselect=concatdec_select")
	}
	args = append(args, "-c:v")
	args = append(args, job.Accel.EncoderArgs(job.Encode)...)
	args = append(args, job.OutputPath)

	inv := ffmpeg.Invocation{
		Args:       args,
		StdoutPath: filepath.Join(workspace, "transcode.stdout.log"),
		StderrPath: filepath.Join(workspace, "transcode.stderr.log"),
	}
	logger.Info("cut pass starting", "command", ffmpeg.FormatArgs("ffmpeg", args))

	phase := time.Now()
	if err := t.runner.Run(ctx, inv); err != nil {
		return services.Wrap(services.ErrExternalTool, "trim", "cut pass", "", err)
	}
	logger.Info("cut pass finished", "elapsed", time.Since(phase))
	return nil
}

func (t *Trimmer) finalize(logger *slog.Logger, job Job) error {
	ok, err := fileutil.NonEmptyFile(job.OutputPath)
	if err != nil {
		return services.Wrap(services.ErrFilesystem, "trim", "verify output", job.OutputPath, err)
	}
	if !ok {
		return services.Wrap(services.ErrFilesystem, "trim", "verify output",
			fmt.Sprintf("%s missing or empty after cut pass", job.OutputPath), nil)
	}

	if job.Debug {
		logger.Debug("debug enabled, not removing anything")
		return nil
	}
	if job.KeepOriginal {
		return nil
	}
	logger.Info("removing original file", "path", job.InputPath)
	if err := os.Remove(job.InputPath); err != nil {
		return services.Wrap(services.ErrFilesystem, "trim", "remove original", job.InputPath, err)
	}
	return nil
}

// record appends the run to the ledger, best-effort.
func (t *Trimmer) record(ctx context.Context, job Job, outcome Outcome, started time.Time, inputBytes int64) {
	if t.ledger == nil {
		return
	}

	rec := history.Record{
		RunID:          outcome.RunID,
		InputPath:      job.InputPath,
		OutputPath:     job.OutputPath,
		Mode:           job.Accel.Label(),
		State:          string(outcome.State),
		KeepCount:      len(outcome.Keeps),
		DiscardCount:   len(outcome.Discards),
		RemovedSeconds: outcome.RemovedSeconds,
		InputBytes:     inputBytes,
		StartedAt:      started,
		FinishedAt:     time.Now(),
	}
	if info, err := os.Stat(job.OutputPath); err == nil {
		rec.OutputBytes = info.Size()
	}
	if err := t.ledger.Append(ctx, rec); err != nil {
		t.logger.Warn("failed to record run history", "error", err)
	}
}

func removedSeconds(discards []decimate.Span) float64 {
	total := 0.0
	for _, span := range discards {
		total += span.Length()
	}
	return total
}

func runLockPath(inputPath string) string {
	sum := sha256.Sum256([]byte(inputPath))
	return filepath.Join(os.TempDir(), "mptrim-"+hex.EncodeToString(sum[:6])+".lock")
}
