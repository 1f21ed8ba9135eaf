package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gopherforge/primish/internal/engine"
	"github.com/gopherforge/primish/internal/export"
	"github.com/gopherforge/primish/internal/geom"
	"github.com/gopherforge/primish/internal/search"
	"github.com/gopherforge/primish/internal/store"
)

var (
	runInput              string
	runOutput             string
	runCount              int
	runWorkers            int
	runMode               int
	runResize             int
	runSize               int
	runAlpha              int
	runBackground         string
	runCheckpointInterval int
	runJobID              string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Approximate an image with composed geometric primitives",
	Long: `run loads a reference image, greedily searches for the shape that
most reduces the distance to the target on every iteration, and exports
the committed history as a raster, vector, or animated sequence.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "input image path (required)")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "output path; extension selects format, {} indexes per-frame output (required)")
	runCmd.Flags().IntVarP(&runCount, "number", "n", 0, "shape budget (required)")
	runCmd.Flags().IntVarP(&runWorkers, "workers", "j", runtime.NumCPU(), "worker count")
	runCmd.Flags().IntVarP(&runMode, "mode", "m", 1, "shape family: 0=combo 1=triangle 2=rect 3=ellipse 4=circle 5=rotated-rect 6=quadratic 7=rotated-ellipse 8=quadrilateral")
	runCmd.Flags().IntVarP(&runResize, "resize", "r", 256, "resize target for the long edge before optimization")
	runCmd.Flags().IntVarP(&runSize, "size", "s", 1024, "output size for the long edge")
	runCmd.Flags().IntVarP(&runAlpha, "alpha", "a", 128, "alpha bias, 1-255")
	runCmd.Flags().StringVarP(&runBackground, "background", "b", "", "starting background color as hex RRGGBB; default is the average color of the resized target")
	runCmd.Flags().IntVar(&runCheckpointInterval, "checkpoint-interval", 0, "checkpoint every N committed shapes (0 disables)")
	runCmd.Flags().StringVar(&runJobID, "job-id", "", "job id used for checkpoint storage; generated if omitted and checkpointing is enabled")

	runCmd.MarkFlagRequired("input")
	runCmd.MarkFlagRequired("output")
	runCmd.MarkFlagRequired("number")
	rootCmd.AddCommand(runCmd)
}

func shapeKind(mode int) (geom.Kind, error) {
	switch mode {
	case 0:
		return geom.KindCombo, nil
	case 1:
		return geom.KindTriangle, nil
	case 2:
		return geom.KindRectangle, nil
	case 3:
		return geom.KindEllipse, nil
	case 4:
		return geom.KindCircle, nil
	case 5:
		return geom.KindRotatedRectangle, nil
	case 6:
		return geom.KindQuadratic, nil
	case 7:
		return geom.KindRotatedEllipse, nil
	case 8:
		return geom.KindPolygon, nil
	default:
		return 0, fmt.Errorf("unknown mode %d (expected 0-8)", mode)
	}
}

func parseHexColor(s string) (color.NRGBA, error) {
	s = trimHash(s)
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("background color must be 6 hex digits, got %q", s)
	}
	r, err := strconv.ParseUint(s[0:2], 16, 8)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid background color %q: %w", s, err)
	}
	g, err := strconv.ParseUint(s[2:4], 16, 8)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid background color %q: %w", s, err)
	}
	b, err := strconv.ParseUint(s[4:6], 16, 8)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid background color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, nil
}

func trimHash(s string) string {
	if len(s) > 0 && s[0] == '#' {
		return s[1:]
	}
	return s
}

// runRun wires the CLI's external surface onto the engine: decode, resize,
// search, checkpoint, export.
func runRun(cmd *cobra.Command, args []string) error {
	kind, err := shapeKind(runMode)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if runAlpha < 1 || runAlpha > 255 {
		return fmt.Errorf("invalid configuration: alpha bias must be in [1,255], got %d", runAlpha)
	}
	if runSize <= 0 || runResize <= 0 {
		return fmt.Errorf("invalid configuration: resize and size must be positive")
	}

	f, err := os.Open(runInput)
	if err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode input: %w", err)
	}

	var bg *color.NRGBA
	if runBackground != "" {
		parsed, err := parseHexColor(runBackground)
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		bg = &parsed
	}

	canvas, err := engine.NewCanvas(src, uint(runResize), uint(runSize), uint8(runAlpha), bg)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	runner := engine.NewRunner(canvas, engine.Config{
		Kind:        kind,
		WorkerCount: runWorkers,
		N:           140,
		M:           16,
		Age:         100,
		Alpha:       uint8(runAlpha),
	})

	var jobStore *store.FSStore
	var traceWriter *store.TraceWriter
	jobID := runJobID
	cfg := store.JobConfig{
		RefPath:            runInput,
		Mode:               kind.String(),
		ShapeCount:         runCount,
		Workers:            runWorkers,
		Alpha:              uint8(runAlpha),
		CheckpointInterval: runCheckpointInterval,
	}
	if runCheckpointInterval > 0 {
		if jobID == "" {
			jobID = uuid.NewString()
		}
		jobStore, err = store.NewFSStore(dataDir)
		if err != nil {
			return fmt.Errorf("open checkpoint store: %w", err)
		}
		traceWriter, err = store.NewTraceWriter(dataDir, jobID, false)
		if err != nil {
			return fmt.Errorf("open trace writer: %w", err)
		}
		defer traceWriter.Close()
		slog.Info("checkpointing enabled", "jobID", jobID, "interval", runCheckpointInterval)
	}

	initialScore := canvas.Score
	runner.OnStep(func(index int, st search.State) {
		slog.Info("committed shape", "index", index, "score", st.Score, "kind", st.Shape.Kind())
		if traceWriter != nil {
			if err := traceWriter.Write(store.TraceEntry{Iteration: index, Score: st.Score, Timestamp: time.Now()}); err != nil {
				slog.Warn("trace write failed", "error", err)
			}
		}
		if jobStore != nil && runCheckpointInterval > 0 && index%runCheckpointInterval == 0 {
			if err := saveCheckpoint(jobStore, jobID, runner.History(), canvas, initialScore, cfg); err != nil {
				slog.Warn("checkpoint write failed", "error", err)
			}
		}
	})

	runCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	start := time.Now()
	if err := runner.Run(runCtx, runCount, 0); err != nil && runCtx.Err() == nil {
		return fmt.Errorf("search: %w", err)
	}

	history := runner.History()
	if jobStore != nil {
		if err := saveCheckpoint(jobStore, jobID, history, canvas, initialScore, cfg); err != nil {
			return fmt.Errorf("save checkpoint: %w", err)
		}
	}
	if len(history) == 0 {
		return fmt.Errorf("search: cancelled before any shape was committed")
	}

	if err := export.Save(runOutput, history, canvas.W, canvas.H, canvas.Scale, canvas.Bg); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Printf("wrote %s (%d shapes, score %.6f -> %.6f, %s)\n",
		runOutput, len(history), initialScore, canvas.Score, time.Since(start).Round(time.Millisecond))
	return nil
}

// saveCheckpoint flattens a running history into a persistable Checkpoint.
func saveCheckpoint(s *store.FSStore, jobID string, history []search.State, canvas *engine.Canvas, initialScore float64, cfg store.JobConfig) error {
	encoded := make([]geom.Encoded, len(history))
	colors := make([][4]uint8, len(history))
	for i, st := range history {
		encoded[i] = geom.Encode(st.Shape)
		colors[i] = [4]uint8{st.Color.R, st.Color.G, st.Color.B, st.Color.A}
	}
	cp := store.NewCheckpoint(jobID, encoded, colors, canvas.Score, initialScore, len(history), cfg)
	return s.SaveCheckpoint(jobID, cp)
}
