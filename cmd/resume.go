package main

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"image/color"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gopherforge/primish/internal/engine"
	"github.com/gopherforge/primish/internal/export"
	"github.com/gopherforge/primish/internal/geom"
	"github.com/gopherforge/primish/internal/pixel"
	"github.com/gopherforge/primish/internal/search"
	"github.com/gopherforge/primish/internal/store"
)

var (
	resumeOutput string
	resumeExtra  int
)

var resumeCmd = &cobra.Command{
	Use:   "resume <job-id>",
	Short: "Continue a checkpointed run from its saved shape history",
	Long: `resume loads a checkpoint's committed shape history, replays it onto
a fresh canvas built from the checkpoint's original reference image, and
continues the search for --add more shapes before exporting.

The search itself is not resumed bit-for-bit: the hill-climb's RNG state
and in-flight candidates are not part of a checkpoint, only the shapes
already committed. Replaying those onto a fresh canvas reproduces the
canvas exactly; the worker pool then restarts its own random exploration
from there.`,
	Args: cobra.ExactArgs(1),
	RunE: runResume,
}

func init() {
	resumeCmd.Flags().StringVarP(&resumeOutput, "output", "o", "", "output path (required); extension selects format")
	resumeCmd.Flags().IntVar(&resumeExtra, "add", 0, "additional shapes to search for after replaying the checkpoint")
	resumeCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, args []string) error {
	jobID := args[0]

	checkpointStore, err := store.NewFSStore(dataDir)
	if err != nil {
		return fmt.Errorf("open checkpoint store: %w", err)
	}
	checkpoint, err := checkpointStore.LoadCheckpoint(jobID)
	if err != nil {
		return fmt.Errorf("load checkpoint: %w", err)
	}
	if err := checkpoint.Validate(); err != nil {
		return fmt.Errorf("invalid checkpoint: %w", err)
	}

	fmt.Printf("loaded checkpoint %s: %d shapes, score %.6f, mode %s\n",
		shortID(checkpoint.JobID), checkpoint.Iteration, checkpoint.BestScore, checkpoint.Config.Mode)

	f, err := os.Open(checkpoint.Config.RefPath)
	if err != nil {
		return fmt.Errorf("open reference image %s: %w", checkpoint.Config.RefPath, err)
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode reference image: %w", err)
	}

	canvas, err := engine.NewCanvas(src, uint(0), uint(0), checkpoint.Config.Alpha, nil)
	if err != nil {
		return fmt.Errorf("rebuild canvas: %w", err)
	}

	history := make([]search.State, len(checkpoint.History))
	for i, enc := range checkpoint.History {
		shape := geom.Decode(enc)
		c := checkpoint.Colors[i]
		lines := shape.Rasterize(canvas.W, canvas.H)
		pixel.Draw(canvas.Current, lines, colorFromBytes(c))
		history[i] = search.State{Shape: shape, Color: colorFromBytes(c)}
	}
	canvas.Score = pixel.DiffFull(canvas.Origin, canvas.Current)
	fmt.Printf("replayed canvas score: %.6f (checkpoint recorded %.6f)\n", canvas.Score, checkpoint.BestScore)

	if resumeExtra <= 0 {
		return export.Save(resumeOutput, history, canvas.W, canvas.H, canvas.Scale, canvas.Bg)
	}

	kind, err := shapeKind(modeIndex(checkpoint.Config.Mode))
	if err != nil {
		return fmt.Errorf("invalid configuration: checkpoint mode %q: %w", checkpoint.Config.Mode, err)
	}
	runner := engine.NewRunner(canvas, engine.Config{
		Kind:        kind,
		WorkerCount: checkpoint.Config.Workers,
		N:           140,
		M:           16,
		Age:         100,
		Alpha:       checkpoint.Config.Alpha,
	})
	runner.OnStep(func(index int, st search.State) {
		slog.Info("committed shape", "index", len(history)+index, "score", st.Score)
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := runner.Run(ctx, resumeExtra, 0); err != nil && ctx.Err() == nil {
		return fmt.Errorf("search: %w", err)
	}
	history = append(history, runner.History()...)

	cfg := checkpoint.Config
	if len(history) > cfg.ShapeCount {
		cfg.ShapeCount = len(history)
	}
	updated := store.NewCheckpoint(jobID, encodeHistory(history), colorBytes(history), canvas.Score, checkpoint.InitialScore, len(history), cfg)
	if err := checkpointStore.SaveCheckpoint(jobID, updated); err != nil {
		slog.Warn("checkpoint update failed", "error", err)
	}

	fmt.Printf("resumed to %d shapes, score %.6f\n", len(history), canvas.Score)
	return export.Save(resumeOutput, history, canvas.W, canvas.H, canvas.Scale, canvas.Bg)
}

func modeIndex(name string) int {
	for m := 0; m <= 8; m++ {
		if k, err := shapeKind(m); err == nil && k.String() == name {
			return m
		}
	}
	return -1
}

func encodeHistory(history []search.State) []geom.Encoded {
	out := make([]geom.Encoded, len(history))
	for i, st := range history {
		out[i] = geom.Encode(st.Shape)
	}
	return out
}

func colorBytes(history []search.State) [][4]uint8 {
	out := make([][4]uint8, len(history))
	for i, st := range history {
		out[i] = [4]uint8{st.Color.R, st.Color.G, st.Color.B, st.Color.A}
	}
	return out
}

func colorFromBytes(c [4]uint8) color.NRGBA {
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}
