package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verboseCount int
	dataDir      string
	logger       *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "primish",
	Short: "Approximate a raster image with composed geometric primitives",
	Long: `primish greedily composes semi-transparent triangles, ellipses,
rectangles and related shapes onto a canvas until it approximates a
target image, then exports the result as a raster, vector, or animated
sequence.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		switch {
		case verboseCount >= 3:
			level = slog.LevelDebug - 4 // trace: one notch below debug
		case verboseCount == 2:
			level = slog.LevelDebug
		case verboseCount == 1:
			level = slog.LevelInfo
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		logger = slog.New(handler)
		slog.SetDefault(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verboseCount, "verbose", "v", "increase logging verbosity (-v info, -vv debug, -vvv trace)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "./data", "base directory for checkpoint and trace storage")
}
