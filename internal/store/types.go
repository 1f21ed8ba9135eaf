package store

import (
	"fmt"
	"time"

	"github.com/gopherforge/primish/internal/geom"
)

// JobConfig holds the configuration for a fitting job, persisted verbatim
// inside each Checkpoint.
type JobConfig struct {
	RefPath            string `json:"refPath"`
	Mode               string `json:"mode"` // shape kind: triangle, ellipse, combo, ...
	ShapeCount         int    `json:"shapeCount"`
	Workers            int    `json:"workers"`
	Seed               int64  `json:"seed"`
	Alpha              uint8  `json:"alpha"`
	CheckpointInterval int    `json:"checkpointInterval,omitempty"` // checkpoint every N committed shapes (0 = disabled)
}

// Checkpoint is a saved fitting run that can be resumed later.
//
// Optimizer state handling: a checkpoint saves the committed shape history
// and the resulting score, but not the hill-climb search's own RNG state
// or in-flight candidates. Resuming replays History onto a fresh canvas
// and continues the worker/coordinator loop from there; the search itself
// restarts from scratch with a new random seed, so the run after resume is
// not a bit-for-bit continuation of the one that was interrupted, only a
// score-compatible one (the committed shapes, and therefore the canvas
// they produce, are reproduced exactly).
type Checkpoint struct {
	JobID       string          `json:"jobId"`
	History     []geom.Encoded  `json:"history"`
	Colors      [][4]uint8      `json:"colors"` // parallel to History: R,G,B,A per shape
	BestScore   float64         `json:"bestScore"`
	InitialScore float64        `json:"initialScore"`
	Iteration   int             `json:"iteration"`
	Timestamp   time.Time       `json:"timestamp"`
	Config      JobConfig       `json:"config"`
}

// CheckpointInfo is a Checkpoint's metadata, without the shape history.
type CheckpointInfo struct {
	JobID      string    `json:"jobId"`
	BestScore  float64   `json:"bestScore"`
	Iteration  int       `json:"iteration"`
	Timestamp  time.Time `json:"timestamp"`
	Mode       string    `json:"mode"`
	ShapeCount int       `json:"shapeCount"`
	RefPath    string    `json:"refPath"`
}

// NewCheckpoint builds a Checkpoint from runtime job state.
func NewCheckpoint(jobID string, history []geom.Encoded, colors [][4]uint8, bestScore, initialScore float64, iteration int, config JobConfig) *Checkpoint {
	return &Checkpoint{
		JobID:        jobID,
		History:      history,
		Colors:       colors,
		BestScore:    bestScore,
		InitialScore: initialScore,
		Iteration:    iteration,
		Timestamp:    time.Now(),
		Config:       config,
	}
}

// ToInfo converts a full Checkpoint to its lightweight metadata form.
func (c *Checkpoint) ToInfo() CheckpointInfo {
	return CheckpointInfo{
		JobID:      c.JobID,
		BestScore:  c.BestScore,
		Iteration:  c.Iteration,
		Timestamp:  c.Timestamp,
		Mode:       c.Config.Mode,
		ShapeCount: c.Config.ShapeCount,
		RefPath:    c.Config.RefPath,
	}
}

// Validate reports whether the checkpoint's own fields are internally
// consistent, independent of any particular resume request.
func (c *Checkpoint) Validate() error {
	if c.JobID == "" {
		return &ValidationError{Field: "JobID", Reason: "cannot be empty"}
	}
	if len(c.History) != len(c.Colors) {
		return &ValidationError{Field: "History", Reason: "must have one color per shape"}
	}
	if c.BestScore < 0 {
		return &ValidationError{Field: "BestScore", Reason: "cannot be negative"}
	}
	if c.InitialScore < 0 {
		return &ValidationError{Field: "InitialScore", Reason: "cannot be negative"}
	}
	if c.Iteration < 0 {
		return &ValidationError{Field: "Iteration", Reason: "cannot be negative"}
	}
	if c.Timestamp.IsZero() {
		return &ValidationError{Field: "Timestamp", Reason: "cannot be zero"}
	}
	if c.Config.RefPath == "" {
		return &ValidationError{Field: "Config.RefPath", Reason: "cannot be empty"}
	}
	if c.Config.Mode == "" {
		return &ValidationError{Field: "Config.Mode", Reason: "cannot be empty"}
	}
	if c.Config.ShapeCount <= 0 {
		return &ValidationError{Field: "Config.ShapeCount", Reason: "must be positive"}
	}
	if len(c.History) > c.Config.ShapeCount {
		return &ValidationError{
			Field:  "History",
			Reason: fmt.Sprintf("has %d shapes, more than the configured %d", len(c.History), c.Config.ShapeCount),
		}
	}
	return nil
}

// ValidationError reports a single invalid Checkpoint field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}

// IsCompatible reports whether this checkpoint can be resumed under config.
func (c *Checkpoint) IsCompatible(config JobConfig) error {
	if c.Config.RefPath != config.RefPath {
		return &CompatibilityError{Field: "RefPath", Expected: c.Config.RefPath, Actual: config.RefPath}
	}
	if c.Config.Mode != config.Mode {
		return &CompatibilityError{Field: "Mode", Expected: c.Config.Mode, Actual: config.Mode}
	}
	if c.Config.ShapeCount != config.ShapeCount {
		return &CompatibilityError{
			Field:    "ShapeCount",
			Expected: fmt.Sprintf("%d", c.Config.ShapeCount),
			Actual:   fmt.Sprintf("%d", config.ShapeCount),
		}
	}
	return nil
}

// CompatibilityError reports a field that differs between a checkpoint and
// the config a caller wants to resume it with.
type CompatibilityError struct {
	Field    string
	Expected string
	Actual   string
}

func (e *CompatibilityError) Error() string {
	return "compatibility error: " + e.Field + " mismatch (expected " + e.Expected + ", got " + e.Actual + ")"
}
