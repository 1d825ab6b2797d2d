package main

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
)

// ClaimPolicy decides which of an activated library's books are claimed
// (removed from every other library) and reported in its signup.
type ClaimPolicy int

const (
	// ClaimAll claims and reports the library's whole inventory, including
	// books beyond what it can scan before the deadline.
	ClaimAll ClaimPolicy = iota
	// ClaimCapacity claims and reports only the books the library can scan,
	// i.e. the highest-scoring ones that were credited to it.
	ClaimCapacity
)

func (p ClaimPolicy) String() string {
	switch p {
	case ClaimAll:
		return "all"
	case ClaimCapacity:
		return "capacity"
	}
	return fmt.Sprintf("ClaimPolicy(%d)", int(p))
}

// ParseClaimPolicy maps "all" / "capacity" to a policy. The empty string is ClaimAll.
func ParseClaimPolicy(s string) (ClaimPolicy, error) {
	switch s {
	case "", "all":
		return ClaimAll, nil
	case "capacity":
		return ClaimCapacity, nil
	}
	return ClaimAll, fmt.Errorf("unknown claim policy %q (want all or capacity)", s)
}

// Config holds run parameters for the optimizer and the batch driver.
type Config struct {
	// Policy selects what a signed-up library claims. See ClaimPolicy.
	Policy ClaimPolicy
	// Workers caps how many instances a batch solves concurrently.
	Workers int
	// OutputSuffix is appended to the input file name to name the submission.
	OutputSuffix string
	// OutputDir receives submissions; empty means next to each input.
	OutputDir string
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Policy:       ClaimAll,
		Workers:      runtime.NumCPU(),
		OutputSuffix: ".output",
	}
}

// NewLogger returns a text logger writing to w. verbose enables per-round
// selection logs at debug level.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
