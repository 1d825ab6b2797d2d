//go:build !lambda

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
)

// InstanceResult holds the outcome and timing for one instance file.
type InstanceResult struct {
	Name      string `json:"name"`
	Libraries int    `json:"libraries"`
	Score     int    `json:"score"`
	Evaluated int    `json:"evaluated"`
	DaysUsed  int    `json:"daysUsed"`
	Output    string `json:"output"`
	TimeMs    int64  `json:"timeMs"`
}

// BenchOutput is the JSON-serializable result of a batch run.
type BenchOutput struct {
	Date       string           `json:"date"`
	Workers    int              `json:"workers"`
	Policy     string           `json:"policy"`
	Results    []InstanceResult `json:"results"`
	TotalScore int              `json:"totalScore"`
	TotalMs    int64            `json:"totalMs"`
}

func outputPath(path string, cfg Config) string {
	dir := cfg.OutputDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	return filepath.Join(dir, filepath.Base(path)+cfg.OutputSuffix)
}

func runInstance(ctx context.Context, path string, cfg Config, log *slog.Logger) (InstanceResult, error) {
	if err := ctx.Err(); err != nil {
		return InstanceResult{}, err
	}
	in, err := LoadInstance(path)
	if err != nil {
		return InstanceResult{}, err
	}

	log = log.With("instance", filepath.Base(path))
	res := NewOptimizer(in, cfg, log).Optimize()
	evaluated, err := Evaluate(in, res.Signups)
	if err != nil {
		return InstanceResult{}, fmt.Errorf("%s: evaluating submission: %w", path, err)
	}
	log.Debug("result\n" + FormatResult(in, res))

	out := outputPath(path, cfg)
	if err := writeSubmissionFile(out, res.Signups); err != nil {
		return InstanceResult{}, err
	}

	return InstanceResult{
		Name:      filepath.Base(path),
		Libraries: len(res.Signups),
		Score:     res.Score,
		Evaluated: evaluated,
		DaysUsed:  res.DaysUsed,
		Output:    out,
		TimeMs:    res.Elapsed.Milliseconds(),
	}, nil
}

func writeSubmissionFile(path string, signups []Signup) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating submission: %w", err)
	}
	if err := WriteSubmission(f, signups); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// runBatch solves every instance with at most cfg.Workers running at once.
// Instances share nothing, so the only coordination is the first error
// cancelling the rest. Results keep the order of paths.
func runBatch(ctx context.Context, paths []string, cfg Config, log *slog.Logger) ([]InstanceResult, error) {
	results := make([]InstanceResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))

	for i, path := range paths {
		g.Go(func() error {
			log.Info("solving", "n", i+1, "of", len(paths), "instance", filepath.Base(path))
			r, err := runInstance(ctx, path, cfg, log)
			if err != nil {
				return err
			}
			results[i] = r
			log.Info("solved",
				"instance", r.Name,
				"libraries", r.Libraries,
				"score", r.Score,
				"elapsed", time.Duration(r.TimeMs)*time.Millisecond,
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printTable(w io.Writer, results []InstanceResult) {
	fmt.Fprintf(w, "%-32s %9s %12s %8s\n", "Instance", "Libraries", "Score", "Time")
	fmt.Fprintf(w, "%-32s %9s %12s %8s\n", "--------------------------------", "---------", "------------", "--------")
	var totalScore int
	var totalMs int64
	for _, r := range results {
		totalScore += r.Evaluated
		totalMs += r.TimeMs
		fmt.Fprintf(w, "%-32s %9d %12d %7.1fs\n", r.Name, r.Libraries, r.Evaluated, float64(r.TimeMs)/1000)
	}
	fmt.Fprintf(w, "%-32s %9s %12s %8s\n", "--------------------------------", "---------", "------------", "--------")
	fmt.Fprintf(w, "%-32s %9s %12d %7.1fs\n", "TOTAL", "", totalScore, float64(totalMs)/1000)
}

const usage = `Usage: book-scanner [flags] <instance>...

Positional arguments:
  instance   Instance file (text format, or JSON when named *.json).
             The submission is written to <instance>.output

Flags:
`

func main() {
	cfg := DefaultConfig()
	jsonOut := flag.Bool("json", false, "Output results as JSON")
	verbose := flag.Bool("verbose", false, "Log every signup decision to stderr")
	policy := flag.String("policy", cfg.Policy.String(), "Books a signed-up library claims: all or capacity")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Instances solved concurrently")
	flag.StringVar(&cfg.OutputDir, "out", "", "Directory for submissions (default: next to each instance)")
	flag.StringVar(&cfg.OutputSuffix, "suffix", cfg.OutputSuffix, "Suffix appended to the instance name for its submission")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	log := NewLogger(os.Stderr, *verbose)

	var err error
	if cfg.Policy, err = ParseClaimPolicy(*policy); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	results, err := runBatch(context.Background(), paths, cfg, log)
	if err != nil {
		log.Error("batch aborted", "err", err)
		os.Exit(1)
	}

	if *jsonOut {
		out := BenchOutput{
			Date:    time.Now().UTC().Format(time.RFC3339),
			Workers: cfg.Workers,
			Policy:  cfg.Policy.String(),
			Results: results,
			TotalMs: time.Since(start).Milliseconds(),
		}
		for _, r := range results {
			out.TotalScore += r.Evaluated
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(out)
		return
	}

	w := bufio.NewWriter(os.Stdout)
	printTable(w, results)
	w.Flush()
}
