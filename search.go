package main

import (
	"log/slog"
	"slices"
	"time"
)

// ── Optimizer ───────────────────────────────────────────────────────

// Optimizer greedily signs up libraries: each round it commits to the library
// with the highest achievable score under the remaining days, claims its
// books away from every other library and charges its signup time.
type Optimizer struct {
	books  []Book
	libs   []Library // private copy; inventories are pruned in place
	days   int
	policy ClaimPolicy
	log    *slog.Logger
}

// Result is the outcome of one Optimize run.
type Result struct {
	Signups  []Signup
	Score    int // sum of per-signup scores credited at selection
	DaysUsed int // sum of signup times
	Elapsed  time.Duration
}

// NewOptimizer prepares a run over in. The instance itself is not modified,
// so several optimizers may share it. A nil logger discards output.
func NewOptimizer(in *Instance, cfg Config, logger *slog.Logger) *Optimizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	o := &Optimizer{
		books:  in.Books,
		libs:   make([]Library, len(in.Libraries)),
		days:   in.Days,
		policy: cfg.Policy,
		log:    logger,
	}
	for i := range in.Libraries {
		l := in.Libraries[i]
		l.Books = slices.Clone(l.Books)
		l.retired = false
		o.libs[i] = l
	}
	return o
}

// ── Selection ───────────────────────────────────────────────────────

// bestLibrary returns the index of the candidate with the strictly highest
// positive score under daysLeft, or -1 if there is none. Candidates are
// scanned in ascending ID order, so ties go to the smallest ID. Libraries
// whose signup does not fit are skipped.
func (o *Optimizer) bestLibrary(daysLeft int) (int, int) {
	best, bestScore := -1, 0
	for i := range o.libs {
		lib := &o.libs[i]
		if lib.retired {
			continue
		}
		score, ok := Score(o.books, lib, daysLeft)
		if !ok {
			continue
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, bestScore
}

// ── Deduplication ───────────────────────────────────────────────────

// deduplicate removes every claimed book from the inventory of each live
// library that still holds it. Removal keeps the remaining books in order.
func (o *Optimizer) deduplicate(claimed []int) {
	for _, b := range claimed {
		for _, li := range o.books[b].Libraries {
			lib := &o.libs[li]
			if lib.retired {
				continue
			}
			lib.Books = slices.DeleteFunc(lib.Books, func(x int) bool { return x == b })
		}
	}
}

// claimed returns the books lib takes with it when it signs up with daysLeft
// remaining, according to the configured policy.
func (o *Optimizer) claimed(lib *Library, daysLeft int) []int {
	if o.policy == ClaimCapacity {
		return lib.Books[:min(len(lib.Books), lib.Capacity(daysLeft))]
	}
	return lib.Books
}

// ── Driver ──────────────────────────────────────────────────────────

// Optimize runs the greedy loop until the days run out or no library can add
// score, and returns the signups in activation order.
func (o *Optimizer) Optimize() Result {
	start := time.Now()
	res := Result{Signups: []Signup{}}

	daysLeft := o.days
	for round := 1; daysLeft > 0; round++ {
		li, score := o.bestLibrary(daysLeft)
		if li < 0 {
			o.log.Debug("no profitable library left", "round", round, "daysLeft", daysLeft)
			break
		}

		lib := &o.libs[li]
		books := slices.Clone(o.claimed(lib, daysLeft))
		res.Signups = append(res.Signups, Signup{
			LibraryID:  lib.ID,
			SignupTime: lib.SignupTime,
			Score:      score,
			Books:      books,
		})
		lib.retired = true
		o.deduplicate(books)

		res.Score += score
		res.DaysUsed += lib.SignupTime
		daysLeft -= lib.SignupTime

		o.log.Debug("signup",
			"round", round,
			"library", lib.ID,
			"score", score,
			"books", len(books),
			"daysLeft", daysLeft,
		)
	}

	res.Elapsed = time.Since(start)
	return res
}
