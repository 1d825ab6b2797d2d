package main

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInstance(t *testing.T, days int, scores []int, libs ...Library) *Instance {
	t.Helper()
	in := NewInstance(days, scores)
	for _, l := range libs {
		require.NoError(t, in.AddLibrary(l.SignupTime, l.BooksPerDay, l.Books))
	}
	return in
}

// randomInstance builds an instance with heavy book overlap between libraries.
func randomInstance(t *testing.T, r *rand.Rand, numBooks, numLibs, days int) *Instance {
	t.Helper()
	scores := make([]int, numBooks)
	for i := range scores {
		scores[i] = r.IntN(100)
	}
	in := NewInstance(days, scores)
	for range numLibs {
		ids := r.Perm(numBooks)[:1+r.IntN(numBooks)]
		require.NoError(t, in.AddLibrary(r.IntN(days/3+1), 1+r.IntN(3), ids))
	}
	return in
}

func TestOptimizeSharedBookScenario(t *testing.T) {
	in := mustInstance(t, 5, []int{1, 2},
		Library{SignupTime: 1, BooksPerDay: 1, Books: []int{0}},
		Library{SignupTime: 1, BooksPerDay: 2, Books: []int{1, 0}},
	)

	res := NewOptimizer(in, DefaultConfig(), nil).Optimize()

	require.Len(t, res.Signups, 1)
	assert.Equal(t, Signup{LibraryID: 1, SignupTime: 1, Score: 3, Books: []int{1, 0}}, res.Signups[0])
	assert.Equal(t, 3, res.Score)
	assert.Equal(t, 1, res.DaysUsed)
}

func TestOptimizeExample(t *testing.T) {
	in, err := LoadInstance("testdata/a_example.txt")
	require.NoError(t, err)

	res := NewOptimizer(in, DefaultConfig(), nil).Optimize()

	require.Len(t, res.Signups, 2)
	assert.Equal(t, 0, res.Signups[0].LibraryID)
	assert.Equal(t, []int{3, 4, 2, 1, 0}, res.Signups[0].Books)
	assert.Equal(t, 17, res.Signups[0].Score)
	assert.Equal(t, 1, res.Signups[1].LibraryID)
	assert.Equal(t, []int{5}, res.Signups[1].Books, "shared books are claimed by library 0")
	assert.Equal(t, 4, res.Signups[1].Score)
	assert.Equal(t, 21, res.Score)
	assert.Equal(t, 5, res.DaysUsed)
}

func TestOptimizeTieGoesToSmallestID(t *testing.T) {
	in := mustInstance(t, 10, []int{4, 4, 4},
		Library{SignupTime: 9, BooksPerDay: 1, Books: []int{2}},
		Library{SignupTime: 9, BooksPerDay: 1, Books: []int{1}},
		Library{SignupTime: 9, BooksPerDay: 1, Books: []int{0}},
	)

	res := NewOptimizer(in, DefaultConfig(), nil).Optimize()

	require.Len(t, res.Signups, 1)
	assert.Equal(t, 0, res.Signups[0].LibraryID)
}

func TestOptimizeSkipsInfeasibleLibraries(t *testing.T) {
	// Library 0 cannot sign up in time; library 1 still must be considered.
	in := mustInstance(t, 3, []int{100, 1},
		Library{SignupTime: 4, BooksPerDay: 10, Books: []int{0}},
		Library{SignupTime: 1, BooksPerDay: 1, Books: []int{1}},
	)

	res := NewOptimizer(in, DefaultConfig(), nil).Optimize()

	require.Len(t, res.Signups, 1)
	assert.Equal(t, 1, res.Signups[0].LibraryID)
}

func TestOptimizeNeverSignsUpWorthlessLibraries(t *testing.T) {
	in := mustInstance(t, 10, []int{0, 0, 5},
		Library{SignupTime: 1, BooksPerDay: 1, Books: []int{0, 1}},
		Library{SignupTime: 1, BooksPerDay: 0, Books: []int{2}},
		Library{SignupTime: 0, BooksPerDay: 1},
	)

	res := NewOptimizer(in, DefaultConfig(), nil).Optimize()
	assert.Empty(t, res.Signups)
	assert.Zero(t, res.Score)
}

func TestOptimizeZeroSignupTimeTerminates(t *testing.T) {
	in := mustInstance(t, 2, []int{1, 2, 3},
		Library{SignupTime: 0, BooksPerDay: 1, Books: []int{0}},
		Library{SignupTime: 0, BooksPerDay: 1, Books: []int{1}},
		Library{SignupTime: 0, BooksPerDay: 1, Books: []int{2}},
	)

	res := NewOptimizer(in, DefaultConfig(), nil).Optimize()

	require.Len(t, res.Signups, 3)
	assert.Equal(t, []int{2, 1, 0}, []int{res.Signups[0].LibraryID, res.Signups[1].LibraryID, res.Signups[2].LibraryID})
	assert.Zero(t, res.DaysUsed)
}

func TestOptimizeClaimCapacity(t *testing.T) {
	// Library 0 can scan only one of its books; under ClaimCapacity the
	// other stays available to library 1.
	in := mustInstance(t, 2, []int{10, 6},
		Library{SignupTime: 1, BooksPerDay: 1, Books: []int{0, 1}},
		Library{SignupTime: 0, BooksPerDay: 1, Books: []int{1}},
	)

	all := NewOptimizer(in, DefaultConfig(), nil).Optimize()
	require.Len(t, all.Signups, 1)
	assert.Equal(t, []int{0, 1}, all.Signups[0].Books)

	cfg := DefaultConfig()
	cfg.Policy = ClaimCapacity
	capped := NewOptimizer(in, cfg, nil).Optimize()
	require.Len(t, capped.Signups, 2)
	assert.Equal(t, []int{0}, capped.Signups[0].Books)
	assert.Equal(t, []int{1}, capped.Signups[1].Books)
	assert.Equal(t, 16, capped.Score)
}

func TestOptimizeLeavesInstanceUntouched(t *testing.T) {
	in, err := LoadInstance("testdata/a_example.txt")
	require.NoError(t, err)

	NewOptimizer(in, DefaultConfig(), nil).Optimize()

	assert.Equal(t, []int{3, 4, 2, 1, 0}, in.Libraries[0].Books)
	assert.Equal(t, []int{3, 5, 2, 0}, in.Libraries[1].Books)
}

func TestOptimizeLogsSignups(t *testing.T) {
	in, err := LoadInstance("testdata/a_example.txt")
	require.NoError(t, err)

	var buf bytes.Buffer
	NewOptimizer(in, DefaultConfig(), NewLogger(&buf, true)).Optimize()

	out := buf.String()
	assert.Contains(t, out, "msg=signup round=1 library=0 score=17")
	assert.Contains(t, out, "msg=signup round=2 library=1 score=4")
	assert.Contains(t, out, "no profitable library left")
}

func TestOptimizeProperties(t *testing.T) {
	for _, policy := range []ClaimPolicy{ClaimAll, ClaimCapacity} {
		t.Run(policy.String(), func(t *testing.T) {
			r := rand.New(rand.NewPCG(42, uint64(policy)))
			cfg := DefaultConfig()
			cfg.Policy = policy

			for range 50 {
				in := randomInstance(t, r, 40, 12, 30)
				res := NewOptimizer(in, cfg, nil).Optimize()

				// No book is reported by two signups.
				owner := map[int]int{}
				for _, s := range res.Signups {
					for _, b := range s.Books {
						prev, dup := owner[b]
						require.False(t, dup, "book %d reported by libraries %d and %d", b, prev, s.LibraryID)
						owner[b] = s.LibraryID
					}
				}

				// Every prefix fits the budget and every signup adds value.
				used := 0
				for _, s := range res.Signups {
					used += s.SignupTime
					require.LessOrEqual(t, used, in.Days)
					require.Positive(t, s.Score)
				}
				require.Equal(t, used, res.DaysUsed)

				// The judge credits exactly what the optimizer claimed.
				evaluated, err := Evaluate(in, res.Signups)
				require.NoError(t, err)
				require.Equal(t, res.Score, evaluated)

				// Same input, same output.
				again := NewOptimizer(in, cfg, nil).Optimize()
				require.Equal(t, FormatSubmission(res.Signups), FormatSubmission(again.Signups))
			}
		})
	}
}
