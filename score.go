package main

import (
	"fmt"
	"math"
)

// Capacity returns how many books l can scan if its signup starts with
// daysLeft days remaining. It is zero when nothing fits after the signup and
// saturates at math.MaxInt.
func (l *Library) Capacity(daysLeft int) int {
	after := daysLeft - l.SignupTime
	if after <= 0 || l.BooksPerDay <= 0 {
		return 0
	}
	if after > math.MaxInt/l.BooksPerDay {
		return math.MaxInt
	}
	return after * l.BooksPerDay
}

// Score returns the total score l would deliver if signed up with daysLeft
// days remaining: the sum over its first Capacity books. ok is false when the
// signup itself does not fit, which is distinct from a feasible zero.
func Score(books []Book, l *Library, daysLeft int) (score int, ok bool) {
	if daysLeft < l.SignupTime {
		return 0, false
	}
	n := min(len(l.Books), l.Capacity(daysLeft))
	for _, b := range l.Books[:n] {
		score += books[b].Score
	}
	return score, true
}

// Evaluate scores a submission against the original instance the way the
// judge does: libraries sign up one after another in order, each then scans
// up to its capacity of listed books, and a book scores only the first time
// it is scanned. It rejects submissions that reference unknown or repeated
// libraries, or books a library does not hold.
func Evaluate(in *Instance, signups []Signup) (int, error) {
	seenLib := make([]bool, len(in.Libraries))
	scanned := make([]bool, len(in.Books))
	day, total := 0, 0

	for i, s := range signups {
		if s.LibraryID < 0 || s.LibraryID >= len(in.Libraries) {
			return 0, fmt.Errorf("signup %d: unknown library %d", i, s.LibraryID)
		}
		if seenLib[s.LibraryID] {
			return 0, fmt.Errorf("signup %d: library %d signed up twice", i, s.LibraryID)
		}
		seenLib[s.LibraryID] = true
		lib := &in.Libraries[s.LibraryID]

		held := make(map[int]bool, len(lib.Books))
		for _, b := range lib.Books {
			held[b] = true
		}
		for _, b := range s.Books {
			if !held[b] {
				return 0, fmt.Errorf("signup %d: library %d does not hold book %d", i, s.LibraryID, b)
			}
		}

		n := min(len(s.Books), lib.Capacity(in.Days-day))
		for _, b := range s.Books[:n] {
			if !scanned[b] {
				scanned[b] = true
				total += in.Books[b].Score
			}
		}
		day += lib.SignupTime
	}
	return total, nil
}
