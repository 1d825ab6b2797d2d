package main

import (
	"cmp"
	"fmt"
	"slices"
)

// Book is a unit of value. A book counts toward the total at most once, no
// matter how many libraries hold it.
type Book struct {
	ID    int
	Score int
	// Libraries lists every library that held this book at ingestion. Entries
	// go stale as libraries are pruned; the library's own Books is authoritative.
	Libraries []int
}

// Library is a candidate for signup. Books holds book IDs sorted by descending
// score, ties in listing order. The order is fixed at ingestion and only ever
// pruned afterwards.
type Library struct {
	ID          int
	SignupTime  int
	BooksPerDay int
	Books       []int

	retired bool // signed up; never a candidate again
}

// Instance is one parsed problem: the book arena, the library arena and the
// total number of days. Book and library IDs are their arena indices.
type Instance struct {
	Days      int
	Books     []Book
	Libraries []Library
}

// Signup is one activated library in the output sequence.
type Signup struct {
	LibraryID  int   `json:"library"`
	SignupTime int   `json:"signupTime"`
	Score      int   `json:"score"` // value credited at selection time
	Books      []int `json:"books"`
}

// NewInstance creates an instance with one book per score, IDs by position.
func NewInstance(days int, scores []int) *Instance {
	in := &Instance{
		Days:  days,
		Books: make([]Book, len(scores)),
	}
	for i, s := range scores {
		in.Books[i] = Book{ID: i, Score: s}
	}
	return in
}

// AddLibrary appends the next library (ID = current library count), sorts its
// books by descending score and records the back-references on each book.
func (in *Instance) AddLibrary(signupTime, booksPerDay int, bookIDs []int) error {
	id := len(in.Libraries)
	if signupTime < 0 || booksPerDay < 0 {
		return fmt.Errorf("%w: library %d: negative signup time %d or books per day %d",
			ErrMalformed, id, signupTime, booksPerDay)
	}
	for _, b := range bookIDs {
		if b < 0 || b >= len(in.Books) {
			return fmt.Errorf("%w: library %d lists book %d (have %d books)",
				ErrBookOutOfRange, id, b, len(in.Books))
		}
	}

	books := slices.Clone(bookIDs)
	slices.SortStableFunc(books, func(a, b int) int {
		return cmp.Compare(in.Books[b].Score, in.Books[a].Score)
	})
	for _, b := range books {
		in.Books[b].Libraries = append(in.Books[b].Libraries, id)
	}

	in.Libraries = append(in.Libraries, Library{
		ID:          id,
		SignupTime:  signupTime,
		BooksPerDay: booksPerDay,
		Books:       books,
	})
	return nil
}
