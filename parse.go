package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrMalformed reports input that is not a well-formed instance.
	ErrMalformed = errors.New("malformed instance")
	// ErrBookOutOfRange reports a library listing a book ID that does not exist.
	ErrBookOutOfRange = errors.New("book id out of range")
	// ErrCountMismatch reports a declared count that disagrees with the data.
	ErrCountMismatch = errors.New("count mismatch")
)

// LoadInstance reads an instance file. Files ending in .json are parsed as
// JSON instances, everything else as the whitespace-separated text format.
func LoadInstance(path string) (*Instance, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading instance: %w", err)
		}
		in, err := ParseJSONInstance(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return in, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading instance: %w", err)
	}
	defer f.Close()

	in, err := ParseInstance(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// tokenReader yields non-negative integers from a whitespace-separated stream.
type tokenReader struct {
	sc  *bufio.Scanner
	pos int // 1-based index of the last token read
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)
	return &tokenReader{sc: sc}
}

func (t *tokenReader) next(what string) (int, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return 0, fmt.Errorf("reading %s: %w", what, err)
		}
		return 0, fmt.Errorf("%w: unexpected end of input reading %s", ErrMalformed, what)
	}
	t.pos++
	tok := t.sc.Text()
	v, err := strconv.Atoi(tok)
	if err != nil || v < 0 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: token %d (%s): %q is not a non-negative 32-bit integer",
			ErrMalformed, t.pos, what, tok)
	}
	return v, nil
}

// ParseInstance reads the text format:
//
//	B L D
//	score_0 ... score_{B-1}
//	then L times:
//	N signup_time books_per_day
//	book_id_0 ... book_id_{N-1}
//
// Any malformed count, out-of-range reference or non-numeric field aborts
// the parse.
func ParseInstance(r io.Reader) (*Instance, error) {
	t := newTokenReader(r)

	numBooks, err := t.next("book count")
	if err != nil {
		return nil, err
	}
	numLibs, err := t.next("library count")
	if err != nil {
		return nil, err
	}
	days, err := t.next("days")
	if err != nil {
		return nil, err
	}

	scores := make([]int, 0, min(numBooks, 1<<16))
	for i := 0; i < numBooks; i++ {
		s, err := t.next(fmt.Sprintf("score of book %d", i))
		if err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	in := NewInstance(days, scores)

	for li := 0; li < numLibs; li++ {
		n, err := t.next(fmt.Sprintf("book count of library %d", li))
		if err != nil {
			return nil, err
		}
		signup, err := t.next(fmt.Sprintf("signup time of library %d", li))
		if err != nil {
			return nil, err
		}
		perDay, err := t.next(fmt.Sprintf("books per day of library %d", li))
		if err != nil {
			return nil, err
		}
		ids := make([]int, 0, min(n, 1<<16))
		for i := 0; i < n; i++ {
			id, err := t.next(fmt.Sprintf("book of library %d", li))
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		if err := in.AddLibrary(signup, perDay, ids); err != nil {
			return nil, err
		}
	}

	if t.sc.Scan() {
		return nil, fmt.Errorf("%w: trailing data after %d libraries (token %q)",
			ErrCountMismatch, numLibs, t.sc.Text())
	}
	if err := t.sc.Err(); err != nil {
		return nil, fmt.Errorf("reading instance: %w", err)
	}
	return in, nil
}
