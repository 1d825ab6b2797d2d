package main

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// ParseJSONInstance parses the JSON form of an instance:
//
//	{"days": 7, "scores": [1, 2, 3],
//	 "libraries": [{"signup": 2, "perDay": 2, "books": [0, 1]}]}
//
// Book and library IDs are array positions, as in the text format.
func ParseJSONInstance(data string) (*Instance, error) {
	if !gjson.Valid(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	root := gjson.Parse(data)

	days, err := intField(root, "days")
	if err != nil {
		return nil, err
	}

	scoresRes := root.Get("scores")
	if !scoresRes.IsArray() {
		return nil, fmt.Errorf("%w: scores must be an array", ErrMalformed)
	}
	raw := scoresRes.Array()
	scores := make([]int, len(raw))
	for i, v := range raw {
		if scores[i], err = jsonInt(v, fmt.Sprintf("scores[%d]", i)); err != nil {
			return nil, err
		}
	}
	in := NewInstance(days, scores)

	libsRes := root.Get("libraries")
	if libsRes.Exists() && !libsRes.IsArray() {
		return nil, fmt.Errorf("%w: libraries must be an array", ErrMalformed)
	}
	for li, v := range libsRes.Array() {
		if err := addJSONLibrary(in, li, v); err != nil {
			return nil, err
		}
	}
	return in, nil
}

func addJSONLibrary(in *Instance, li int, v gjson.Result) error {
	signup, err := intField(v, "signup")
	if err != nil {
		return fmt.Errorf("library %d: %w", li, err)
	}
	perDay, err := intField(v, "perDay")
	if err != nil {
		return fmt.Errorf("library %d: %w", li, err)
	}
	booksRes := v.Get("books")
	if booksRes.Exists() && !booksRes.IsArray() {
		return fmt.Errorf("%w: library %d: books must be an array", ErrMalformed, li)
	}
	var ids []int
	for i, b := range booksRes.Array() {
		id, err := jsonInt(b, fmt.Sprintf("libraries[%d].books[%d]", li, i))
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	return in.AddLibrary(signup, perDay, ids)
}

func intField(obj gjson.Result, name string) (int, error) {
	v := obj.Get(name)
	if !v.Exists() {
		return 0, fmt.Errorf("%w: missing %s", ErrMalformed, name)
	}
	return jsonInt(v, name)
}

func jsonInt(v gjson.Result, what string) (int, error) {
	if v.Type != gjson.Number || v.Num < 0 || v.Num != math.Trunc(v.Num) || v.Num > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s: %s is not a non-negative integer", ErrMalformed, what, v.Raw)
	}
	return int(v.Int()), nil
}
