package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteSubmission writes signups in the submission format: the signup count,
// then per library a "library_id book_count" line followed by its book IDs.
func WriteSubmission(w io.Writer, signups []Signup) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(signups))
	buf := make([]byte, 0, 16)
	for _, s := range signups {
		fmt.Fprintf(bw, "%d %d\n", s.LibraryID, len(s.Books))
		for i, b := range s.Books {
			if i > 0 {
				bw.WriteByte(' ')
			}
			buf = strconv.AppendInt(buf[:0], int64(b), 10)
			bw.Write(buf)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// FormatSubmission returns the submission text for signups.
func FormatSubmission(signups []Signup) string {
	var sb strings.Builder
	_ = WriteSubmission(&sb, signups)
	return sb.String()
}

// FormatResult renders a human-readable breakdown of a run, one line per
// signup in activation order.
func FormatResult(in *Instance, res Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d/%d libraries, %d/%d days, score %d\n",
		len(res.Signups), len(in.Libraries), res.DaysUsed, in.Days, res.Score)
	day := 0
	for i, s := range res.Signups {
		day += s.SignupTime
		fmt.Fprintf(&sb, "  #%-4d library %-6d ready day %-6d books %-6d score %d\n",
			i+1, s.LibraryID, day, len(s.Books), s.Score)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
