// Package statement turns commission-statement text into loan records.
//
// Extracted statement text has no column delimiters, so rows are recovered by
// a positional pattern that leans on casing: broker and description runs start
// with a capital letter, borrower names are all capitals, the sub-broker is
// optional and numeric fields always carry a decimal point. A row that deviates
// from the shape is skipped whole, never partially captured.
package statement

import (
	"iter"
	"regexp"
	"strings"
)

// FieldCount is the number of positional fields in a loan row.
const FieldCount = 11

// Field names in positional order, matching the loan_info columns.
var FieldNames = [FieldCount]string{
	"app_id",
	"xref",
	"date",
	"broker",
	"sub_broker",
	"borrower_name",
	"description",
	"total_loan_amount",
	"comm_rate",
	"upfront",
	"upfront_incl_gst",
}

// space matches any Unicode whitespace; RE2's \s is ASCII only and PDF text
// often separates fields with no-break or thin spaces.
const space = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

var (
	rowPattern = regexp.MustCompile(strings.ReplaceAll(
		`\n(\d{8})\s*(\d{9})\s*(\d{1,2}/\d{1,2}/\d{4})\s*([A-Z].*)\s*`+
			`( ?|[A-Z-]?[a-z-]*(?: +[A-Z-][a-z-]*[A-Z]?[a-z]*)*)\s*`+
			`([A-Z-]+(?:\s+[A-Z-]+)*)\s*([A-Z].*)\s*`+
			`([\d,]+.\d{2})\s*(\d.\d{2})\s*([\d,]+.\d{2})\s*([\d,]+.\d{2})`,
		`\s`, space))

	// candidatePattern spots lines that open like a loan row whether or not the rest fits.
	candidatePattern = regexp.MustCompile(`(?m)^\d{8}` + space + `*\d{9}`)
)

// RawRecord is one matched row: the untouched text of each positional field.
type RawRecord [FieldCount]string

// Get returns the raw text of a named field, or "" for an unknown name.
func (r RawRecord) Get(field string) string {
	for i, name := range FieldNames {
		if name == field {
			return r[i]
		}
	}
	return ""
}

// ParseRecords lazily yields every row in text that fits the loan row shape.
// Matches are sequential and non-overlapping; anything that does not fit is skipped.
func ParseRecords(text string) iter.Seq[RawRecord] {
	return func(yield func(RawRecord) bool) {
		pos := 0
		for pos < len(text) {
			loc := rowPattern.FindStringSubmatchIndex(text[pos:])
			if loc == nil {
				return
			}

			var rec RawRecord
			for i := range FieldCount {
				start, end := loc[2*(i+1)], loc[2*(i+1)+1]
				if start >= 0 {
					rec[i] = text[pos+start : pos+end]
				}
			}
			if !yield(rec) {
				return
			}

			next := pos + loc[1]
			if next == pos {
				next++
			}
			pos = next
		}
	}
}

// ScanStats reports how many lines looked like loan rows and how many matched.
type ScanStats struct {
	Candidates int
	Matched    int
}

// Skipped is the number of candidate lines that produced no record.
func (s ScanStats) Skipped() int {
	if s.Matched >= s.Candidates {
		return 0
	}
	return s.Candidates - s.Matched
}

// CountCandidates counts the lines in text that begin like a loan row.
func CountCandidates(text string) int {
	return len(candidatePattern.FindAllStringIndex(text, -1))
}
