// SPDX-License-Identifier: MPL-2.0

package view

import (
	"errors"
	"fmt"
	"iter"

	"github.com/addonscan/addonscan/pkg/manifest"
)

const (
	// Addons holds valid records that are not libraries.
	Addons View = "addons"
	// Libraries holds valid records flagged as libraries.
	Libraries View = "libraries"
	// Errors holds records that failed validation.
	Errors View = "errors"
	// All holds every record.
	All View = "all"
)

// ErrInvalidView is returned when a View value is not recognized.
var ErrInvalidView = errors.New("invalid view")

type (
	// View names a partition of the scan result.
	View string

	// InvalidViewError is returned when a View value is not recognized.
	InvalidViewError struct {
		Value View
	}
)

// Error implements the error interface.
func (e *InvalidViewError) Error() string {
	return fmt.Sprintf("invalid view %q (valid: addons, libraries, errors, all)", e.Value)
}

// Unwrap returns ErrInvalidView so callers can use errors.Is for programmatic detection.
func (e *InvalidViewError) Unwrap() error { return ErrInvalidView }

// Views returns the views in display order.
func Views() []View {
	return []View{Addons, Libraries, Errors, All}
}

// String returns the view name.
func (v View) String() string { return string(v) }

// Validate returns nil if the view is known, or an *InvalidViewError.
func (v View) Validate() error {
	switch v {
	case Addons, Libraries, Errors, All:
		return nil
	default:
		return &InvalidViewError{Value: v}
	}
}

// Contains reports whether rec belongs to the view.
func (v View) Contains(rec *manifest.Record) bool {
	switch v {
	case Addons:
		return rec.OK && !rec.IsLibrary
	case Libraries:
		return rec.OK && rec.IsLibrary
	case Errors:
		return !rec.OK
	case All:
		return true
	default:
		return false
	}
}

// Filter returns the records that belong to v and match q, keeping order.
func Filter(records []*manifest.Record, v View, q Query) []*manifest.Record {
	out := make([]*manifest.Record, 0, len(records))
	for _, rec := range records {
		if v.Contains(rec) && q.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Counts returns, for every view, how many records match q.
func Counts(records []*manifest.Record, q Query) map[View]int {
	counts := make(map[View]int, len(Views()))
	for _, v := range Views() {
		counts[v] = 0
	}
	for _, rec := range records {
		if !q.Match(rec) {
			continue
		}
		for _, v := range Views() {
			if v.Contains(rec) {
				counts[v]++
			}
		}
	}
	return counts
}

// Stream forwards records from seq that belong to v and match q to onRecord,
// and returns how many were forwarded once the sequence completes. The first
// error from seq stops the stream and is returned with the count so far.
// onRecord returning false stops the stream early without an error.
func Stream(seq iter.Seq2[*manifest.Record, error], v View, q Query, onRecord func(*manifest.Record) bool) (int, error) {
	count := 0
	for rec, err := range seq {
		if err != nil {
			return count, err
		}
		if !v.Contains(rec) || !q.Match(rec) {
			continue
		}
		count++
		if !onRecord(rec) {
			break
		}
	}
	return count, nil
}
