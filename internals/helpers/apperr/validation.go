package apperr

import (
	"fmt"
	"strings"
)

// Issue satu pelanggaran invariant, Path mengikuti nama field JSON
// (mis. "cities[3].prayers[10].time.subuh").
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError mengumpulkan semua pelanggaran sekaligus supaya
// dataset rusak bisa diperbaiki dalam satu putaran.
type ValidationError struct {
	Op     string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("%s: %v", e.Op, ErrInvalidInput)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %v: %d issue(s)", e.Op, ErrInvalidInput, len(e.Issues))
	limit := len(e.Issues)
	if limit > 5 {
		limit = 5
	}
	for _, is := range e.Issues[:limit] {
		fmt.Fprintf(&b, "; %s: %s", is.Path, is.Message)
	}
	if len(e.Issues) > limit {
		fmt.Fprintf(&b, "; ... %d more", len(e.Issues)-limit)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Add mencatat issue baru, format mengikuti fmt.Sprintf.
func (e *ValidationError) Add(path, format string, args ...any) {
	e.Issues = append(e.Issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

// Merge menyalin issue dari error lain dengan prefix path.
func (e *ValidationError) Merge(prefix string, other *ValidationError) {
	if other == nil {
		return
	}
	for _, is := range other.Issues {
		p := is.Path
		if prefix != "" {
			if p == "" {
				p = prefix
			} else {
				p = prefix + "." + p
			}
		}
		e.Issues = append(e.Issues, Issue{Path: p, Message: is.Message})
	}
}

// OrNil mengembalikan nil kalau tidak ada issue.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Issues) == 0 {
		return nil
	}
	return e
}
