// Package gameerr defines the structured, recoverable errors returned by
// rejected game operations. Every rejection carries a Kind the UI layer can
// match on plus a human-readable message; some kinds carry extra fields
// (what resource is short, how long until maturity).
package gameerr

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Kind classifies a rejection.
type Kind string

const (
	// InvalidTarget marks an unknown id, config entry or index.
	InvalidTarget Kind = "invalid_target"
	// InsufficientResource marks a currency, seed or material shortage.
	InsufficientResource Kind = "insufficient_resource"
	// RequirementNotMet marks realm/level gating failures.
	RequirementNotMet Kind = "requirement_not_met"
	// CapacityExceeded marks full slots or bags.
	CapacityExceeded Kind = "capacity_exceeded"
	// NotYetReady marks a time gate that has not elapsed.
	NotYetReady Kind = "not_yet_ready"
	// InvalidState marks operations that contradict the current aggregate
	// state, e.g. discarding an equipped item or downgrading the grotto.
	InvalidState Kind = "invalid_state"
)

// Error is a rejected-operation report. The aggregate is guaranteed
// unchanged whenever one is returned.
type Error struct {
	Kind    Kind
	Message string

	// Resource/Need/Have are set for InsufficientResource.
	Resource string
	Need     int
	Have     int

	// Remaining is set for NotYetReady.
	Remaining time.Duration
}

func (e *Error) Error() string { return e.Message }

// RemainingMinutes reports the remaining wait rounded up to whole minutes,
// matching what players see ("还需 N 分钟").
func (e *Error) RemainingMinutes() int {
	if e.Remaining <= 0 {
		return 0
	}
	return int(math.Ceil(e.Remaining.Minutes()))
}

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Insufficient reports a shortage of a named resource.
func Insufficient(resource string, need, have int) *Error {
	return &Error{
		Kind:     InsufficientResource,
		Message:  fmt.Sprintf("%s不足！需要 %d，现有 %d。", resource, need, have),
		Resource: resource,
		Need:     need,
		Have:     have,
	}
}

// NotReady reports a time gate with the remaining wait.
func NotReady(remaining time.Duration) *Error {
	e := &Error{Kind: NotYetReady, Remaining: remaining}
	e.Message = fmt.Sprintf("还未成熟！还需 %d 分钟。", e.RemainingMinutes())
	return e
}

// KindOf extracts the Kind from err, or "" if err is not a game error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// As unwraps err into a *Error, or nil.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
