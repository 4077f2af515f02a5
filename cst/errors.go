/*
 * mq
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package cst

import (
	"github.com/krotik/common/datautil"
	"github.com/krotik/mq/config"
	"github.com/krotik/mq/errs"
)

/*
ErrorReporter accumulates diagnostics across a whole parse instead of
failing on the first one, the way the ast package does. It caps storage at
config.MaxCSTErrors via a RingBuffer so a pathological input (e.g. a long
run of garbage tokens) cannot make diagnostics collection itself unbounded;
Total still reports the count of every diagnostic raised, and Overflowed
reports whether some of them were dropped.
*/
type ErrorReporter struct {
	buf        *datautil.RingBuffer
	cap        int
	total      int
	Overflowed bool
}

/*
NewErrorReporter creates an ErrorReporter capped at config.MaxCSTErrors.
*/
func NewErrorReporter() *ErrorReporter {
	n := config.Int(config.MaxCSTErrors)
	return &ErrorReporter{buf: datautil.NewRingBuffer(n), cap: n}
}

/*
Add records a diagnostic. Once the cap is reached, the RingBuffer itself
starts discarding the oldest entry per new Add - Overflowed just surfaces
that fact to callers that care.
*/
func (r *ErrorReporter) Add(kind error, msg string, rng errs.Range) {
	r.total++
	if r.total > r.cap {
		r.Overflowed = true
	}
	r.buf.Add(errs.NewParseError(kind, msg, rng))
}

/*
Errors returns every stored diagnostic, oldest first.
*/
func (r *ErrorReporter) Errors() []*errs.ParseError {
	sl := r.buf.Slice()
	out := make([]*errs.ParseError, len(sl))
	for i, e := range sl {
		out[i] = e.(*errs.ParseError)
	}
	return out
}

/*
Total is the number of diagnostics raised, including any dropped once the
cap was reached.
*/
func (r *ErrorReporter) Total() int {
	return r.total
}
