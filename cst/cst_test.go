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

import "testing"

func assertRoundTrip(t *testing.T, src string) {
	t.Helper()
	n, rep := Parse(0, src)
	if got := n.Text(); got != src {
		t.Errorf("round trip mismatch:\n  src: %q\n  got: %q", src, got)
	}
	if rep.Total() != 0 {
		t.Errorf("unexpected diagnostics for valid source %q: %v", src, rep.Errors())
	}
}

func TestRoundTripSimple(t *testing.T) {
	assertRoundTrip(t, "1 + 2 * 3")
}

func TestRoundTripWhitespaceAndComments(t *testing.T) {
	assertRoundTrip(t, "  1   +  2 # a comment\n  | upcase()  ")
}

func TestRoundTripPipelineAndDef(t *testing.T) {
	assertRoundTrip(t, "def shout(x): x | upcase(); \"hi\" | shout()")
}

func TestRoundTripControlFlow(t *testing.T) {
	assertRoundTrip(t, `if (true): "a" elif (false): "b" else: "c"`)
}

func TestRoundTripForeach(t *testing.T) {
	assertRoundTrip(t, "foreach(n, nodes): (n | .h1)")
}

func TestRoundTripSelectorAndInterp(t *testing.T) {
	assertRoundTrip(t, `.h1.text | "title: ${self}"`)
}

func TestRoundTripStringEscapes(t *testing.T) {
	assertRoundTrip(t, `"line one\nline two \"quoted\""`)
}

func TestErrorRecoveryResumesAtNextStatement(t *testing.T) {
	n, rep := Parse(0, "let x = ; let y = 2")
	if rep.Total() == 0 {
		t.Fatal("expected at least one diagnostic for malformed first statement")
	}
	if got := n.Text(); got != "let x = ; let y = 2" {
		t.Errorf("round trip must still hold through an error span, got %q", got)
	}
}

func TestErrorReporterRecordsStrayCloseParen(t *testing.T) {
	_, rep := Parse(0, ")")
	if rep.Total() == 0 {
		t.Fatal("expected a diagnostic for a lone ')'")
	}
}
