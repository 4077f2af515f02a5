/*
 * mq
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package log

import (
	"bytes"
	"fmt"
	"testing"
)

func TestMemoryLogger(t *testing.T) {

	ml := NewMemoryLogger(5)

	ml.LogDebug("test")
	ml.LogInfo("test")

	if ml.String() != `debug: test
test` {
		t.Error("Unexpected result:", ml.String())
		return
	}

	if res := fmt.Sprint(ml.Slice()); res != "[debug: test test]" {
		t.Error("Unexpected result:", res)
		return
	}

	ml.Reset()

	ml.LogError("test1")

	if res := fmt.Sprint(ml.Slice()); res != "[error: test1]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := ml.Size(); res != 1 {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestNullLogger(t *testing.T) {
	nl := &NullLogger{}
	nl.LogDebug("test")
	nl.LogInfo("test")
	nl.LogError("test")
}

func TestLevelLogger(t *testing.T) {

	ml := NewMemoryLogger(10)

	if _, err := NewLevelLogger(ml, "bogus"); err == nil {
		t.Error("Expected an error for an invalid log level")
		return
	}

	ll, err := NewLevelLogger(ml, "debug")
	if err != nil {
		t.Error(err)
		return
	}

	ll.LogDebug("a")
	ll.LogInfo("b")
	ll.LogError("c")

	if ml.String() != `debug: a
b
error: c` {
		t.Error("Unexpected result:", ml.String())
		return
	}

	ml.Reset()
	ll, _ = NewLevelLogger(ml, "error")

	if ll.Level() != Error {
		t.Error("Unexpected level:", ll.Level())
		return
	}

	ll.LogDebug("a")
	ll.LogInfo("b")
	ll.LogError("c")

	if ml.String() != `error: c` {
		t.Error("Unexpected result:", ml.String())
		return
	}
}

func TestWriterLogger(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	wl := NewWriterLogger(buf)

	wl.LogDebug("a")
	wl.LogInfo("b")
	wl.LogError("c")

	if buf.String() != `debug: a
b
error: c
` {
		t.Error("Unexpected result:", buf.String())
		return
	}
}
