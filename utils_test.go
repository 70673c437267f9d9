// Copyright 2019-2020 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Test utils

package httpparse

import (
	"math/rand"
	"testing"

	"github.com/intuitivelabs/bytescase"
)

func randWS() string {
	ws := [...]string{"", " ", "	"}
	var s string
	n := rand.Intn(5) // max 5 whitespace "tokens"
	for i := 0; i < n; i++ {
		s += ws[rand.Intn(len(ws))]
	}
	return s
}

func randLWS() string {
	ws := [...]string{
		"", " ", "  ", "\r\n ", "\r\n   ", "\n ", "\r ",
	}
	var s string
	n := rand.Intn(5) // max 5 whitespace "tokens"
	for i := 0; i < n; i++ {
		s += ws[rand.Intn(len(ws))]
	}
	return s
}

// randomize case in a string
func randCase(s string) string {
	r := make([]byte, len(s))
	for i, b := range []byte(s) {
		switch rand.Intn(3) {
		case 0:
			r[i] = bytescase.ByteToLower(b)
		case 1:
			r[i] = bytescase.ByteToUpper(b)
		default:
			r[i] = b
		}
	}
	return string(r)
}

// feedSplit drives p through buf split into n-byte-or-smaller pieces (or,
// if n <= 0, at random boundaries), re-offering any unconsumed tail with
// the next piece exactly like a transport would after a short read. It
// exercises the chunk-invariance property (SPEC_FULL.md §8): the resulting
// events must not depend on how buf was split.
func feedSplit(t testing.TB, p *Parser, h Handler, buf []byte, n int) {
	t.Helper()
	var pending []byte
	for len(buf) > 0 || len(pending) > 0 {
		if len(buf) > 0 {
			take := n
			if take <= 0 {
				take = 1 + rand.Intn(len(buf))
			}
			if take > len(buf) {
				take = len(buf)
			}
			pending = append(pending, buf[:take]...)
			buf = buf[take:]
		}
		consumed, err := p.Parse(h, pending)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if consumed == 0 && len(buf) == 0 {
			t.Fatalf("Parse stalled: consumed 0 with no more input, %d bytes pending", len(pending))
		}
		pending = pending[consumed:]
	}
}
