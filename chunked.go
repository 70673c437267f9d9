// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpparse

// chunkState holds the parsing state for the optional chunked
// transfer-encoding body-framing enhancement (SPEC_FULL.md §9.4, Open
// Question 3 resolved as option (b)). It is only consulted when the
// Parser was constructed with NewParserWithChunkedBodies.
type chunkState struct {
	teChunked  bool // "Transfer-Encoding: chunked" value matched
	size       uint64
	chunkTotal uint64 // original size of the chunk in progress, for on_body
	inTrailer  bool   // currently re-using the header sub-FSM for trailers
}

func hexVal(c byte) (uint64, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint64(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint64(c-'A') + 10, true
	}
	return 0, false
}
