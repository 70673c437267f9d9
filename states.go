// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpparse

// Mode selects which grammar(s) a Parser accepts.
type Mode uint8

// parsing modes
const (
	Request Mode = iota
	Response
	Either
)

var modeStr = [...]string{
	Request:  "request",
	Response: "response",
	Either:   "either",
}

// String implements the Stringer interface.
func (m Mode) String() string {
	if int(m) >= len(modeStr) {
		return "invalid"
	}
	return modeStr[m]
}

// state is the FSM node, see §4.2 of the design notes.
type state uint8

// parser states
const (
	sDead state = iota
	sCrashed

	sStartReq
	sStartRes
	sStartReqOrRes
	sStartReqOrResH // tentative 'H' seen in Either mode, HEAD vs HTTP/ (Open Question 2)

	sReqMethod
	sReqURL
	sReqHTTPStart
	sReqHTTPMajor
	sReqHTTPMinor
	sReqLineAlmostDone

	sResHTTPStart
	sResHTTPMajor
	sResHTTPMinor

	sResStatusCodeStart
	sResStatusCode
	sResStatus
	sResLineAlmostDone

	sHeaderFieldStart
	sHeaderField

	sHeaderValueDiscardWS
	sHeaderValueDiscardWSAlmostDone
	sHeaderValueDiscardLWS

	sHeaderValue
	sHeaderAlmostDone
	sHeadersAlmostDone

	sBodyIdentity
	sBodyIdentityEOF

	// chunked transfer-encoding framing, enhancement over the documented
	// core (see SPEC_FULL.md §9.4). The trailer section after the final
	// (zero-size) chunk is parsed by re-entering sHeaderFieldStart and
	// reusing the ordinary header sub-FSM (chunk.inTrailer distinguishes
	// it from the main header section at the headers-complete point).
	sChunkSizeStart
	sChunkSize
	sChunkParameters
	sChunkSizeAlmostDone
	sChunkData
	sChunkDataAlmostDone
)

// headerState is the header-name/value sub-FSM, see §4.3.
type headerState uint8

const (
	hGeneral headerState = iota
	hConnection
	hContentLength
	hTransferEncoding
	hUpgrade

	hMatchingKeepAlive
	hMatchingClose
	hMatchingUpgrade
	hMatchingChunked
)

// startState returns the per-mode initial/reset state, centralizing the
// "reset to start" transition (see DESIGN NOTES §9: parametric reset keyed
// on mode).
func (m Mode) startState() state {
	switch m {
	case Request:
		return sStartReq
	case Response:
		return sStartRes
	default:
		return sStartReqOrRes
	}
}
