// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpparse

// This file implements the header-name and header-value sub-FSMs (§4.2.6,
// §4.2.7, §4.3): a single-step degradation table keyed on literal byte
// matches against "Connection", "Content-Length", "Transfer-Encoding",
// "Upgrade" and, for the chunked-body enhancement, the "chunked" TE value
// and the keep-alive/close/upgrade Connection values. Any mismatch
// permanently downgrades the header to hGeneral for the remainder of that
// header (DESIGN NOTES §9).

var litConnection = []byte("connection")
var litContentLength = []byte("content-length")
var litTransferEncoding = []byte("transfer-encoding")
var litUpgrade = []byte("upgrade")

var litKeepAlive = []byte("keep-alive")
var litClose = []byte("close")
var litUpgradeVal = []byte("upgrade")
var litChunked = []byte("chunked")

// seedHeaderNameState picks the initial header-name sub-state from the
// first byte of a header field name (§4.2.6).
func seedHeaderNameState(c byte) headerState {
	switch lower(c) {
	case 'c':
		return hConnection
	case 't':
		return hTransferEncoding
	case 'u':
		return hUpgrade
	default:
		return hGeneral
	}
}

// advanceHeaderName feeds the next header-name byte c (at 0-based
// position index) into the name sub-FSM hs. It returns the resulting
// state; hGeneral is a sink once entered.
func advanceHeaderName(hs headerState, index int, c byte) headerState {
	lc := lower(c)
	switch hs {
	case hConnection:
		if index == 3 && lc == 't' {
			// "Con" is shared by Connection and Content-Length; at
			// index 3 they diverge ('n' vs 't').
			return hContentLength
		}
		if index < len(litConnection) && lc == litConnection[index] {
			return hConnection
		}
	case hContentLength:
		if index < len(litContentLength) && lc == litContentLength[index] {
			return hContentLength
		}
	case hTransferEncoding:
		if index < len(litTransferEncoding) && lc == litTransferEncoding[index] {
			return hTransferEncoding
		}
	case hUpgrade:
		if index < len(litUpgrade) && lc == litUpgrade[index] {
			return hUpgrade
		}
	}
	return hGeneral
}

// seedValueState picks the value-matching sub-state from the first
// non-whitespace byte of a header value (§4.2.7), given the header-name
// state the name phase ended in.
func (p *Parser) seedValueState(c byte) {
	switch p.headerState {
	case hConnection:
		switch lower(c) {
		case 'k':
			p.headerState = hMatchingKeepAlive
		case 'c':
			p.headerState = hMatchingClose
		case 'u':
			p.headerState = hMatchingUpgrade
		default:
			p.headerState = hGeneral
		}
	case hContentLength:
		if isDigit(c) {
			p.contentLength = uint64(c - '0')
		} else {
			p.contentLength = NoContentLength
			p.headerState = hGeneral
		}
	case hTransferEncoding:
		if lower(c) == litChunked[0] {
			p.headerState = hMatchingChunked
		} else {
			p.headerState = hGeneral
		}
	}
}

// advanceValueState feeds the next header-value byte c (at 0-based
// position index within the value) into the value sub-FSM.
func (p *Parser) advanceValueState(index int, c byte) {
	lc := lower(c)
	switch p.headerState {
	case hMatchingKeepAlive:
		if index >= len(litKeepAlive) || lc != litKeepAlive[index] {
			p.headerState = hGeneral
		}
	case hMatchingClose:
		if index >= len(litClose) || lc != litClose[index] {
			p.headerState = hGeneral
		}
	case hMatchingUpgrade:
		if index >= len(litUpgradeVal) || lc != litUpgradeVal[index] {
			p.headerState = hGeneral
		}
	case hMatchingChunked:
		if index >= len(litChunked) || lc != litChunked[index] {
			p.headerState = hGeneral
		}
	case hContentLength:
		if isDigit(c) && p.contentLength != NoContentLength {
			p.contentLength = p.contentLength*10 + uint64(c-'0')
		} else {
			p.contentLength = NoContentLength
			p.headerState = hGeneral
		}
	}
}

// applyValueTerminal applies the Connection/Transfer-Encoding effect if
// the value matcher is in a terminal state at the exact required length
// when the value ends (§4.2.7).
func (p *Parser) applyValueTerminal(length int) {
	switch p.headerState {
	case hMatchingKeepAlive:
		if length == len(litKeepAlive) {
			p.keepAlive = true
		}
	case hMatchingClose:
		if length == len(litClose) {
			p.keepAlive = false
		}
	case hMatchingUpgrade:
		if length == len(litUpgradeVal) {
			p.upgrade = true
		}
	case hMatchingChunked:
		if length == len(litChunked) {
			p.chunk.teChunked = true
		}
	}
}
