// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package httpparse implements an incremental, streaming HTTP/1.x message
// parser. It ingests raw byte buffers in arbitrary chunk sizes and emits
// structured events to a caller-supplied Handler, without allocating
// storage for the message itself.
package httpparse

import "math"

// NoContentLength is the sentinel value of Parser.ContentLength() meaning
// "no Content-Length header observed, or it was malformed". 0 is a
// legitimate, explicit "no body" value and is distinct from this sentinel.
const NoContentLength = math.MaxUint64

// Parser carries the fixed-size mutable record driving the FSM. A Parser
// is not thread-safe: the Handler passed to Parse is borrowed exclusively
// for the duration of that call, and a single Parser must not be used
// concurrently from multiple goroutines. This mirrors the non-thread-safe
// contract of the teacher's PMsg/PFLine/PToken types.
type Parser struct {
	mode        Mode
	state       state
	headerState headerState
	index       int // position within the current lexical token

	skipBody bool // caller/handler-directed body suppression, next msg only

	version      Version
	major, minor uint

	contentLength uint64 // NoContentLength == not seen

	upgrade bool

	method    HTTPMethod
	isRequest bool // which grammar this message actually turned out to be

	keepAlive bool

	statusCode uint

	bodyTotal     uint64 // BodyIdentity: original Content-Length, for on_body
	bodyRemaining uint64 // BodyIdentity: bytes left to consume
	bodyConsumed  uint64 // BodyIdentityEOF: bytes pushed so far, for Finish

	// chunked transfer-encoding framing state, see chunked.go. Only used
	// for body framing when built with NewParserWithChunkedBodies.
	chunkedBodies bool
	chunk         chunkState
}

// NewParser constructs a Parser accepting the given mode's grammar(s).
func NewParser(mode Mode) *Parser {
	p := &Parser{}
	p.init(mode)
	return p
}

// NewParserWithChunkedBodies is like NewParser but additionally enables
// the chunked transfer-encoding body-framing enhancement (SPEC_FULL.md
// §9.4): "Transfer-Encoding: chunked" responses/requests have their body
// decoded chunk by chunk instead of left to the caller.
func NewParserWithChunkedBodies(mode Mode) *Parser {
	p := NewParser(mode)
	p.chunkedBodies = true
	return p
}

func (p *Parser) init(mode Mode) {
	*p = Parser{mode: mode}
	p.contentLength = NoContentLength
	p.state = mode.startState()
}

// SetSkipBodyNext instructs the parser to treat the next parsed message as
// having no body, regardless of framing headers (e.g. the caller knows the
// upcoming response is to a HEAD request). The flag is consumed by the
// body-framing decision at the end of the header section and does not
// persist past that message.
func (p *Parser) SetSkipBodyNext(skip bool) {
	p.skipBody = skip
}

// Mode returns the grammar(s) this parser accepts.
func (p *Parser) Mode() Mode {
	return p.mode
}

// HTTPVersion returns the parsed protocol version and whether one has
// been established yet.
func (p *Parser) HTTPVersion() (Version, bool) {
	return p.version, p.version.Set()
}

// StatusCode returns the parsed response status code (0 for requests, or
// before it has been parsed).
func (p *Parser) StatusCode() uint {
	return p.statusCode
}

// Method returns the parsed request method (MUndef for responses, or
// before it has been parsed).
func (p *Parser) Method() HTTPMethod {
	return p.method
}

// Request reports whether the in-progress or completed message is a
// request (as opposed to a response). Meaningful once parsing has moved
// past the start state.
func (p *Parser) Request() bool {
	return p.isRequest
}

// ContentLength returns the parsed Content-Length value, or
// NoContentLength if none was seen (or it was malformed).
func (p *Parser) ContentLength() uint64 {
	return p.contentLength
}

// ShouldKeepAlive returns the final connection disposition: true iff
// version 1.1 was in effect when the version was fixed, or a
// "Connection: keep-alive" value was matched and no later
// "Connection: close" overrode it.
func (p *Parser) ShouldKeepAlive() bool {
	return p.keepAlive
}

// ShouldUpgrade returns true if "Connection: upgrade" was matched.
func (p *Parser) ShouldUpgrade() bool {
	return p.upgrade
}

// Dead returns true once the parser has reached the terminal Dead state
// (e.g. after an HTTP/0.9 request, which has no headers or body).
func (p *Parser) Dead() bool {
	return p.state == sDead
}

// Crashed returns true once the parser has reached the terminal Crashed
// state; every subsequent Parse call will return ErrOther.
func (p *Parser) Crashed() bool {
	return p.state == sCrashed
}

// reset reinitializes the per-message fields and transitions to the
// per-mode start state, centralizing the "reset to start" idiom (see
// DESIGN NOTES §9: a parametric reset expression keyed on mode).
func (p *Parser) reset() {
	mode := p.mode
	chunkedBodies := p.chunkedBodies
	*p = Parser{mode: mode, chunkedBodies: chunkedBodies}
	p.contentLength = NoContentLength
	p.state = mode.startState()
}
