// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpparse

import (
	"fmt"
	"strings"
	"testing"
)

// recHandler records every event it receives as a short human-readable
// string, plus accumulates the bytes of the token in progress, so tests can
// assert both the sequence of events (ordering property) and their content.
type recHandler struct {
	events []string

	tok  []byte
	hdrs []string
	body []byte
}

func (h *recHandler) OnMessageBegin(p *Parser) {
	h.events = append(h.events, "begin")
	h.tok = nil
	h.hdrs = nil
	h.body = nil
}

func (h *recHandler) PushData(p *Parser, b byte) {
	h.tok = append(h.tok, b)
}

func (h *recHandler) PushDataAll(p *Parser, data []byte) {
	h.body = append(h.body, data...)
}

func (h *recHandler) OnURL(p *Parser, length int) error {
	h.events = append(h.events, "url:"+string(h.tok))
	h.tok = nil
	return nil
}

func (h *recHandler) OnHeaderField(p *Parser, length int) error {
	h.hdrs = append(h.hdrs, string(h.tok))
	h.tok = nil
	return nil
}

func (h *recHandler) OnHeaderValue(p *Parser, length int) error {
	h.events = append(h.events, fmt.Sprintf("hdr:%s=%s", h.hdrs[len(h.hdrs)-1], h.tok))
	h.tok = nil
	return nil
}

func (h *recHandler) OnHeadersComplete(p *Parser) (bool, error) {
	h.events = append(h.events, "headers-done")
	return false, nil
}

func (h *recHandler) OnBody(p *Parser, length int) error {
	h.events = append(h.events, fmt.Sprintf("body:%d:%s", length, h.body))
	return nil
}

func (h *recHandler) OnMessageComplete(p *Parser) error {
	h.events = append(h.events, "complete")
	return nil
}

var _ Handler = (*recHandler)(nil)

func joinEvents(h *recHandler) string {
	return strings.Join(h.events, "|")
}

// S1: HTTP/0.9 request, just a method and URL, no version/headers/body. A
// bare CR or LF alone completes the message immediately (spec.md §4.2.3);
// the two are not paired, so a trailing LF after a CR-completed message is
// left unconsumed for the caller to deal with (e.g. as the start of the
// next message).
func TestHTTP09Request(t *testing.T) {
	p := NewParser(Request)
	h := &recHandler{}
	buf := []byte("GET /\r\n")
	n, err := p.Parse(h, buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n != 6 {
		t.Fatalf("consumed %d, want 6 (the CR completes the message, the LF is left unconsumed)", n)
	}
	if !p.Dead() {
		t.Fatalf("expected Dead after HTTP/0.9 request")
	}
	if v, _ := p.HTTPVersion(); v != Version09 {
		t.Fatalf("version = %v, want 0.9", v)
	}
	if got := joinEvents(h); got != "begin|url:/|complete" {
		t.Fatalf("events = %q", got)
	}
	// idempotent once Dead
	n2, err2 := p.Parse(h, []byte("garbage"))
	if n2 != 0 || err2 != nil {
		t.Fatalf("Parse after Dead = (%d, %v), want (0, nil)", n2, err2)
	}
}

// A bare LF alone (no preceding CR) also completes an HTTP/0.9 request
// immediately, same as a bare CR.
func TestHTTP09RequestLFOnly(t *testing.T) {
	p := NewParser(Request)
	h := &recHandler{}
	buf := []byte("GET /index.html\n")
	n, err := p.Parse(h, buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("consumed %d, want %d", n, len(buf))
	}
	if got := joinEvents(h); got != "begin|url:/index.html|complete" {
		t.Fatalf("events = %q", got)
	}
}

// A bare CR not followed by LF still completes the HTTP/0.9 request on the
// CR alone; a fresh Parser fed the remainder (here, a second, independent
// message) parses it as ordinary leading data, not as a stray LF to wait
// for.
func TestHTTP09RequestCRWithoutFollowingLF(t *testing.T) {
	p := NewParser(Request)
	h := &recHandler{}
	buf := []byte("GET /first\rGET /second\r\n")
	n, err := p.Parse(h, buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n != len("GET /first\r") {
		t.Fatalf("consumed %d, want %d (message completes on the bare CR)", n, len("GET /first\r"))
	}
	if !p.Dead() {
		t.Fatalf("expected Dead after the CR-terminated HTTP/0.9 request")
	}
	if got := joinEvents(h); got != "begin|url:/first|complete" {
		t.Fatalf("events = %q", got)
	}

	p2 := NewParser(Request)
	h2 := &recHandler{}
	n2, err2 := p2.Parse(h2, buf[n:])
	if err2 != nil {
		t.Fatalf("Parse (second message): %v", err2)
	}
	if n2 != len("GET /second\r") {
		t.Fatalf("consumed %d, want %d (the CR completes the message, the LF is left unconsumed)", n2, len("GET /second\r"))
	}
	if got := joinEvents(h2); got != "begin|url:/second|complete" {
		t.Fatalf("events = %q", got)
	}
}

// S2: HTTP/1.0 request with no headers.
func TestHTTP10NoHeaders(t *testing.T) {
	p := NewParser(Request)
	h := &recHandler{}
	buf := []byte("GET / HTTP/1.0\r\n\r\n")
	n, err := p.Parse(h, buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("consumed %d, want %d", n, len(buf))
	}
	if v, _ := p.HTTPVersion(); v != Version10 {
		t.Fatalf("version = %v, want 1.0", v)
	}
	if p.ShouldKeepAlive() {
		t.Fatalf("HTTP/1.0 with no Connection header should not keep-alive")
	}
	want := "begin|url:/|headers-done|complete"
	if got := joinEvents(h); got != want {
		t.Fatalf("events = %q, want %q", got, want)
	}
}

// S3: "Connection: close" overrides HTTP/1.1's default keep-alive.
func TestConnectionClose(t *testing.T) {
	p := NewParser(Request)
	h := &recHandler{}
	buf := []byte("GET / HTTP/1.1\r\nConnection: close\r\n\r\n")
	if _, err := p.Parse(h, buf); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.ShouldKeepAlive() {
		t.Fatalf("Connection: close should clear keep-alive")
	}
}

// S4: explicit "Connection: keep-alive" on an HTTP/1.0 request.
func TestConnectionKeepAlive(t *testing.T) {
	p := NewParser(Request)
	h := &recHandler{}
	buf := []byte("GET / HTTP/1.0\r\nConnection: keep-alive\r\n\r\n")
	if _, err := p.Parse(h, buf); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.ShouldKeepAlive() {
		t.Fatalf("Connection: keep-alive should set keep-alive")
	}
}

// S5: a 304 response never carries a body even without Content-Length: 0.
func Test304NoBody(t *testing.T) {
	p := NewParser(Response)
	h := &recHandler{}
	buf := []byte("HTTP/1.1 304 Not Modified\r\nETag: \"abc\"\r\n\r\n")
	n, err := p.Parse(h, buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("consumed %d, want %d (message should be complete, no body expected)", n, len(buf))
	}
	want := "begin|hdr:ETag=\"abc\"|headers-done|complete"
	if got := joinEvents(h); got != want {
		t.Fatalf("events = %q, want %q", got, want)
	}
}

// S6: a response framed by an explicit Content-Length.
func TestContentLengthResponse(t *testing.T) {
	p := NewParser(Response)
	h := &recHandler{}
	buf := []byte("HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello")
	n, err := p.Parse(h, buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("consumed %d, want %d", n, len(buf))
	}
	want := "begin|hdr:Content-Length=5|headers-done|body:5:hello|complete"
	if got := joinEvents(h); got != want {
		t.Fatalf("events = %q, want %q", got, want)
	}
}

// S7: the exact same message, fed split at every possible boundary, must
// produce identical events (chunk-invariance, SPEC_FULL.md §8).
func TestSplitDeliveryEquivalence(t *testing.T) {
	buf := []byte("POST /submit HTTP/1.1\r\nHost: example.com\r\nContent-Length: 4\r\n\r\nabcd")
	p0 := NewParser(Request)
	h0 := &recHandler{}
	if _, err := p0.Parse(h0, buf); err != nil {
		t.Fatalf("whole-buffer Parse: %v", err)
	}
	want := joinEvents(h0)

	for n := 1; n <= len(buf); n++ {
		p := NewParser(Request)
		h := &recHandler{}
		feedSplit(t, p, h, append([]byte(nil), buf...), n)
		if got := joinEvents(h); got != want {
			t.Fatalf("split size %d: events = %q, want %q", n, got, want)
		}
	}
}

// Pipelined messages: a Parser resets to its start state and keeps
// delivering events for subsequent messages in the same buffer.
func TestPipelinedMessages(t *testing.T) {
	p := NewParser(Request)
	h := &recHandler{}
	buf := []byte("GET /a HTTP/1.1\r\n\r\nGET /b HTTP/1.1\r\n\r\n")
	n, err := p.Parse(h, buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("consumed %d, want %d", n, len(buf))
	}
	want := "begin|url:/a|headers-done|complete|begin|url:/b|headers-done|complete"
	if got := joinEvents(h); got != want {
		t.Fatalf("events = %q, want %q", got, want)
	}
}

// An invalid request line crashes the parser; every subsequent call then
// returns the generic parse error without further side effects.
func TestCrashAbsorption(t *testing.T) {
	p := NewParser(Request)
	h := &recHandler{}
	_, err := p.Parse(h, []byte("GET / BOGUS/1.1\r\n\r\n"))
	if err == nil {
		t.Fatalf("expected a parse error for a malformed version")
	}
	if !p.Crashed() {
		t.Fatalf("expected Crashed after a parse error")
	}
	n, err2 := p.Parse(h, []byte("GET / HTTP/1.1\r\n\r\n"))
	if n != 0 || err2 == nil {
		t.Fatalf("Parse after Crashed = (%d, %v), want (0, non-nil)", n, err2)
	}
}

func TestEmptyInputIsNoop(t *testing.T) {
	p := NewParser(Request)
	h := &recHandler{}
	n, err := p.Parse(h, nil)
	if n != 0 || err != nil {
		t.Fatalf("Parse(nil) = (%d, %v), want (0, nil)", n, err)
	}
	if got := joinEvents(h); got != "" {
		t.Fatalf("events after empty input = %q, want none", got)
	}
}

// A response with no Content-Length and no framing that forces no-body is
// framed by connection close; Parse alone never completes it, only Finish
// does once the transport reports no more data is coming.
func TestBodyIdentityEOF(t *testing.T) {
	p := NewParser(Response)
	h := &recHandler{}
	buf := []byte("HTTP/1.0 200 OK\r\n\r\nhello world")
	n, err := p.Parse(h, buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("consumed %d, want %d (all bytes are body until EOF)", n, len(buf))
	}
	if strings.Contains(joinEvents(h), "complete") {
		t.Fatalf("message should not be complete before Finish: %q", joinEvents(h))
	}
	if err := p.Finish(h); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	want := "begin|headers-done|body:11:hello world|complete"
	if got := joinEvents(h); got != want {
		t.Fatalf("events = %q, want %q", got, want)
	}
}

// Either mode must disambiguate a response ("HTTP/...") from a HEAD
// request, both of which start with the byte 'H' (Open Question 2).
func TestEitherModeDisambiguatesH(t *testing.T) {
	p1 := NewParser(Either)
	h1 := &recHandler{}
	if _, err := p1.Parse(h1, []byte("HEAD /x HTTP/1.1\r\n\r\n")); err != nil {
		t.Fatalf("Parse HEAD: %v", err)
	}
	if !p1.Request() || p1.Method() != MHead {
		t.Fatalf("expected a HEAD request, got request=%v method=%v", p1.Request(), p1.Method())
	}

	p2 := NewParser(Either)
	h2 := &recHandler{}
	if _, err := p2.Parse(h2, []byte("HTTP/1.1 200 OK\r\n\r\n")); err != nil {
		t.Fatalf("Parse response: %v", err)
	}
	if p2.Request() {
		t.Fatalf("expected a response")
	}
}

// Chunked transfer-encoding bodies, enabled via NewParserWithChunkedBodies,
// are decoded chunk by chunk including the trailer section (SPEC_FULL.md
// §9.4, Open Question 3).
func TestChunkedBody(t *testing.T) {
	p := NewParserWithChunkedBodies(Response)
	h := &recHandler{}
	buf := []byte("HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"4\r\nWiki\r\n5\r\npedia\r\n0\r\nX-Trailer: done\r\n\r\n")
	n, err := p.Parse(h, buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("consumed %d, want %d", n, len(buf))
	}
	want := "begin|hdr:Transfer-Encoding=chunked|headers-done|body:4:Wiki|body:5:Wikipedia|hdr:X-Trailer=done|complete"
	if got := joinEvents(h); got != want {
		t.Fatalf("events = %q, want %q", got, want)
	}
}
