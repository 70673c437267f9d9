// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package collect implements a reusable httpparse.Handler that buffers a
// parsed message's URL and headers into one growing per-message buffer,
// addressed with httpparse.PField offsets rather than a copied slice per
// token (adapted from the teacher's PField/buffer idiom, see DESIGN.md).
// It is the handler used by cmd/httpspin; it is deliberately not part of
// the core engine, which never
// allocates storage for the message itself (SPEC_FULL.md §5).
package collect

import "github.com/packetloop/httpparse"

// Header is one parsed header field, name and value located in Message.raw.
type Header struct {
	NameF  httpparse.PField
	ValueF httpparse.PField
}

// Name returns the header field's name.
func (h Header) Name(raw []byte) []byte { return h.NameF.Get(raw) }

// Value returns the header field's value.
func (h Header) Value(raw []byte) []byte { return h.ValueF.Get(raw) }

// Message is the accumulated result of one parsed HTTP message. URL and
// header name/value live in raw; Headers carries only their PField
// locations, so use URL()/Headers[i].Name(raw)/Headers[i].Value(raw) (or
// the raw-bound helpers below) to read them.
type Message struct {
	Request    bool
	Method     httpparse.HTTPMethod
	Version    httpparse.Version
	StatusCode uint

	raw     []byte
	urlF    httpparse.PField
	Headers []Header
	Body    []byte

	ShouldKeepAlive bool
	ShouldUpgrade   bool

	Complete bool
}

// URL returns the request target.
func (m *Message) URL() []byte { return m.urlF.Get(m.raw) }

// HeaderName returns the name of the i'th header.
func (m *Message) HeaderName(i int) []byte { return m.Headers[i].Name(m.raw) }

// HeaderValue returns the value of the i'th header.
func (m *Message) HeaderValue(i int) []byte { return m.Headers[i].Value(m.raw) }

// Handler collects a sequence of messages (one Parser can run through many,
// back to back, per its pipelining guarantee) into Messages. PushData's
// bytes belong to whichever token is in progress; OnURL/OnHeaderField/
// OnHeaderValue each snapshot a PField over the current message's raw
// buffer at the right moment, so the handler never needs to track which
// token kind is current.
type Handler struct {
	Messages []*Message

	cur      *Message
	tokStart int // offset in cur.raw where the in-progress token began
}

// OnMessageBegin implements httpparse.Handler.
func (h *Handler) OnMessageBegin(p *httpparse.Parser) {
	h.cur = &Message{}
	h.Messages = append(h.Messages, h.cur)
	h.tokStart = 0
}

// PushData implements httpparse.Handler.
func (h *Handler) PushData(p *httpparse.Parser, b byte) {
	h.cur.raw = append(h.cur.raw, b)
}

// OnURL implements httpparse.Handler.
func (h *Handler) OnURL(p *httpparse.Parser, length int) error {
	h.cur.Request = true
	h.cur.Method = p.Method()
	h.cur.urlF.Set(h.tokStart, len(h.cur.raw))
	h.tokStart = len(h.cur.raw)
	return nil
}

// OnHeaderField implements httpparse.Handler.
func (h *Handler) OnHeaderField(p *httpparse.Parser, length int) error {
	var hdr Header
	hdr.NameF.Set(h.tokStart, len(h.cur.raw))
	h.cur.Headers = append(h.cur.Headers, hdr)
	h.tokStart = len(h.cur.raw)
	return nil
}

// OnHeaderValue implements httpparse.Handler.
func (h *Handler) OnHeaderValue(p *httpparse.Parser, length int) error {
	last := &h.cur.Headers[len(h.cur.Headers)-1]
	last.ValueF.Set(h.tokStart, len(h.cur.raw))
	h.tokStart = len(h.cur.raw)
	return nil
}

// OnHeadersComplete implements httpparse.Handler.
func (h *Handler) OnHeadersComplete(p *httpparse.Parser) (bool, error) {
	h.recordVersion(p)
	return false, nil
}

// PushDataAll implements httpparse.Handler.
func (h *Handler) PushDataAll(p *httpparse.Parser, data []byte) {
	h.cur.Body = append(h.cur.Body, data...)
}

// OnBody implements httpparse.Handler.
func (h *Handler) OnBody(p *httpparse.Parser, length int) error {
	return nil
}

// OnMessageComplete implements httpparse.Handler.
func (h *Handler) OnMessageComplete(p *httpparse.Parser) error {
	h.recordVersion(p)
	h.cur.Complete = true
	return nil
}

func (h *Handler) recordVersion(p *httpparse.Parser) {
	v, _ := p.HTTPVersion()
	h.cur.Version = v
	h.cur.StatusCode = p.StatusCode()
	h.cur.ShouldKeepAlive = p.ShouldKeepAlive()
	h.cur.ShouldUpgrade = p.ShouldUpgrade()
}

var _ httpparse.Handler = (*Handler)(nil)
