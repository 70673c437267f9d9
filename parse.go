// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpparse

// httpLit is the literal "HTTP/" prefix shared by the request and status
// lines. sReqHTTPStart matches it from index 0; sResHTTPStart may start
// from index 1 or 2 when a leading byte was already consumed disambiguating
// Either mode (sStartRes, sStartReqOrResH).
const httpLit = "HTTP/"

// Parse feeds data into the FSM, invoking h for every event reached along
// the way, and returns the number of leading bytes consumed (4.1). data may
// be split at any boundary; a short count means the caller must resubmit
// the unconsumed tail prepended to whatever comes next. Parse never blocks
// and never retains data past the call.
//
// Once the parser has crashed (Crashed() == true), every call is a no-op
// returning a generic error. Once a message completes without a body (e.g.
// HTTP/0.9), the parser is Dead and every further call returns (0, nil).
func (p *Parser) Parse(h Handler, data []byte) (int, error) {
	if p.state == sCrashed {
		return 0, errOther
	}
	if p.state == sDead {
		return 0, nil
	}
	if len(data) == 0 {
		return 0, nil
	}

	crash := func(i int, k ErrorKind) (int, error) {
		p.state = sCrashed
		return i, newErr(k)
	}
	crashIO := func(i int, cause error) (int, error) {
		p.state = sCrashed
		return i, newIOErr(cause)
	}

	i := 0
	for i < len(data) {
		c := data[i]
		consumed := true

		switch p.state {

		case sDead:
			return i, nil
		case sCrashed:
			return i, errOther

		case sStartReq:
			if c == '\r' || c == '\n' {
				// leading blank line before the request line, skip
			} else {
				m, ok := firstByteMethod[c]
				if !ok {
					return crash(i, ErrInvalidMethod)
				}
				p.isRequest = true
				p.method = m
				p.index = 1
				h.OnMessageBegin(p)
				p.state = sReqMethod
			}

		case sStartRes:
			switch {
			case c == '\r' || c == '\n':
			case c != 'H':
				return crash(i, ErrInvalidVersion)
			default:
				p.isRequest = false
				p.index = 1
				h.OnMessageBegin(p)
				p.state = sResHTTPStart
			}

		case sStartReqOrRes:
			switch {
			case c == '\r' || c == '\n':
			case c == 'H':
				p.state = sStartReqOrResH
			default:
				m, ok := firstByteMethod[c]
				if !ok {
					return crash(i, ErrInvalidMethod)
				}
				p.isRequest = true
				p.method = m
				p.index = 1
				h.OnMessageBegin(p)
				p.state = sReqMethod
			}

		case sStartReqOrResH:
			if c == 'T' {
				p.isRequest = false
				h.OnMessageBegin(p)
				p.index = 2
				p.state = sResHTTPStart
			} else {
				p.isRequest = true
				p.method = MHead
				h.OnMessageBegin(p)
				p.index = 1
				p.state = sReqMethod
				consumed = false
			}

		case sReqMethod:
			if c == ' ' {
				if p.index != len(p.method.Name()) {
					return crash(i, ErrInvalidMethod)
				}
				p.index = 0
				p.state = sReqURL
			} else {
				m, ok := methodAdvance(p.method, p.index, c)
				if !ok {
					return crash(i, ErrInvalidMethod)
				}
				p.method = m
				p.index++
			}

		case sReqURL:
			switch c {
			case ' ':
				if p.index == 0 {
					return crash(i, ErrInvalidURL)
				}
				if err := h.OnURL(p, p.index); err != nil {
					return crashIO(i, err)
				}
				p.index = 0
				p.state = sReqHTTPStart
			case '\r', '\n':
				if p.index == 0 {
					return crash(i, ErrInvalidURL)
				}
				if err := h.OnURL(p, p.index); err != nil {
					return crashIO(i, err)
				}
				if err := p.finish09(h); err != nil {
					return crashIO(i, err)
				}
			default:
				h.PushData(p, c)
				p.index++
			}

		case sReqHTTPStart:
			if c != httpLit[p.index] {
				return crash(i, ErrInvalidVersion)
			}
			p.index++
			if p.index == len(httpLit) {
				p.major = 0
				p.index = 0
				p.state = sReqHTTPMajor
			}

		case sReqHTTPMajor:
			switch {
			case isDigit(c):
				p.index++
				if p.index > 3 {
					return crash(i, ErrInvalidVersion)
				}
				p.major = p.major*10 + uint(c-'0')
			case c == '.':
				p.minor = 0
				p.index = 0
				p.state = sReqHTTPMinor
			default:
				return crash(i, ErrInvalidVersion)
			}

		case sReqHTTPMinor:
			switch {
			case isDigit(c):
				p.index++
				if p.index > 3 {
					return crash(i, ErrInvalidVersion)
				}
				p.minor = p.minor*10 + uint(c-'0')
			case c == '\r' || c == '\n':
				v, ok := findVersion(p.major, p.minor)
				if !ok {
					return crash(i, ErrInvalidVersion)
				}
				p.version = v
				p.keepAlive = v == Version11
				if c == '\r' {
					p.state = sReqLineAlmostDone
				} else {
					p.state = sHeaderFieldStart
				}
			default:
				return crash(i, ErrInvalidVersion)
			}

		case sReqLineAlmostDone:
			if c != '\n' {
				return crash(i, ErrInvalidRequestLine)
			}
			p.state = sHeaderFieldStart

		case sResHTTPStart:
			if c != httpLit[p.index] {
				return crash(i, ErrInvalidVersion)
			}
			p.index++
			if p.index == len(httpLit) {
				p.major = 0
				p.index = 0
				p.state = sResHTTPMajor
			}

		case sResHTTPMajor:
			switch {
			case isDigit(c):
				p.index++
				if p.index > 3 {
					return crash(i, ErrInvalidVersion)
				}
				p.major = p.major*10 + uint(c-'0')
			case c == '.':
				p.minor = 0
				p.index = 0
				p.state = sResHTTPMinor
			default:
				return crash(i, ErrInvalidVersion)
			}

		case sResHTTPMinor:
			switch {
			case isDigit(c):
				p.index++
				if p.index > 3 {
					return crash(i, ErrInvalidVersion)
				}
				p.minor = p.minor*10 + uint(c-'0')
			case c == ' ':
				v, ok := findVersion(p.major, p.minor)
				if !ok {
					return crash(i, ErrInvalidVersion)
				}
				p.version = v
				p.keepAlive = v == Version11
				p.state = sResStatusCodeStart
			default:
				return crash(i, ErrInvalidVersion)
			}

		case sResStatusCodeStart:
			switch {
			case c == ' ':
			case !isDigit(c):
				return crash(i, ErrInvalidStatusCode)
			default:
				p.statusCode = uint(c - '0')
				p.index = 1
				p.state = sResStatusCode
			}

		case sResStatusCode:
			switch {
			case isDigit(c):
				if p.index >= 3 {
					return crash(i, ErrInvalidStatusLine)
				}
				p.statusCode = p.statusCode*10 + uint(c-'0')
				p.index++
			case c == '\r':
				p.state = sResLineAlmostDone
			case c == '\n':
				p.state = sHeaderFieldStart
			default:
				p.state = sResStatus
			}

		case sResStatus:
			switch c {
			case '\r':
				p.state = sResLineAlmostDone
			case '\n':
				p.state = sHeaderFieldStart
			}
			// reason phrase bytes are otherwise ignored, never reported

		case sResLineAlmostDone:
			if c != '\n' {
				return crash(i, ErrInvalidStatusLine)
			}
			p.state = sHeaderFieldStart

		case sHeaderFieldStart:
			switch {
			case c == '\r':
				p.state = sHeadersAlmostDone
			case c == '\n':
				if err := p.endHeaders(h); err != nil {
					p.state = sCrashed
					return i, err
				}
			case !isTokenChar(c):
				return crash(i, ErrInvalidHeaderField)
			default:
				p.headerState = seedHeaderNameState(c)
				p.index = 1
				h.PushData(p, c)
				p.state = sHeaderField
			}

		case sHeaderField:
			switch {
			case c == ':':
				if err := h.OnHeaderField(p, p.index); err != nil {
					return crashIO(i, err)
				}
				p.state = sHeaderValueDiscardWS
			case c == '\r' || c == '\n':
				return crash(i, ErrInvalidHeaderField)
			case !isTokenChar(c):
				return crash(i, ErrInvalidHeaderField)
			default:
				p.headerState = advanceHeaderName(p.headerState, p.index, c)
				h.PushData(p, c)
				p.index++
			}

		case sHeaderValueDiscardWS:
			switch {
			case c == ' ' || c == '\t':
			case c == '\r':
				p.state = sHeaderValueDiscardWSAlmostDone
			case c == '\n':
				p.state = sHeaderValueDiscardLWS
			default:
				p.seedValueState(c)
				h.PushData(p, c)
				p.index = 1
				p.state = sHeaderValue
			}

		case sHeaderValueDiscardWSAlmostDone:
			if c != '\n' {
				return crash(i, ErrInvalidHeaderField)
			}
			p.state = sHeaderValueDiscardLWS

		case sHeaderValueDiscardLWS:
			if c == ' ' || c == '\t' {
				p.state = sHeaderValueDiscardWS
			} else {
				if err := h.OnHeaderValue(p, 0); err != nil {
					return crashIO(i, err)
				}
				p.state = sHeaderFieldStart
				consumed = false
			}

		case sHeaderValue:
			if c == '\r' || c == '\n' {
				p.applyValueTerminal(p.index)
				if err := h.OnHeaderValue(p, p.index); err != nil {
					return crashIO(i, err)
				}
				if c == '\r' {
					p.state = sHeaderAlmostDone
				} else {
					p.state = sHeaderFieldStart
				}
			} else {
				p.advanceValueState(p.index, c)
				h.PushData(p, c)
				p.index++
			}

		case sHeaderAlmostDone:
			if c != '\n' {
				return crash(i, ErrInvalidHeaderField)
			}
			p.state = sHeaderFieldStart

		case sHeadersAlmostDone:
			if c != '\n' {
				return crash(i, ErrInvalidHeaders)
			}
			if err := p.endHeaders(h); err != nil {
				p.state = sCrashed
				return i, err
			}

		case sBodyIdentity:
			take := len(data) - i
			if uint64(take) > p.bodyRemaining {
				take = int(p.bodyRemaining)
			}
			if take > 0 {
				h.PushDataAll(p, data[i:i+take])
				p.bodyRemaining -= uint64(take)
				i += take
			}
			if p.bodyRemaining == 0 {
				if err := h.OnBody(p, int(p.bodyTotal)); err != nil {
					return crashIO(i, err)
				}
				if err := h.OnMessageComplete(p); err != nil {
					return crashIO(i, err)
				}
				p.reset()
			}
			continue

		case sBodyIdentityEOF:
			take := len(data) - i
			if take > 0 {
				h.PushDataAll(p, data[i:i+take])
				p.bodyConsumed += uint64(take)
				i += take
			}
			continue

		case sChunkSizeStart:
			v, ok := hexVal(c)
			if !ok {
				return crash(i, ErrInvalidHeaderField)
			}
			p.chunk.size = v
			p.state = sChunkSize

		case sChunkSize:
			if v, ok := hexVal(c); ok {
				p.chunk.size = p.chunk.size*16 + v
			} else if c == ';' {
				p.state = sChunkParameters
			} else if c == '\r' {
				p.state = sChunkSizeAlmostDone
			} else if c == '\n' {
				p.state = p.afterChunkSizeLine()
			} else {
				return crash(i, ErrInvalidHeaderField)
			}

		case sChunkParameters:
			if c == '\r' {
				p.state = sChunkSizeAlmostDone
			} else if c == '\n' {
				p.state = p.afterChunkSizeLine()
			}
			// chunk extensions are otherwise ignored

		case sChunkSizeAlmostDone:
			if c != '\n' {
				return crash(i, ErrInvalidHeaderField)
			}
			p.state = p.afterChunkSizeLine()

		case sChunkData:
			take := len(data) - i
			if uint64(take) > p.chunk.size {
				take = int(p.chunk.size)
			}
			if take > 0 {
				h.PushDataAll(p, data[i:i+take])
				p.chunk.size -= uint64(take)
				i += take
			}
			if p.chunk.size == 0 {
				if err := h.OnBody(p, int(p.chunk.chunkTotal)); err != nil {
					return crashIO(i, err)
				}
				p.index = 0
				p.state = sChunkDataAlmostDone
			}
			continue

		case sChunkDataAlmostDone:
			if p.index == 0 {
				if c != '\r' {
					return crash(i, ErrInvalidHeaderField)
				}
				p.index = 1
			} else {
				if c != '\n' {
					return crash(i, ErrInvalidHeaderField)
				}
				p.index = 0
				p.state = sChunkSizeStart
			}

		default:
			return crash(i, ErrOther)
		}

		if consumed {
			i++
		}
	}
	return i, nil
}

// afterChunkSizeLine is reached once a chunk-size line's terminating LF has
// been seen; it decides whether more chunk data follows or the terminal
// zero-size chunk was just read, in which case trailers (if any) reuse the
// ordinary header sub-FSM (chunk.inTrailer).
func (p *Parser) afterChunkSizeLine() state {
	p.chunk.chunkTotal = p.chunk.size
	if p.chunk.size == 0 {
		p.chunk.inTrailer = true
		return sHeaderFieldStart
	}
	return sChunkData
}

// finish09 completes an HTTP/0.9 request: no version was sent, so it is
// assigned Version09, and the message is over immediately (0.9 has no
// headers and no body).
func (p *Parser) finish09(h Handler) error {
	p.version = Version09
	if err := h.OnMessageComplete(p); err != nil {
		return err
	}
	p.state = sDead
	return nil
}

// endHeaders runs the header-section-complete / trailer-complete dispatch
// (§4.2.8): it invokes the handler's on_headers_complete (or, for a trailer
// section reached via the chunked-body enhancement, on_message_complete
// directly), decides the body-framing state via bodyNext, and resets the
// parser immediately for messages with no body.
func (p *Parser) endHeaders(h Handler) error {
	if p.chunk.inTrailer {
		p.chunk.inTrailer = false
		if err := h.OnMessageComplete(p); err != nil {
			return newIOErr(err)
		}
		p.reset()
		return nil
	}

	noBody, err := h.OnHeadersComplete(p)
	if err != nil {
		return newIOErr(err)
	}
	next, msgComplete := p.bodyNext(noBody)
	if msgComplete {
		if err := h.OnMessageComplete(p); err != nil {
			return newIOErr(err)
		}
		p.reset()
		return nil
	}
	p.state = next
	switch next {
	case sBodyIdentity:
		p.bodyTotal = p.contentLength
		p.bodyRemaining = p.contentLength
	case sBodyIdentityEOF:
		p.bodyConsumed = 0
	}
	return nil
}

// Finish signals that the transport has no more data to offer (the
// connection closed), completing a response whose body is framed by
// connection-close (sBodyIdentityEOF, §4.2.8). It is the only way such a
// message reaches on_message_complete, since Parse itself never infers
// end-of-stream from a short or empty buffer. Calling Finish while no
// message is in flight, or after Dead/Crashed, is a no-op; calling it in
// any other state reports ErrInvalidEOFState and crashes the parser, since
// the peer closed the connection mid-message.
func (p *Parser) Finish(h Handler) error {
	switch p.state {
	case sDead, sCrashed:
		return nil
	case sBodyIdentityEOF:
		if err := h.OnBody(p, int(p.bodyConsumed)); err != nil {
			p.state = sCrashed
			return newIOErr(err)
		}
		if err := h.OnMessageComplete(p); err != nil {
			p.state = sCrashed
			return newIOErr(err)
		}
		p.reset()
		return nil
	default:
		if p.state == p.mode.startState() {
			return nil
		}
		p.state = sCrashed
		return newErr(ErrInvalidEOFState)
	}
}
