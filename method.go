// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpparse

// HTTPMethod is the type used to hold the recognized HTTP request methods.
type HTTPMethod uint8

// method types, see §6.2 for the full 29-method list.
const (
	MUndef HTTPMethod = iota
	MCheckout
	MConnect
	MCopy
	MDelete
	MGet
	MHead
	MLink
	MLock
	MMerge
	MMkActivity
	MMkCalendar
	MMkCol
	MMove
	MMSearch
	MNotify
	MOptions
	MPatch
	MPost
	MPropFind
	MPropPatch
	MPurge
	MPut
	MReport
	MSearch
	MSubscribe
	MTrace
	MUnlink
	MUnlock
	MUnsubscribe
	mMethodMax // sentinel, must stay last
)

// Method2Name translates between a numeric HTTPMethod and the ASCII name.
var Method2Name = [mMethodMax][]byte{
	MUndef:       []byte(""),
	MCheckout:    []byte("CHECKOUT"),
	MConnect:     []byte("CONNECT"),
	MCopy:        []byte("COPY"),
	MDelete:      []byte("DELETE"),
	MGet:         []byte("GET"),
	MHead:        []byte("HEAD"),
	MLink:        []byte("LINK"),
	MLock:        []byte("LOCK"),
	MMerge:       []byte("MERGE"),
	MMkActivity:  []byte("MKACTIVITY"),
	MMkCalendar:  []byte("MKCALENDAR"),
	MMkCol:       []byte("MKCOL"),
	MMove:        []byte("MOVE"),
	MMSearch:     []byte("M-SEARCH"),
	MNotify:      []byte("NOTIFY"),
	MOptions:     []byte("OPTIONS"),
	MPatch:       []byte("PATCH"),
	MPost:        []byte("POST"),
	MPropFind:    []byte("PROPFIND"),
	MPropPatch:   []byte("PROPPATCH"),
	MPurge:       []byte("PURGE"),
	MPut:         []byte("PUT"),
	MReport:      []byte("REPORT"),
	MSearch:      []byte("SEARCH"),
	MSubscribe:   []byte("SUBSCRIBE"),
	MTrace:       []byte("TRACE"),
	MUnlink:      []byte("UNLINK"),
	MUnlock:      []byte("UNLOCK"),
	MUnsubscribe: []byte("UNSUBSCRIBE"),
}

// Name returns the ASCII method name.
func (m HTTPMethod) Name() []byte {
	if m >= mMethodMax {
		return Method2Name[MUndef]
	}
	return Method2Name[m]
}

// String implements the Stringer interface.
func (m HTTPMethod) String() string {
	return string(m.Name())
}

// provisional method picked from the request-line's first byte. Only
// letters that start at least one of the 29 recognized methods appear
// here; anything else is ErrInvalidMethod.
var firstByteMethod = map[byte]HTTPMethod{
	'C': MConnect,
	'D': MDelete,
	'G': MGet,
	'H': MHead,
	'L': MLink,
	'M': MMkCol,
	'N': MNotify,
	'O': MOptions,
	'P': MPut,
	'R': MReport,
	'S': MSearch,
	'T': MTrace,
	'U': MUnlink,
}

type methodSwitch struct {
	from  HTTPMethod
	index int
	c     byte
	to    HTTPMethod
}

// disambiguation table, see §4.2.2. The MKCOL@1 'O' -> MOVE entry fixes
// Open Question 1 (MOVE was otherwise unreachable). index is always the
// 0-based byte position where the method name diverges from cur's.
var methodDisambig = []methodSwitch{
	{MConnect, 1, 'H', MCheckout},
	{MConnect, 2, 'P', MCopy},
	{MLink, 1, 'O', MLock},
	{MMkCol, 1, '-', MMSearch},
	{MMkCol, 1, 'E', MMerge},
	{MMkCol, 1, 'O', MMove},
	{MMkCol, 2, 'A', MMkActivity},
	{MMkCol, 3, 'A', MMkCalendar},
	{MPut, 1, 'A', MPatch},
	{MPut, 1, 'O', MPost},
	{MPut, 1, 'R', MPropPatch},
	{MPut, 2, 'R', MPurge},
	{MPropPatch, 4, 'F', MPropFind},
	{MSearch, 1, 'U', MSubscribe},
	{MUnlink, 2, 'S', MUnsubscribe},
	{MUnlink, 3, 'O', MUnlock},
}

// methodAdvance feeds one more method byte c (at position index, 0-based)
// into the in-progress provisional method cur. It returns the (possibly
// switched) method and whether c was accepted as a method byte.
func methodAdvance(cur HTTPMethod, index int, c byte) (HTTPMethod, bool) {
	name := cur.Name()
	if index < len(name) && name[index] == c {
		return cur, true
	}
	for _, sw := range methodDisambig {
		if sw.from == cur && sw.index == index && sw.c == c {
			return sw.to, true
		}
	}
	return cur, false
}
