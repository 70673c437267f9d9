// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpparse

import "github.com/intuitivelabs/bytescase"

// isTokenChar reports whether c is a valid HTTP header-field-name byte.
// Ranges per §4.4: '!', '#'..'\', '^'..'z', '|', '~' (this mirrors RFC 7230
// tchar augmented conservatively -- wider than strict tchar, matching the
// spec's stated ranges exactly rather than RFC 7230's delimiter exclusions).
func isTokenChar(c byte) bool {
	switch {
	case c == '!':
		return true
	case c >= '#' && c <= '\\':
		return true
	case c >= '^' && c <= 'z':
		return true
	case c == '|' || c == '~':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// lower delegates to the teacher's bytescase table-based folding rather
// than a hand-rolled range check, the same way parse_headers.go and
// parse_method.go do their case-insensitive matching.
func lower(c byte) byte {
	return bytescase.ByteToLower(c)
}
