// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpparse

// Version is a recognized HTTP protocol version. Recovered from
// original_source/src/http/mod.rs's HttpVersion enum (see SPEC_FULL.md
// §9.1): the source distinguishes the three supported (major, minor)
// pairs as a first-class, printable type rather than raw integers.
type Version struct {
	Major uint8
	Minor uint8
	set   bool
}

// recognized versions
var (
	Version09 = Version{Major: 0, Minor: 9, set: true}
	Version10 = Version{Major: 1, Minor: 0, set: true}
	Version11 = Version{Major: 1, Minor: 1, set: true}
)

// findVersion maps a (major, minor) pair to a supported Version, mirroring
// the original's HttpVersion::find.
func findVersion(major, minor uint) (Version, bool) {
	switch major {
	case 0:
		if minor == 9 {
			return Version09, true
		}
	case 1:
		switch minor {
		case 0:
			return Version10, true
		case 1:
			return Version11, true
		}
	}
	return Version{}, false
}

// Set reports whether the version has been established yet.
func (v Version) Set() bool {
	return v.set
}

// String implements the Stringer interface, e.g. "HTTP/1.1".
func (v Version) String() string {
	if !v.set {
		return "HTTP/?.?"
	}
	digit := func(d uint8) byte { return '0' + d }
	return string([]byte{'H', 'T', 'T', 'P', '/', digit(v.Major), '.', digit(v.Minor)})
}
