// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sam

import (
	"bytes"
	"fmt"
	"strings"
)

// Tag is a SAM optional field. Key holds the tag name and type, for
// example "MD:Z", and Value holds the text following the type.
type Tag struct {
	Key   string
	Value string
}

// ParseTag returns a Tag parsed from the text of a TAG:TYPE:VALUE field.
func ParseTag(text []byte) (Tag, error) {
	tf := bytes.SplitN(text, []byte{':'}, 3)
	if len(tf) != 3 || len(tf[0]) != 2 || len(tf[1]) != 1 {
		return Tag{}, fmt.Errorf("sam: invalid aux tag field: %q", text)
	}
	if !isTypeChar[tf[1][0]] {
		return Tag{}, fmt.Errorf("sam: invalid aux tag type %q in %q", tf[1], text)
	}
	return Tag{Key: string(text[:4]), Value: string(tf[2])}, nil
}

var isTypeChar = [256]bool{
	'A': true, 'c': true, 'C': true, 's': true, 'S': true,
	'i': true, 'I': true, 'f': true, 'Z': true, 'H': true, 'B': true,
}

// String returns the SAM text form of the tag.
func (t Tag) String() string { return t.Key + ":" + t.Value }

// Tags is an ordered set of SAM optional fields.
type Tags []Tag

// Lookup returns the value of the first field matching key and whether a
// field was found. A key of the form "MD:Z" must match both the tag name
// and type; a two character key such as "MD" matches any type.
func (t Tags) Lookup(key string) (value string, ok bool) {
	for _, f := range t {
		if f.Key == key || (len(key) == 2 && strings.HasPrefix(f.Key, key+":")) {
			return f.Value, true
		}
	}
	return "", false
}

// String returns the fields joined by single spaces.
func (t Tags) String() string {
	s := make([]string, len(t))
	for i, f := range t {
		s[i] = f.String()
	}
	return strings.Join(s, " ")
}
