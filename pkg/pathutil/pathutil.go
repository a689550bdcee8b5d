// Package pathutil parses the "lib.name[member.o]" display-name syntax
// used by object headers, lookup queries, and removal lists, and
// provides glob matching over that syntax for wildcard removal lists
// and interactive lookups.
package pathutil

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DisplayName is a parsed "lib.name" or "lib.name[member.o]" header.
type DisplayName struct {
	Library    string // "" for a standalone object
	Member     string // the object's own name; for a standalone object, the whole raw text
	IsArchived bool
}

// ParseDisplayName splits raw into its library/member parts. The
// bracketed form "lib[member]" is recognized by a trailing ']' and is
// split into a library name and a member name; anything else is a
// standalone object name. Returns an error if raw ends in ']' but has
// no matching '['.
func ParseDisplayName(raw string) (DisplayName, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DisplayName{}, fmt.Errorf("pathutil: empty display name")
	}

	if !strings.HasSuffix(raw, "]") {
		return DisplayName{Member: raw}, nil
	}

	open := strings.IndexByte(raw, '[')
	if open < 0 {
		return DisplayName{}, fmt.Errorf("pathutil: malformed archive-member name %q", raw)
	}

	lib := raw[:open]
	member := raw[open+1 : len(raw)-1]
	if lib == "" || member == "" {
		return DisplayName{}, fmt.Errorf("pathutil: malformed archive-member name %q", raw)
	}

	return DisplayName{Library: lib, Member: member, IsArchived: true}, nil
}

// Format renders d back into the "lib[member]" or plain-name syntax.
func (d DisplayName) Format() string {
	if !d.IsArchived {
		return d.Member
	}
	return fmt.Sprintf("%s[%s]", d.Library, d.Member)
}

// Match reports whether pattern (itself optionally a "lib[member]"
// form, with either side allowed to contain doublestar glob meta
// characters such as '*' and '**') matches the display name d. A bare
// pattern matches by member name alone, so "b.o" finds libx.a[b.o]
// and liby.a[b.o] both; the lib[member] form is how a caller
// disambiguates. Used by removal lists and interactive lookups, which
// also accept wildcard forms like "libx.a[*]".
func Match(pattern string, d DisplayName) (bool, error) {
	p, err := ParseDisplayName(pattern)
	if err != nil {
		return false, err
	}

	if !p.IsArchived {
		return doublestar.Match(p.Member, d.Member)
	}

	if !d.IsArchived {
		return false, nil
	}
	libOK, err := doublestar.Match(p.Library, d.Library)
	if err != nil || !libOK {
		return false, err
	}
	return doublestar.Match(p.Member, d.Member)
}
