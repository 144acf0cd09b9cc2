package matcher

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

const regexOptions = regexp2.ECMAScript | regexp2.IgnoreCase | regexp2.Multiline

// PatternError reports a rule pattern that is not a valid expression.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %s: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Matcher tests addresses against rule patterns and caches compiled
// expressions.
type Matcher struct {
	compiled map[string]*regexp2.Regexp
}

// New returns an empty Matcher.
func New() *Matcher {
	return &Matcher{compiled: make(map[string]*regexp2.Regexp)}
}

// IsRegex reports whether pattern is a slash-delimited expression.
func IsRegex(pattern string) bool {
	return len(pattern) >= 2 && strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/")
}

// Match reports whether pattern selects address. The repository root (empty
// address) never matches.
func (m *Matcher) Match(pattern, address string) (bool, error) {
	if address == "" {
		return false, nil
	}
	if !IsRegex(pattern) {
		return pattern == address, nil
	}

	re, err := m.Compile(pattern)
	if err != nil {
		return false, err
	}
	ok, err := re.MatchString(address)
	if err != nil {
		return false, &PatternError{Pattern: pattern, Err: err}
	}
	return ok, nil
}

// Compile returns the compiled expression for a delimited pattern.
func (m *Matcher) Compile(pattern string) (*regexp2.Regexp, error) {
	if re, ok := m.compiled[pattern]; ok {
		return re, nil
	}
	re, err := regexp2.Compile(pattern[1:len(pattern)-1], regexOptions)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	m.compiled[pattern] = re
	return re, nil
}

// Matching returns the patterns among keys that select address, in the
// order given.
func (m *Matcher) Matching(keys []string, address string) ([]string, error) {
	var out []string
	for _, key := range keys {
		ok, err := m.Match(key, address)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, key)
		}
	}
	return out, nil
}
