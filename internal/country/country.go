// Package country holds the ISO codes of the countries that have a fulfillment processor.
// PE and CL are always known; deployments extend the set from SUPPORTED_COUNTRIES via Configure.
package country

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

type Code string

const (
	PE Code = "PE"
	CL Code = "CL"
)

var (
	mu        sync.RWMutex
	supported = map[Code]struct{}{
		PE: {},
		CL: {},
	}
)

// Configure replaces the supported set with codes. An empty list keeps the current set.
func Configure(codes ...string) error {
	next := make(map[Code]struct{}, len(codes))
	for _, raw := range codes {
		c := Code(strings.ToUpper(strings.TrimSpace(raw)))
		if c == "" {
			continue
		}
		if !wellFormed(c) {
			return fmt.Errorf("country code %q must be two letters", raw)
		}
		next[c] = struct{}{}
	}
	if len(next) == 0 {
		return nil
	}
	mu.Lock()
	supported = next
	mu.Unlock()
	return nil
}

func wellFormed(c Code) bool {
	if len(c) != 2 {
		return false
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Valid reports whether c has a processor.
func (c Code) Valid() bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := supported[c]
	return ok
}

func (c Code) String() string { return string(c) }

// Parse normalizes s and returns the code if it is supported.
func Parse(s string) (Code, bool) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.Valid()
}

// Supported returns the known codes in a stable order.
func Supported() []Code {
	mu.RLock()
	out := make([]Code, 0, len(supported))
	for c := range supported {
		out = append(out, c)
	}
	mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings is Supported as plain strings.
func Strings() []string {
	codes := Supported()
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	return out
}
