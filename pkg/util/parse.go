// Package util contains any functions used across the application that don't match
// any other package
package util

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	expiryRe = regexp.MustCompile(`^(\d+)([mhdw])$`)
	sizeRe   = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(B|KB|MB|GB|TB)$`)
)

var expiryUnits = map[string]time.Duration{
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
	"w": 7 * 24 * time.Hour,
}

var sizeUnits = map[string]float64{
	"B":  1,
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
	"TB": 1 << 40,
}

// ParseExpiry turns a string like "30m", "2h", "3d" or "1w" into an
// absolute timestamp relative to now. Empty and malformed input both
// return nil, which callers treat as "never expires". The fallback on
// malformed input is intentional: settings values go through here too
// and a typo in the dashboard must not start rejecting uploads.
func ParseExpiry(s string) *time.Time {
	if s == "" {
		return nil
	}

	m := expiryRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return nil
	}

	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil
	}

	t := time.Now().UTC().Add(time.Duration(n) * expiryUnits[m[2]])
	return &t
}

// ParseSize turns a string like "100MB" or "1.5GB" into a byte count
// using binary (1024-based) multipliers. Empty and malformed input
// return 0, which callers treat as "no limit". Like ParseExpiry this
// fallback is documented behavior and not an error path.
func ParseSize(s string) int64 {
	if s == "" {
		return 0
	}

	m := sizeRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return 0
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	return int64(n * sizeUnits[m[2]])
}
