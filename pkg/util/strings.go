package util

import (
    "strconv"
    "strings"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
    if s == "" {
        return def
    }
    v, err := strconv.Atoi(s)
    if err != nil {
        return def
    }
    return v
}

// NormalizeTicker uppercases and trims a ticker symbol.
func NormalizeTicker(s string) string {
    return strings.ToUpper(strings.TrimSpace(s))
}

// LooksLikeTicker reports whether the input is plausibly a raw ticker symbol
// (short, all-uppercase after trimming) rather than a company name.
func LooksLikeTicker(s string) bool {
    s = strings.TrimSpace(s)
    if s == "" || len(s) > 5 {
        return false
    }
    return s == strings.ToUpper(s) && !strings.ContainsAny(s, " \t")
}
