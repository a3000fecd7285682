package util

import (
    "strconv"
    "time"
)

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
        return t, true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0), true
    }
    return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
    if t, ok := ParseTime(s); ok {
        return t
    }
    return def
}

// FileTimestamp formats t for use in output artifact file names.
func FileTimestamp(t time.Time) string {
    return t.Format("20060102_150405")
}

// DaysRange returns [now-days, now] as a pair of times.
func DaysRange(now time.Time, days int) (time.Time, time.Time) {
    if days <= 0 {
        days = 365
    }
    return now.AddDate(0, 0, -days), now
}
