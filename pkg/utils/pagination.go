package utils

import (
	"fmt"
	"strconv"
	"time"
)

// ParseOptionalInt64 returns nil for an empty value. Sign is not checked here.
func ParseOptionalInt64(value string) (*int64, error) {
	if value == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q", value)
	}
	return &v, nil
}

// ParseOptionalTime accepts RFC3339 with or without fractional seconds.
func ParseOptionalTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q, expected RFC3339", value)
	}
	return &t, nil
}
