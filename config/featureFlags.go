package config

import (
	"os"
	"strings"
)

// AllowDegradedNumbering controls whether the numbering authority may mint a
// timestamp-derived number when its counter row is unusable. On by default;
// disable where a broken sequence must fail loudly instead.
//
// Set via env:
// - NUMBERING_DEGRADED_FALLBACK=false
func AllowDegradedNumbering() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("NUMBERING_DEGRADED_FALLBACK")))
	return v != "0" && v != "false" && v != "no" && v != "n"
}
