package mcpserver

import (
	"time"

	"github.com/dustin/go-humanize"
)

// humanizeDuration renders d the way the reference CLI formats diagnostic
// durations, for list_shells' additive uptime field (SPEC_FULL.md).
func humanizeDuration(d time.Duration) string {
	return humanize.RelTime(time.Now().Add(-d), time.Now(), "", "")
}
