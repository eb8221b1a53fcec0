// Package device turns raw User-Agent strings into short display names for
// audit log lines ("Chrome on Mac OS X", "Firefox on Linux").
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent derives a human readable device name from a User-Agent
// header. Unknown or empty agents map to "Unknown Device".
func ParseUserAgent(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Unknown Device"
	}

	ua := useragent.New(raw)
	browser, _ := ua.Browser()
	os := ua.OSInfo().Name

	switch {
	case browser != "" && os != "":
		return browser + " on " + os
	case browser != "":
		return browser
	case os != "":
		return os
	default:
		return "Unknown Device"
	}
}
