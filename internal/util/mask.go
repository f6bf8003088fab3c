// Package util holds small helpers shared by the logging and HTTP layers.
package util

import "strings"

// MaskEmail keeps the first rune of the local part and of the first domain
// label so log lines stay correlatable without carrying the full address.
func MaskEmail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	i := strings.LastIndexByte(s, '@')
	if i <= 0 {
		if len(s) <= 3 {
			return "***"
		}
		return s[:1] + "***" + s[len(s)-1:]
	}
	local, domain := s[:i], s[i+1:]
	if len(local) > 1 {
		local = local[:1] + "***"
	}
	labels := strings.Split(domain, ".")
	if len(labels[0]) > 1 {
		labels[0] = labels[0][:1] + "***"
	}
	return local + "@" + strings.Join(labels, ".")
}
