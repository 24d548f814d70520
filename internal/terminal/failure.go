package terminal

import "strings"

// FailureMarkers are the substrings that make an output failure-shaped.
// Matching is case-sensitive. The warning glyph is deliberately absent:
// warnings such as overwriting a key still count as success.
var FailureMarkers = []string{
	"No such file or directory",
	"Error:",
	"command not found",
	"❌",
}

// IsFailure reports whether output reads like a failed command.
func IsFailure(output string) bool {
	for _, m := range FailureMarkers {
		if strings.Contains(output, m) {
			return true
		}
	}
	return false
}
