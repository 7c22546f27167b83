package report

import (
	"fmt"
	"strings"
)

// Format selects how results are written.
type Format string

const (
	FormatJSON  Format = "json"
	FormatHuman Format = "human"
)

// Formats lists the accepted --format values.
var Formats = []string{string(FormatJSON), string(FormatHuman)}

// ParseFormat parses a --format value. It is case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatHuman:
		return FormatHuman, nil
	default:
		return "", fmt.Errorf("invalid output format %q (valid: %s)", s, strings.Join(Formats, ", "))
	}
}

func (f Format) String() string {
	return string(f)
}
