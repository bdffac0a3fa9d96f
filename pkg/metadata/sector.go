package metadata

import (
	"fmt"
	"strings"
)

// SectorCode identifies the business unit a record belongs to.
type SectorCode string

func NewSectorCode(value string) (SectorCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if normalized == "" {
		return "", fmt.Errorf("sector code is required")
	}
	if strings.ContainsAny(normalized, " \t\n") {
		return "", fmt.Errorf("sector code %q must not contain whitespace", value)
	}

	return SectorCode(normalized), nil
}

func (s SectorCode) String() string {
	return string(s)
}
