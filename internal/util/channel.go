// Package util holds small shared helpers for Discord entity references.
package util

import (
	"errors"
	"strings"
)

// ErrInvalidChannelRef means the input is neither a channel mention nor a
// bare numeric channel id.
var ErrInvalidChannelRef = errors.New("invalid channel reference")

// ParseChannelRef extracts the channel id from a mention like "<#123>" or a
// bare id string.
func ParseChannelRef(ref string) (string, error) {
	cleaned := strings.TrimSpace(ref)
	cleaned = strings.TrimPrefix(cleaned, "<#")
	cleaned = strings.TrimSuffix(cleaned, ">")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return "", ErrInvalidChannelRef
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", ErrInvalidChannelRef
		}
	}
	return cleaned, nil
}
