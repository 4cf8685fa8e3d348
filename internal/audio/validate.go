package audio

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrEmptyScript is returned when there is nothing to narrate
var ErrEmptyScript = errors.New("script cannot be empty")

// ValidateScript rejects blank scripts
func ValidateScript(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyScript
	}
	return nil
}

// ValidateLength rejects scripts longer than limit characters
func ValidateLength(text string, limit int) error {
	if n := utf8.RuneCountInString(text); limit > 0 && n > limit {
		return fmt.Errorf("script has %d characters, provider limit is %d", n, limit)
	}
	return nil
}
