package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotConfigured is returned when a required secret has neither a file nor a value.
var ErrNotConfigured = errors.New("secret is not configured")

// Source describes how to load a secret value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or environment.
	Value string
	// File points to a file containing the secret value. When set it takes
	// precedence over Value.
	File string
	// Optional makes an unconfigured secret resolve to an empty string instead of an error.
	Optional bool
}

// Load returns the resolved secret value from the provided source. When File is
// set it takes precedence over Value. The returned secret is always trimmed. An
// error is returned when neither File nor Value contain a usable secret, unless
// the source is optional.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
		src.File = file
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		if src.File != "" {
			return "", fmt.Errorf("%s file %q is empty", name, src.File)
		}
		if src.Optional {
			return "", nil
		}
		return "", fmt.Errorf("%s: %w", name, ErrNotConfigured)
	}

	return secret, nil
}

// Mask hides all but the last four characters of a secret so it can be logged.
func Mask(secret string) string {
	runes := []rune(strings.TrimSpace(secret))
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-4:])
}
