package vapi

import (
	"regexp"
	"strings"
)

// Keys are accepted either with a known literal prefix or as a hex/uuid-like
// token of at least 32 characters. Nothing stronger is checked locally; the
// provider is the authority.
var (
	privateKeyPrefixes = []string{"sk_", "vapi_"}
	publicKeyPrefixes  = []string{"pk_", "vapi_"}
	hexLikeKey         = regexp.MustCompile(`^[0-9a-fA-F-]{32,}$`)
)

// ValidatePrivateKey checks the server-side credential shape.
func ValidatePrivateKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return &ConfigurationError{Reason: "private key is not configured (set VAPI_PRIVATE_KEY or VAPI_PRIVATE_KEY_FILE)"}
	}
	if !wellFormed(key, privateKeyPrefixes) {
		return &ConfigurationError{Reason: "private key is malformed: expected an sk_/vapi_ prefixed key or a uuid"}
	}
	return nil
}

// PublicConfig is the client-exposed part of the provider configuration.
type PublicConfig struct {
	PublicKey   string `json:"publicKey"`
	AssistantID string `json:"assistantId"`
}

// Validate checks both values by shape only.
func (c PublicConfig) Validate() error {
	key := strings.TrimSpace(c.PublicKey)
	if key == "" {
		return &ConfigurationError{Reason: "public key is not configured (set VAPI_PUBLIC_KEY)"}
	}
	if !wellFormed(key, publicKeyPrefixes) {
		return &ConfigurationError{Reason: "public key is malformed"}
	}

	id := strings.TrimSpace(c.AssistantID)
	if id == "" {
		return &ConfigurationError{Reason: "assistant id is not configured (set VAPI_ASSISTANT_ID)"}
	}
	if !hexLikeKey.MatchString(id) {
		return &ConfigurationError{Reason: "assistant id is malformed"}
	}
	return nil
}

func wellFormed(key string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(key, prefix) && len(key) > len(prefix) {
			return true
		}
	}
	return hexLikeKey.MatchString(key)
}
