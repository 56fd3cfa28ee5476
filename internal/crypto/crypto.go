package crypto

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"filippo.io/age"
)

// Encrypted values are carried inline in YAML as ENC[<base64 age ciphertext>].
const (
	encPrefix = "ENC["
	encSuffix = "]"
)

// scrypt work factor for passphrase-derived keys.
const workFactor = 15

// IsEncrypted reports whether a string value carries the ENC[...] marker.
func IsEncrypted(value string) bool {
	return strings.HasPrefix(value, encPrefix) && strings.HasSuffix(value, encSuffix)
}

// Encrypt seals plaintext with the master key and returns an ENC[...] value
// suitable for embedding in a YAML file.
func Encrypt(plaintext, key string) (string, error) {
	recipient, err := age.NewScryptRecipient(key)
	if err != nil {
		return "", fmt.Errorf("invalid master key: %w", err)
	}
	recipient.SetWorkFactor(workFactor)

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return "", fmt.Errorf("encrypt failed: %w", err)
	}
	if _, err := io.WriteString(w, plaintext); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return encPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()) + encSuffix, nil
}

// Decrypt opens an ENC[...] value with the master key. Values without the
// marker are returned unchanged.
func Decrypt(value, key string) (string, error) {
	if !IsEncrypted(value) {
		return value, nil
	}

	raw, err := base64.StdEncoding.DecodeString(value[len(encPrefix) : len(value)-len(encSuffix)])
	if err != nil {
		return "", fmt.Errorf("malformed encrypted value: %w", err)
	}

	identity, err := age.NewScryptIdentity(key)
	if err != nil {
		return "", fmt.Errorf("invalid master key: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(raw), identity)
	if err != nil {
		return "", fmt.Errorf("decrypt failed: %w", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
