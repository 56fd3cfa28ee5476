package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
)

// MasterKey resolves the key used to open ENC[...] values.
// Order: MAILSNAP_MASTER_KEY env var, ~/.mailsnap/master.key, interactive
// prompt (only when stdin is a terminal). Empty string means no key.
func MasterKey() string {
	if key := os.Getenv("MAILSNAP_MASTER_KEY"); key != "" {
		return key
	}

	home, err := os.UserHomeDir()
	if err == nil {
		keyPath := filepath.Join(home, ".mailsnap", "master.key")
		if content, err := os.ReadFile(keyPath); err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if isInteractive() {
		pterm.Println()
		pterm.Warning.Println("Encrypted content detected but MAILSNAP_MASTER_KEY not found.")
		key, err := pterm.DefaultInteractiveTextInput.
			WithMask("*").
			WithDefaultText("Enter Master Key for decryption").
			Show()
		if err == nil && key != "" {
			return key
		}
	}

	return ""
}

func isInteractive() bool {
	fileInfo, _ := os.Stdin.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
