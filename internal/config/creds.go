package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mailsnap/mailsnap/internal/core"
	"github.com/mailsnap/mailsnap/internal/crypto"
)

// PushoverCredentials is the structure of the optional credentials file:
// a top-level user key plus the per-application token in a nested section.
//
//	user_key: uQiRzpo4DXghDmr9QzzfQu27cmVRsG
//	MailBackup:
//	  token: azGDORePK8gMaC0QOYAMyEEuzJnyUi
//
// Either value may be stored as ENC[...] and is decrypted on load.
type PushoverCredentials struct {
	UserKey    string `yaml:"user_key"`
	MailBackup struct {
		Token string `yaml:"token"`
	} `yaml:"MailBackup"`
}

// LoadPushoverCredentials reads and validates the credentials file. Any
// problem with the file is a configuration error: the run must abort before
// the mail service is touched.
func LoadPushoverCredentials(path string) (*PushoverCredentials, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, core.ConfigurationErr("pushover credentials file %s does not exist", path)
	}
	if err != nil {
		return nil, core.ConfigurationErr("cannot read pushover credentials file %s: %v", path, err)
	}

	var creds PushoverCredentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, core.ConfigurationErr("malformed credentials: %v", err)
	}

	if err := decryptCreds(&creds); err != nil {
		return nil, err
	}

	if creds.UserKey == "" || creds.MailBackup.Token == "" {
		return nil, core.ConfigurationErr("malformed credentials: user_key and MailBackup.token are required")
	}
	return &creds, nil
}

func decryptCreds(creds *PushoverCredentials) error {
	if !crypto.IsEncrypted(creds.UserKey) && !crypto.IsEncrypted(creds.MailBackup.Token) {
		return nil
	}

	key := MasterKey()
	if key == "" {
		return core.ConfigurationErr("encrypted credentials found but no master key available")
	}

	userKey, err := crypto.Decrypt(creds.UserKey, key)
	if err != nil {
		return core.ConfigurationErr("cannot decrypt user_key: %v", err)
	}
	token, err := crypto.Decrypt(creds.MailBackup.Token, key)
	if err != nil {
		return core.ConfigurationErr("cannot decrypt MailBackup.token: %v", err)
	}

	creds.UserKey = userKey
	creds.MailBackup.Token = token
	return nil
}
