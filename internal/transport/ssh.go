package transport

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/mailsnap/mailsnap/internal/config"
	"github.com/mailsnap/mailsnap/internal/core"
)

// SSHTransport holds one client connection to the rsync target. The backup
// itself goes through rsync --rsh=ssh; this connection only exists for the
// preflight, so the mail service is never stopped for an unreachable target.
type SSHTransport struct {
	client *ssh.Client
	host   config.RemoteHost
}

func NewSSHTransport(host config.RemoteHost) (*SSHTransport, error) {
	var authMethods []ssh.AuthMethod

	if host.SSHKeyPath != "" {
		key, err := os.ReadFile(host.SSHKeyPath)
		if err != nil {
			return nil, fmt.Errorf("cannot read ssh key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("cannot parse ssh key: %w", err)
		}
		authMethods = append(authMethods, ssh.PublicKeys(signer))
	} else if host.Password != "" {
		authMethods = append(authMethods, ssh.Password(host.Password))
	} else {
		return nil, fmt.Errorf("remote %s: no ssh_key_path or password configured", host.Address)
	}

	port := host.Port
	if port == 0 {
		port = 22
	}

	sshConfig := &ssh.ClientConfig{
		User:            host.User,
		Auth:            authMethods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // Note: known_hosts verification is recommended in production
		Timeout:         10 * time.Second,
	}

	addr := fmt.Sprintf("%s:%d", host.Address, port)
	client, err := ssh.Dial("tcp", addr, sshConfig)
	if err != nil {
		return nil, fmt.Errorf("ssh connection failed (%s): %w", addr, err)
	}

	return &SSHTransport{client: client, host: host}, nil
}

func (t *SSHTransport) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

// Execute runs a command on the remote host and returns its combined output.
func (t *SSHTransport) Execute(ctx context.Context, cmd string) (string, error) {
	session, err := t.client.NewSession()
	if err != nil {
		return "", err
	}
	defer session.Close()

	out, err := session.CombinedOutput(cmd)
	return string(out), err
}

// CheckRemote verifies the rsync target is reachable over ssh and has a
// usable rsync before any destructive step runs.
func CheckRemote(ctx context.Context, host config.RemoteHost) error {
	t, err := NewSSHTransport(host)
	if err != nil {
		return core.EnvironmentErr("remote preflight failed: %v", err)
	}
	defer t.Close()

	out, err := t.Execute(ctx, "rsync --version")
	if err != nil {
		return core.EnvironmentErr("remote rsync check failed on %s: %v", host.Address, err)
	}
	if !strings.Contains(out, "protocol version") {
		return core.EnvironmentErr("remote rsync on %s did not report a protocol version: %s", host.Address, strings.TrimSpace(out))
	}
	return nil
}
