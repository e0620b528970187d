// Package sshtransport provides the default SSH-backed implementation of the
// transport collaborator: remote execution over SSH sessions and file
// transfer over SFTP.
package sshtransport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/forklift-io/forklift/pkg/client/transport"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// DefaultPort is the SSH port used when an endpoint leaves Port zero.
const DefaultPort = 22

// DefaultDialTimeout bounds connection establishment.
const DefaultDialTimeout = 30 * time.Second

// ErrNotSSHConnection is returned when a connection from another factory is
// passed to the SSH transport.
var ErrNotSSHConnection = errors.New("connection is not an SSH connection")

// ErrNoAuthMethod is returned when an endpoint carries neither a private key
// nor a password.
var ErrNoAuthMethod = errors.New("endpoint has no authentication method")

// Connection is an established SSH session pair: one SSH client for
// execution, one SFTP client for transfer. It is created by Factory.Connect
// and closed by the caller after a single call's work.
type Connection struct {
	client *ssh.Client
	sftp   *sftp.Client
}

// Close releases the SFTP and SSH clients.
func (conn *Connection) Close() error {
	sftpErr := conn.sftp.Close()

	sshErr := conn.client.Close()
	if sshErr != nil {
		return fmt.Errorf("close ssh client: %w", sshErr)
	}

	if sftpErr != nil {
		return fmt.Errorf("close sftp client: %w", sftpErr)
	}

	return nil
}

// Factory dials SSH connections to managed nodes.
type Factory struct {
	// HostKeyCallback verifies host keys. Nil accepts any host key, which
	// matches the bootstrap situation where freshly provisioned nodes are
	// not yet in any known-hosts file.
	HostKeyCallback ssh.HostKeyCallback

	// DialTimeout bounds connection establishment; zero means
	// DefaultDialTimeout.
	DialTimeout time.Duration
}

// NewFactory creates a Factory with default settings.
func NewFactory() *Factory {
	return &Factory{}
}

// Connect dials the endpoint and opens the session pair.
func (factory *Factory) Connect(
	ctx context.Context,
	endpoint transport.Endpoint,
) (transport.Connection, error) {
	config, err := clientConfig(endpoint, factory.HostKeyCallback)
	if err != nil {
		return nil, err
	}

	port := endpoint.Port
	if port == 0 {
		port = DefaultPort
	}

	timeout := factory.DialTimeout
	if timeout == 0 {
		timeout = DefaultDialTimeout
	}

	address := net.JoinHostPort(endpoint.Host, strconv.Itoa(port))

	dialer := net.Dialer{Timeout: timeout}

	netConn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", transport.ErrTransport, address, err)
	}

	sshConn, channels, requests, err := ssh.NewClientConn(netConn, address, config)
	if err != nil {
		_ = netConn.Close()

		return nil, fmt.Errorf("%w: ssh handshake with %s: %w", transport.ErrTransport, address, err)
	}

	client := ssh.NewClient(sshConn, channels, requests)

	sftpClient, err := sftp.NewClient(client)
	if err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("%w: open sftp subsystem: %w", transport.ErrTransport, err)
	}

	return &Connection{client: client, sftp: sftpClient}, nil
}

// Client implements transport.Transport over connections dialed by Factory.
type Client struct{}

// NewClient creates a Client.
func NewClient() *Client {
	return &Client{}
}

// Exec runs script in a fresh SSH session and captures its exit code and
// output. A non-zero remote exit is not an error; it is reported through
// ExecResult.ExitCode.
func (transportClient *Client) Exec(
	ctx context.Context,
	conn transport.Connection,
	script string,
) (transport.ExecResult, error) {
	sshConn, err := sshConnection(conn)
	if err != nil {
		return transport.ExecResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return transport.ExecResult{}, fmt.Errorf("%w: %w", transport.ErrTransport, err)
	}

	session, err := sshConn.client.NewSession()
	if err != nil {
		return transport.ExecResult{}, fmt.Errorf("%w: open session: %w", transport.ErrTransport, err)
	}
	defer func() { _ = session.Close() }()

	var stdout, stderr bytes.Buffer

	session.Stdout = &stdout
	session.Stderr = &stderr

	runErr := session.Run(script)

	result := transport.ExecResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if runErr != nil {
		var exitErr *ssh.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitStatus()

			return result, nil
		}

		return result, fmt.Errorf("%w: run script: %w", transport.ErrTransport, runErr)
	}

	return result, nil
}

// SendStream streams reader's bytes to remotePath over SFTP, creating the
// file with opts.Mode.
func (transportClient *Client) SendStream(
	ctx context.Context,
	conn transport.Connection,
	reader io.Reader,
	remotePath string,
	opts transport.SendOptions,
) error {
	sshConn, err := sshConnection(conn)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", transport.ErrTransport, err)
	}

	path := remoteRelative(remotePath)

	file, err := sshConn.sftp.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", transport.ErrTransport, path, err)
	}

	_, copyErr := io.Copy(file, reader)

	closeErr := file.Close()

	if copyErr != nil {
		return fmt.Errorf("%w: stream to %s: %w", transport.ErrTransport, path, copyErr)
	}

	if closeErr != nil {
		return fmt.Errorf("%w: close %s: %w", transport.ErrTransport, path, closeErr)
	}

	if err := sshConn.sftp.Chmod(path, opts.Mode); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", transport.ErrTransport, path, err)
	}

	return nil
}

// SendText writes text to remotePath over SFTP, creating the file with
// opts.Mode.
func (transportClient *Client) SendText(
	ctx context.Context,
	conn transport.Connection,
	text string,
	remotePath string,
	opts transport.SendOptions,
) error {
	return transportClient.SendStream(ctx, conn, strings.NewReader(text), remotePath, opts)
}

// Receive copies remotePath from the node into localPath.
func (transportClient *Client) Receive(
	ctx context.Context,
	conn transport.Connection,
	remotePath string,
	localPath string,
) error {
	sshConn, err := sshConnection(conn)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", transport.ErrTransport, err)
	}

	path := remoteRelative(remotePath)

	remote, err := sshConn.sftp.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open remote %s: %w", transport.ErrTransport, path, err)
	}
	defer func() { _ = remote.Close() }()

	local, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("%w: create local %s: %w", transport.ErrTransport, localPath, err)
	}

	_, copyErr := io.Copy(local, remote)

	closeErr := local.Close()

	if copyErr != nil {
		return fmt.Errorf("%w: receive %s: %w", transport.ErrTransport, path, copyErr)
	}

	if closeErr != nil {
		return fmt.Errorf("%w: close local %s: %w", transport.ErrTransport, localPath, closeErr)
	}

	return nil
}

// remoteRelative maps a home-marker path onto SFTP's native home-relative
// form: "~/x" becomes "x", which the server resolves against the user's home.
func remoteRelative(path string) string {
	if path == "~" {
		return "."
	}

	if after, ok := strings.CutPrefix(path, "~/"); ok {
		return after
	}

	return path
}

func clientConfig(
	endpoint transport.Endpoint,
	hostKeyCallback ssh.HostKeyCallback,
) (*ssh.ClientConfig, error) {
	var methods []ssh.AuthMethod

	if len(endpoint.PrivateKey) > 0 {
		signer, err := ssh.ParsePrivateKey(endpoint.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}

		methods = append(methods, ssh.PublicKeys(signer))
	}

	if endpoint.Password != "" {
		methods = append(methods, ssh.Password(endpoint.Password))
	}

	if len(methods) == 0 {
		return nil, ErrNoAuthMethod
	}

	if hostKeyCallback == nil {
		hostKeyCallback = ssh.InsecureIgnoreHostKey() //nolint:gosec // Fresh nodes are not in known-hosts yet
	}

	return &ssh.ClientConfig{
		User:            endpoint.User,
		Auth:            methods,
		HostKeyCallback: hostKeyCallback,
	}, nil
}

func sshConnection(conn transport.Connection) (*Connection, error) {
	sshConn, ok := conn.(*Connection)
	if !ok {
		return nil, fmt.Errorf("%w (got %T)", ErrNotSSHConnection, conn)
	}

	return sshConn, nil
}
