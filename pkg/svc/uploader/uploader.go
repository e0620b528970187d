package uploader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/forklift-io/forklift/pkg/client/transport"
	"github.com/forklift-io/forklift/pkg/script"
	"github.com/forklift-io/forklift/pkg/svc/compute"
	"github.com/sirupsen/logrus"
)

// Status is the terminal state of one upload.
type Status string

// Terminal upload states.
const (
	StatusSkipped  Status = "skipped"
	StatusUploaded Status = "uploaded"
	StatusFailed   Status = "failed"
)

// File modes used on the managed node.
const (
	// DirMode protects the per-user upload directory.
	DirMode = 0o700
	// FileMode protects the payload and its sidecar.
	FileMode fs.FileMode = 0o600
)

// ActionOptions carries the remote user identity an upload runs as. The user
// is used both for destination-path derivation and for authentication.
type ActionOptions struct {
	// User is the remote username.
	User string

	// Password authenticates when set; PrivateKey is preferred when both
	// are present.
	Password   string
	PrivateKey []byte

	// Port overrides the transport's default port when non-zero.
	Port int
}

// UploadTarget is one file delivery: a local file bound for a logical target
// path on a node, as a given remote user.
type UploadTarget struct {
	Node       compute.Node
	LocalPath  string
	TargetPath string
	Options    ActionOptions
}

// Result is the terminal outcome of one upload.
type Result struct {
	Target UploadTarget

	// Status is the terminal state the upload reached.
	Status Status

	// Digest is the encoded content digest of the local file, when it was
	// computed.
	Digest string

	// Err is populated when Status is StatusFailed.
	Err error
}

// Uploader is an upload strategy: one way of delivering files onto nodes.
// Strategies are registered by keyword; see Register and New.
type Uploader interface {
	// Upload runs the delivery state machine for one target and returns
	// its terminal result. Failures are reported in the result, not as a
	// second return.
	Upload(ctx context.Context, target UploadTarget) Result
}

// SFTPUploader delivers files over the SSH/SFTP transport. Connections are
// dialed per upload and closed before Upload returns.
type SFTPUploader struct {
	root      string
	factory   transport.ConnectionFactory
	transport transport.Transport
	logger    *logrus.Logger
}

// NewSFTPUploader creates an SFTPUploader from options, applying the
// defaults described on Options.
func NewSFTPUploader(options Options) *SFTPUploader {
	options = options.withDefaults()

	return &SFTPUploader{
		root:      options.UploadRoot,
		factory:   options.ConnectionFactory,
		transport: options.Transport,
		logger:    options.Logger,
	}
}

// Upload runs the per-target state machine: derive the destination, compare
// digests, and move bytes only when they differ.
func (uploader *SFTPUploader) Upload(ctx context.Context, target UploadTarget) Result {
	destination := UploadPath(uploader.root, target.Options.User, target.TargetPath)
	sidecar := SidecarPath(destination)

	log := uploader.logger.WithFields(logrus.Fields{
		"node":        target.Node.Name,
		"user":        target.Options.User,
		"target":      target.TargetPath,
		"destination": destination,
	})

	conn, err := uploader.factory.Connect(ctx, endpointFor(target))
	if err != nil {
		return failed(target, "", fmt.Errorf("connect to %s: %w", target.Node.Name, err))
	}
	defer func() { _ = conn.Close() }()

	remoteDigest := uploader.fetchRemoteDigest(ctx, conn, sidecar, log)

	localDigest, err := FileDigest(target.LocalPath)
	if err != nil {
		return failed(target, "", err)
	}

	if remoteDigest == localDigest {
		log.WithField("digest", localDigest).Debug("remote digest matches, skipping upload")

		return Result{Target: target, Status: StatusSkipped, Digest: localDigest}
	}

	if err := uploader.ensureDirectory(ctx, conn, path.Dir(destination), target.Options.User); err != nil {
		return failed(target, localDigest, err)
	}

	if err := uploader.streamPayload(ctx, conn, target.LocalPath, destination); err != nil {
		return failed(target, localDigest, err)
	}

	// A lost sidecar would silently force every subsequent call to
	// re-upload, so a failed sidecar write is surfaced as fatal rather
	// than swallowed as an optimization miss.
	err = uploader.transport.SendText(ctx, conn, localDigest, sidecar,
		transport.SendOptions{Mode: FileMode})
	if err != nil {
		return failed(target, localDigest, fmt.Errorf("write digest sidecar: %w", err))
	}

	log.WithField("digest", localDigest).Debug("uploaded payload and sidecar")

	return Result{Target: target, Status: StatusUploaded, Digest: localDigest}
}

// fetchRemoteDigest reads the digest sidecar at sidecarPath. Every failure,
// a missing file just like a transport error, is collapsed into "absent",
// forcing a fresh upload. True absence is conflated with a transient fault:
// a flaky link costs a spurious re-upload, never a wrong skip.
func (uploader *SFTPUploader) fetchRemoteDigest(
	ctx context.Context,
	conn transport.Connection,
	sidecarPath string,
	log *logrus.Entry,
) string {
	local, err := os.CreateTemp("", "forklift-digest-*")
	if err != nil {
		log.WithError(err).Debug("digest fetch failed, treating as absent")

		return ""
	}

	localPath := local.Name()

	_ = local.Close()
	defer func() { _ = os.Remove(localPath) }()

	if err := uploader.transport.Receive(ctx, conn, sidecarPath, localPath); err != nil {
		log.WithError(err).Debug("digest fetch failed, treating as absent")

		return ""
	}

	content, err := os.ReadFile(localPath)
	if err != nil {
		log.WithError(err).Debug("digest fetch failed, treating as absent")

		return ""
	}

	return strings.TrimSpace(string(content))
}

// ensureDirectory creates the destination directory with mode 0700,
// including parents. A non-zero remote exit is fatal and no transfer is
// attempted after it.
func (uploader *SFTPUploader) ensureDirectory(
	ctx context.Context,
	conn transport.Connection,
	directory string,
	user string,
) error {
	fragment := script.MkdirPExpanded(directory, user, DirMode)

	result, err := uploader.transport.Exec(ctx, conn, fragment)
	if err != nil {
		return fmt.Errorf("create directory %s: %w", directory, err)
	}

	if result.ExitCode != 0 {
		return &UploadFailedError{
			ExitCode: result.ExitCode,
			Output:   strings.TrimSpace(result.Stdout + result.Stderr),
		}
	}

	return nil
}

func (uploader *SFTPUploader) streamPayload(
	ctx context.Context,
	conn transport.Connection,
	localPath string,
	destination string,
) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer func() { _ = file.Close() }()

	err = uploader.transport.SendStream(ctx, conn, file, destination,
		transport.SendOptions{Mode: FileMode})
	if err != nil {
		return fmt.Errorf("stream payload to %s: %w", destination, err)
	}

	return nil
}

func endpointFor(target UploadTarget) transport.Endpoint {
	host := target.Node.Name

	if len(target.Node.PublicAddrs) > 0 {
		host = target.Node.PublicAddrs[0]
	} else if len(target.Node.PrivateAddrs) > 0 {
		host = target.Node.PrivateAddrs[0]
	}

	return transport.Endpoint{
		Host:       host,
		Port:       target.Options.Port,
		User:       target.Options.User,
		Password:   target.Options.Password,
		PrivateKey: target.Options.PrivateKey,
	}
}

func failed(target UploadTarget, digest string, err error) Result {
	return Result{
		Target: target,
		Status: StatusFailed,
		Digest: digest,
		Err:    fmt.Errorf("%w: %w", ErrUploadFailed, err),
	}
}
