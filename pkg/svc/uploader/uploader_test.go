package uploader_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forklift-io/forklift/pkg/client/transport"
	"github.com/forklift-io/forklift/pkg/svc/compute"
	"github.com/forklift-io/forklift/pkg/svc/uploader"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errSidecarMissing = errors.New("no such file")

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return logger
}

func writeLocalFile(t *testing.T, content string) string {
	t.Helper()

	localPath := filepath.Join(t.TempDir(), "payload")
	require.NoError(t, os.WriteFile(localPath, []byte(content), 0o600))

	return localPath
}

func uploadTarget(localPath string) uploader.UploadTarget {
	return uploader.UploadTarget{
		Node: compute.Node{
			Name:        "web-1",
			PublicAddrs: []string{"203.0.113.10"},
		},
		LocalPath:  localPath,
		TargetPath: "/etc/nginx/nginx.conf",
		Options:    uploader.ActionOptions{User: "alice", Password: "hunter2"},
	}
}

func newUploaderWithMocks(
	factory *transport.MockConnectionFactory,
	mockTransport *transport.MockTransport,
) *uploader.SFTPUploader {
	return uploader.NewSFTPUploader(uploader.Options{
		ConnectionFactory: factory,
		Transport:         mockTransport,
		Logger:            quietLogger(),
	})
}

func TestUpload_AbsentSidecarUploadsPayloadAndSidecar(t *testing.T) {
	t.Parallel()

	localPath := writeLocalFile(t, "content v1")
	target := uploadTarget(localPath)

	destination := uploader.UploadPath(uploader.DefaultUploadRoot, "alice", target.TargetPath)
	sidecar := uploader.SidecarPath(destination)

	conn := transport.NewMockConnection()
	conn.On("Close").Return(nil)

	factory := transport.NewMockConnectionFactory()
	factory.On("Connect", mock.Anything, transport.Endpoint{
		Host:     "203.0.113.10",
		User:     "alice",
		Password: "hunter2",
	}).Return(conn, nil)

	mockTransport := transport.NewMockTransport()
	mockTransport.On("Receive", mock.Anything, conn, sidecar, mock.Anything).
		Return(errSidecarMissing)
	mockTransport.On("Exec", mock.Anything, conn, mock.MatchedBy(func(fragment string) bool {
		return strings.Contains(fragment, "mkdir") && strings.Contains(fragment, "0700")
	})).Return(transport.ExecResult{ExitCode: 0}, nil)
	mockTransport.On("SendStream", mock.Anything, conn, mock.Anything, destination,
		transport.SendOptions{Mode: uploader.FileMode}).Return(nil)
	mockTransport.On("SendText", mock.Anything, conn, mock.Anything, sidecar,
		transport.SendOptions{Mode: uploader.FileMode}).Return(nil)

	strategy := newUploaderWithMocks(factory, mockTransport)

	result := strategy.Upload(t.Context(), target)

	require.NoError(t, result.Err)
	assert.Equal(t, uploader.StatusUploaded, result.Status)
	assert.NotEmpty(t, result.Digest)

	expectedDigest, err := uploader.FileDigest(localPath)
	require.NoError(t, err)
	assert.Equal(t, expectedDigest, result.Digest)

	mockTransport.AssertExpectations(t)
	conn.AssertExpectations(t)
}

func TestUpload_MatchingDigestSkipsWithoutMovingData(t *testing.T) {
	t.Parallel()

	localPath := writeLocalFile(t, "content v1")
	target := uploadTarget(localPath)

	expectedDigest, err := uploader.FileDigest(localPath)
	require.NoError(t, err)

	conn := transport.NewMockConnection()
	conn.On("Close").Return(nil)

	factory := transport.NewMockConnectionFactory()
	factory.On("Connect", mock.Anything, mock.Anything).Return(conn, nil)

	mockTransport := transport.NewMockTransport()
	mockTransport.On("Receive", mock.Anything, conn, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			// The remote sidecar already holds the current digest.
			require.NoError(t,
				os.WriteFile(args.String(3), []byte(expectedDigest+"\n"), 0o600))
		}).
		Return(nil)

	strategy := newUploaderWithMocks(factory, mockTransport)

	result := strategy.Upload(t.Context(), target)

	require.NoError(t, result.Err)
	assert.Equal(t, uploader.StatusSkipped, result.Status)
	assert.Equal(t, expectedDigest, result.Digest)

	mockTransport.AssertNotCalled(t, "Exec", mock.Anything, mock.Anything, mock.Anything)
	mockTransport.AssertNotCalled(
		t, "SendStream",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
	)
	mockTransport.AssertNotCalled(
		t, "SendText",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
	)
}

func TestUpload_ChangedContentUploadsAgain(t *testing.T) {
	t.Parallel()

	localPath := writeLocalFile(t, "content v2")
	target := uploadTarget(localPath)

	staleDigest := uploader.Blobname("content v1")

	conn := transport.NewMockConnection()
	conn.On("Close").Return(nil)

	factory := transport.NewMockConnectionFactory()
	factory.On("Connect", mock.Anything, mock.Anything).Return(conn, nil)

	mockTransport := transport.NewMockTransport()
	mockTransport.On("Receive", mock.Anything, conn, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			require.NoError(t, os.WriteFile(args.String(3), []byte(staleDigest), 0o600))
		}).
		Return(nil)
	mockTransport.On("Exec", mock.Anything, conn, mock.Anything).
		Return(transport.ExecResult{ExitCode: 0}, nil)
	mockTransport.On("SendStream",
		mock.Anything, conn, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockTransport.On("SendText",
		mock.Anything, conn, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	strategy := newUploaderWithMocks(factory, mockTransport)

	result := strategy.Upload(t.Context(), target)

	require.NoError(t, result.Err)
	assert.Equal(t, uploader.StatusUploaded, result.Status)
}

func TestUpload_DirectoryCreationFailureAbortsBeforeTransfer(t *testing.T) {
	t.Parallel()

	localPath := writeLocalFile(t, "content")
	target := uploadTarget(localPath)

	conn := transport.NewMockConnection()
	conn.On("Close").Return(nil)

	factory := transport.NewMockConnectionFactory()
	factory.On("Connect", mock.Anything, mock.Anything).Return(conn, nil)

	mockTransport := transport.NewMockTransport()
	mockTransport.On("Receive", mock.Anything, conn, mock.Anything, mock.Anything).
		Return(errSidecarMissing)
	mockTransport.On("Exec", mock.Anything, conn, mock.Anything).
		Return(transport.ExecResult{ExitCode: 1, Stderr: "mkdir: permission denied"}, nil)

	strategy := newUploaderWithMocks(factory, mockTransport)

	result := strategy.Upload(t.Context(), target)

	require.Error(t, result.Err)
	require.ErrorIs(t, result.Err, uploader.ErrUploadFailed)
	assert.Equal(t, uploader.StatusFailed, result.Status)

	var uploadFailed *uploader.UploadFailedError

	require.ErrorAs(t, result.Err, &uploadFailed)
	assert.Equal(t, 1, uploadFailed.ExitCode)
	assert.Contains(t, uploadFailed.Output, "permission denied")

	mockTransport.AssertNotCalled(
		t, "SendStream",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
	)
}

func TestUpload_SidecarWriteFailureIsFatal(t *testing.T) {
	t.Parallel()

	localPath := writeLocalFile(t, "content")
	target := uploadTarget(localPath)

	conn := transport.NewMockConnection()
	conn.On("Close").Return(nil)

	factory := transport.NewMockConnectionFactory()
	factory.On("Connect", mock.Anything, mock.Anything).Return(conn, nil)

	mockTransport := transport.NewMockTransport()
	mockTransport.On("Receive", mock.Anything, conn, mock.Anything, mock.Anything).
		Return(errSidecarMissing)
	mockTransport.On("Exec", mock.Anything, conn, mock.Anything).
		Return(transport.ExecResult{ExitCode: 0}, nil)
	mockTransport.On("SendStream",
		mock.Anything, conn, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockTransport.On("SendText",
		mock.Anything, conn, mock.Anything, mock.Anything, mock.Anything).
		Return(transport.ErrTransport)

	strategy := newUploaderWithMocks(factory, mockTransport)

	result := strategy.Upload(t.Context(), target)

	require.Error(t, result.Err)
	assert.Equal(t, uploader.StatusFailed, result.Status)
	require.ErrorIs(t, result.Err, transport.ErrTransport)
}

func TestUpload_ConnectFailureFails(t *testing.T) {
	t.Parallel()

	localPath := writeLocalFile(t, "content")
	target := uploadTarget(localPath)

	factory := transport.NewMockConnectionFactory()
	factory.On("Connect", mock.Anything, mock.Anything).Return(nil, transport.ErrTransport)

	strategy := newUploaderWithMocks(factory, transport.NewMockTransport())

	result := strategy.Upload(t.Context(), target)

	require.Error(t, result.Err)
	assert.Equal(t, uploader.StatusFailed, result.Status)
	require.ErrorIs(t, result.Err, transport.ErrTransport)
}

func TestNew_UnknownStrategyFails(t *testing.T) {
	t.Parallel()

	_, err := uploader.New("rsync", uploader.Options{})
	require.Error(t, err)
	require.ErrorIs(t, err, uploader.ErrUnknownStrategy)
}

func TestNew_SFTPStrategyIsRegistered(t *testing.T) {
	t.Parallel()

	strategy, err := uploader.New(uploader.StrategySFTP, uploader.Options{
		ConnectionFactory: transport.NewMockConnectionFactory(),
		Transport:         transport.NewMockTransport(),
		Logger:            quietLogger(),
	})
	require.NoError(t, err)
	assert.IsType(t, &uploader.SFTPUploader{}, strategy)
}

func TestRegister_CustomStrategyIsResolvable(t *testing.T) {
	t.Parallel()

	uploader.Register("noop-test", func(_ uploader.Options) (uploader.Uploader, error) {
		return noopUploader{}, nil
	})

	strategy, err := uploader.New("noop-test", uploader.Options{})
	require.NoError(t, err)
	assert.IsType(t, noopUploader{}, strategy)
}

func TestUploadAll_ResultsKeepTargetOrder(t *testing.T) {
	t.Parallel()

	targets := []uploader.UploadTarget{
		{TargetPath: "/etc/a.conf", Options: uploader.ActionOptions{User: "alice"}},
		{TargetPath: "/etc/b.conf", Options: uploader.ActionOptions{User: "alice"}},
		{TargetPath: "/etc/c.conf", Options: uploader.ActionOptions{User: "bob"}},
	}

	results := uploader.UploadAll(t.Context(), echoUploader{}, 2, targets...)

	require.Len(t, results, len(targets))

	for i, result := range results {
		assert.Equal(t, targets[i], result.Target)
		assert.Equal(t, uploader.StatusUploaded, result.Status)
	}
}

func TestUploadAll_NoTargetsYieldsEmptyResults(t *testing.T) {
	t.Parallel()

	results := uploader.UploadAll(t.Context(), echoUploader{}, 0)

	assert.Empty(t, results)
}

type noopUploader struct{}

func (noopUploader) Upload(_ context.Context, target uploader.UploadTarget) uploader.Result {
	return uploader.Result{Target: target, Status: uploader.StatusSkipped}
}

type echoUploader struct{}

func (echoUploader) Upload(_ context.Context, target uploader.UploadTarget) uploader.Result {
	return uploader.Result{Target: target, Status: uploader.StatusUploaded}
}
