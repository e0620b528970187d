package uploader

import (
	"crypto/md5" //nolint:gosec // Content fingerprint for idempotence, not a security boundary
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path"
)

// SidecarSuffix is appended to a destination path to name its digest sidecar.
const SidecarSuffix = ".md5"

// EncodeDigest encodes a content hash as URL-safe unpadded base64. The same
// encoding is used for sidecar contents and derived filenames, keeping every
// derived name filesystem-safe.
func EncodeDigest(sum []byte) string {
	return base64.RawURLEncoding.EncodeToString(sum)
}

// Blobname derives the destination filename for a logical target path by
// hashing the path string. Arbitrary paths collapse into stable,
// collision-resistant, filesystem-safe slots.
func Blobname(targetPath string) string {
	sum := md5.Sum([]byte(targetPath)) //nolint:gosec // Content fingerprint, not a security boundary

	return EncodeDigest(sum[:])
}

// UploadPath derives the destination an upload of targetPath for user lands
// at under root. The derivation is pure and identical for the writer and any
// later reader, which is what keeps users isolated from each other. A
// leading home marker in root is kept in the returned path; the transport
// resolves it against the remote user's home.
func UploadPath(root string, user string, targetPath string) string {
	return path.Join(root, user, Blobname(targetPath))
}

// SidecarPath names the digest sidecar for a destination path.
func SidecarPath(destination string) string {
	return destination + SidecarSuffix
}

// FileDigest computes the encoded content digest of a local file by
// streaming it; the file is never loaded whole into memory.
func FileDigest(localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer func() { _ = file.Close() }()

	hash := md5.New() //nolint:gosec // Content fingerprint, not a security boundary

	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("digest %s: %w", localPath, err)
	}

	return EncodeDigest(hash.Sum(nil)), nil
}
