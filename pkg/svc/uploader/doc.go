// Package uploader implements idempotent, content-addressed file delivery
// onto managed nodes over the remote shell transport.
//
// Each upload runs a small state machine with three terminal states: Skipped
// (the remote digest sidecar matched the local content, nothing moved),
// Uploaded (bytes streamed and sidecar refreshed), or Failed. The
// destination path derives deterministically from the upload root, the
// remote username, and a hash of the logical target path, so distinct users
// never collide and repeated uploads of one logical path land in a single
// slot that is overwritten, never accumulated.
//
// The digest sidecar lives only on the managed node, colocated with the
// payload as "<name>.md5". A fetch-digest-then-upload sequence for one
// (user, target-path) is not protected against races: two concurrent uploads
// of the same logical target may both see "absent" and both upload, a rare
// and self-correcting inefficiency accepted instead of a distributed lock.
package uploader
