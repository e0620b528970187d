// Package script builds small portable POSIX shell fragments.
//
// The fragments are consumed opaquely by callers such as the uploader: build
// one, hand it to the transport's Exec, inspect the exit code. Nothing here
// parses or templates shell; each builder emits a single self-contained
// fragment with its arguments quoted.
package script

import (
	"fmt"
	"strings"
)

// Quote single-quotes a string for safe interpolation into a shell fragment.
func Quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

// MkdirP creates path and any missing parents with the given mode.
func MkdirP(path string, mode uint32) string {
	return fmt.Sprintf("mkdir -m %04o -p %s", mode, Quote(path))
}

// Chmod sets path's mode.
func Chmod(path string, mode uint32) string {
	return fmt.Sprintf("chmod %04o %s", mode, Quote(path))
}

// Chown sets path's owner.
func Chown(path string, owner string) string {
	return fmt.Sprintf("chown %s %s", Quote(owner), Quote(path))
}

// Chgrp sets path's group.
func Chgrp(path string, group string) string {
	return fmt.Sprintf("chgrp %s %s", Quote(group), Quote(path))
}

// Dirname expands to the parent directory of path.
func Dirname(path string) string {
	return fmt.Sprintf("$(dirname %s)", Quote(path))
}

// UserHome expands to the home directory of user, or of the current user when
// user is empty.
func UserHome(user string) string {
	if user == "" {
		return `"${HOME}"`
	}

	return fmt.Sprintf(`"$(getent passwd %s | cut -d: -f6)"`, Quote(user))
}

// MkdirPExpanded is MkdirP for a path that may carry a leading home marker:
// the marker is resolved through the remote user's home at execution time.
func MkdirPExpanded(path string, user string, mode uint32) string {
	return fmt.Sprintf("mkdir -m %04o -p %s", mode, ExpandHome(path, user))
}

// CaptureExit appends an exit-code echo to a fragment so callers that can
// only read output still observe the status.
func CaptureExit(fragment string) string {
	return fragment + `; echo "exit: $?"`
}

// ExpandHome rewrites a leading home marker in path into a shell expansion of
// the remote user's home. Paths without the marker come back quoted but
// otherwise untouched.
func ExpandHome(path string, user string) string {
	if path == "~" {
		return UserHome(user)
	}

	if after, ok := strings.CutPrefix(path, "~/"); ok {
		return UserHome(user) + "/" + Quote(after)
	}

	return Quote(path)
}
