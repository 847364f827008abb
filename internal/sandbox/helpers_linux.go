// SPDX-License-Identifier: MPL-2.0

package sandbox

import "golang.org/x/sys/unix"

// executableFile reports whether the invoking user may execute path.
func executableFile(path string) bool {
	return unix.Access(path, unix.X_OK) == nil
}
