// SPDX-License-Identifier: MPL-2.0

//go:build !linux

package sandbox

import "os"

// executableFile reports whether path is a regular file with an execute bit
// set. Access(2) semantics are not portable off Linux.
func executableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}
