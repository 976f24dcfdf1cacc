// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir points the user home directory at dir for the duration of the
// test (USERPROFILE on Windows, HOME elsewhere) and returns the restore
// function.
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	if runtime.GOOS == "windows" {
		return MustSetenv(t, "USERPROFILE", dir)
	}
	return MustSetenv(t, "HOME", dir)
}
