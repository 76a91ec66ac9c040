package tfs

import "golang.org/x/sys/unix"

// OpenFlag is the bitwise-OR'able flag type accepted by Open.
type OpenFlag uint32

const (
	// Creat creates the file if it does not already exist.
	Creat OpenFlag = 1 << iota
	// Trunc truncates the file to zero length on open.
	Trunc
	// Append sets the initial open-file offset to the file's current size.
	Append
)

func (f OpenFlag) has(bit OpenFlag) bool { return f&bit != 0 }

// FlagsFromPosix translates real POSIX open(2) flag bits, as exposed
// by golang.org/x/sys/unix, into TFS's own OpenFlag bits. TFS does not
// use the OS values internally — the original C header predates this
// translation and defines its own TFS_O_* constants — but tooling that
// already speaks POSIX flags can hand TFS real O_CREAT/O_TRUNC/O_APPEND
// values without the caller needing to know TFS's internal bit
// assignment. cmd/tfsctl's script runner does not use it: its scripts
// spell flags as the words creat, trunc and append.
func FlagsFromPosix(posix int) OpenFlag {
	var f OpenFlag
	if posix&unix.O_CREAT != 0 {
		f |= Creat
	}
	if posix&unix.O_TRUNC != 0 {
		f |= Trunc
	}
	if posix&unix.O_APPEND != 0 {
		f |= Append
	}
	return f
}
