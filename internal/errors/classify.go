package errors

import (
	"syscall"
)

// Category tells the CLI how to present an error.
type Category int

const (
	CategoryUnknown  Category = iota // not classified
	CategoryUser                     // bad input the user can correct
	CategorySystem                   // storage or environment trouble
	CategoryInternal                 // a bug
)

var categoryNames = [...]string{
	CategoryUnknown:  "unknown",
	CategoryUser:     "user",
	CategorySystem:   "system",
	CategoryInternal: "internal",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return categoryNames[CategoryUnknown]
	}
	return categoryNames[c]
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// systemSentinels are storage and environment failures.
var systemSentinels = []error{
	ErrDiskFull,
	ErrCorruptData,
	ErrUnsupportedVersion,
	ErrLockHeld,
	ErrPermissionDenied,
}

// systemErrnos are OS errors that point at the environment.
var systemErrnos = []syscall.Errno{
	syscall.ENOSPC, syscall.EACCES, syscall.EPERM,
	syscall.ENOENT, syscall.EIO, syscall.EROFS,
}

// Classify determines the category of an error. Validation kinds count as
// user errors even when they arrive unwrapped.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryUnknown
	case IsUserError(err), KindOf(err) != KindNone:
		return CategoryUser
	case IsSystemError(err), isSystemLevel(err):
		return CategorySystem
	}
	return CategoryUnknown
}

func isSystemLevel(err error) bool {
	var errno syscall.Errno
	if As(err, &errno) {
		for _, e := range systemErrnos {
			if errno == e {
				return true
			}
		}
	}
	for _, s := range systemSentinels {
		if Is(err, s) {
			return true
		}
	}
	return false
}

// FormatByCategory renders err for the terminal: user errors get a "Try:"
// hint, system errors a "System error:" prefix.
func FormatByCategory(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	hint := GetSuggestion(err)

	switch Classify(err) {
	case CategoryUser:
		if hint != "" {
			hint = "\nTry: " + hint
		}
	case CategorySystem:
		msg = "System error: " + msg
	}
	if hint == "" {
		return msg
	}
	return msg + "\n" + hint
}
