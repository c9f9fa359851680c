// Package platform identifies the AppImage platform for the running host.
package platform

import "runtime"

// Platform identifies the current platform.
type Platform struct {
	OS   string // runtime.GOOS
	Arch string // runtime.GOARCH
}

// Current returns the platform of the running host.
func Current() Platform {
	return Platform{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}
}

// Key returns the release-listing platform key for this platform.
// AppImage listings use "linux-x64" and "linux-arm64"; anything
// unrecognized falls back to "linux-x64".
func (p Platform) Key() string {
	switch p.Arch {
	case "arm64":
		return "linux-arm64"
	default:
		return "linux-x64"
	}
}

// String returns the platform string in the format "os/arch".
func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// Supported reports whether AppImages can run on this platform.
func (p Platform) Supported() bool {
	return p.OS == "linux"
}
