//go:build !linux
// +build !linux

package device

// Open opens the device with specified index.
func Open(index int) (Device, error) {
	return nil, ErrUnsupported
}

// DetectAndOpen opens the first device from startIndex which has axes.
func DetectAndOpen(startIndex int) (Device, error) {
	return nil, ErrUnsupported
}
