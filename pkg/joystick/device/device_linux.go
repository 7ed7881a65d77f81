//go:build linux
// +build linux

package device

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"syscall"
	"unsafe"

	"github.com/golang/glog"
)

type device struct {
	file        *os.File
	index       int
	name        string
	axisCount   uint8
	buttonCount uint8
}

// Open opens the device with specified index.
func Open(index int) (Device, error) {
	f, err := os.OpenFile(fmt.Sprintf("/dev/input/js%d", index), os.O_RDONLY, 0666)
	if err != nil {
		return nil, err
	}
	d := &device{file: f, index: index}

	errno := d.ioctl(iocGAXES, unsafe.Pointer(&d.axisCount))
	if errno == 0 {
		errno = d.ioctl(iocGBUTTONS, unsafe.Pointer(&d.buttonCount))
	}
	if errno == 0 {
		var buf [256]byte
		errno = d.ioctl(iocGNAME, unsafe.Pointer(&buf))
		if errno == 0 {
			if pos := bytes.IndexByte(buf[:], 0); pos >= 0 {
				d.name = string(buf[:pos])
			} else {
				d.name = string(buf[:])
			}
		}
	}
	if errno != 0 {
		d.file.Close()
		return nil, errno
	}
	return d, nil
}

// DetectAndOpen opens the first device from startIndex which has axes.
// It returns nil without error if nothing is found.
func DetectAndOpen(startIndex int) (Device, error) {
	for index := startIndex; index < MaxDevices; index++ {
		d, err := Open(index)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		if d.AxisCount() == 0 {
			glog.V(1).Infof("skip js%d %q: no axes", index, d.Name())
			d.Close()
			continue
		}
		return d, nil
	}
	return nil, nil
}

// Close implements Device.
func (d *device) Close() error {
	return d.file.Close()
}

// Index implements Device.
func (d *device) Index() int {
	return d.index
}

// Name implements Device.
func (d *device) Name() string {
	return d.name
}

// AxisCount implements Device.
func (d *device) AxisCount() int {
	return int(d.axisCount)
}

// ButtonCount implements Device.
func (d *device) ButtonCount() int {
	return int(d.buttonCount)
}

// ReadEvent implements Device.
func (d *device) ReadEvent() (Event, error) {
	var buf [EventSize]byte
	if _, err := io.ReadFull(d.file, buf[:]); err != nil {
		return nil, err
	}
	return DecodeEvent(buf[:])
}

const (
	iocGAXES    uint = 0x80016a11
	iocGBUTTONS uint = 0x80016a12
	iocGNAME    uint = 0x80ff6a13
)

func (d *device) ioctl(req uint, ptr unsafe.Pointer) syscall.Errno {
	_, _, err := syscall.Syscall(syscall.SYS_IOCTL, uintptr(d.file.Fd()), uintptr(req), uintptr(ptr))
	return err
}
