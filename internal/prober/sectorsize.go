package prober

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// blkSSZGet is the BLKSSZGET ioctl request number (linux/fs.h), which
// returns a block device's logical sector size in bytes. It has no
// constant in golang.org/x/sys/unix, the same way the kernel headers
// this request comes from are not themselves part of the Go toolchain.
const blkSSZGet = 0x1268

// LogicalSectorSize queries devicePath's logical sector size via the
// BLKSSZGET ioctl, for a live Prober to attach as
// Descriptor.Fields["sector_size"] ahead of internal/container/lvm's
// cross-member sector-size check.
func LogicalSectorSize(devicePath string) (int, error) {
	f, err := os.Open(devicePath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	size, err := unix.IoctlGetInt(int(f.Fd()), blkSSZGet)
	if err != nil {
		return 0, fmt.Errorf("BLKSSZGET on %s: %w", devicePath, err)
	}
	return size, nil
}
