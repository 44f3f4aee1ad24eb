package plan

// mountpointWeight resolves the boot-critical placement preference the
// spec's ordering algorithm uses to break same-class ties; the most
// specific mount point present wins.
var mountpointWeight = map[string]int{
	"/boot/efi": 5000,
	"/boot":     2000,
}

// MountpointWeight returns the tie-break weight for a mount point,
// zero for anything not called out in the boot-critical table.
func MountpointWeight(mountPoint string) int {
	return mountpointWeight[mountPoint]
}
