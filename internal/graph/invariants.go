package graph

import "regexp"

// lvmNamePattern is the permitted character class for LVM LV/VG names.
var lvmNamePattern = regexp.MustCompile(`^[A-Za-z0-9_+.-]+$`)

var lvmReservedPrefixes = []string{"pvmove", "snapshot"}

var lvmReservedSubstrings = []string{
	"_cdata", "_cmeta", "_mimage", "_mlog", "_pmspare",
	"_rimage", "_rmeta", "_tdata", "_tmeta", "_vorigin",
}

// pathForbidden matches a NUL byte in the name of a filesystem-backed
// leaf device; "." and ".." are rejected by a separate check.
var pathForbidden = regexp.MustCompile("\x00")

// validateDeviceName enforces the per-kind naming rules from spec
// component C for a device about to be inserted. Internal LVs (their
// own _rimage/_tdata/... segments) are exempt from the reserved
// substring check, not from the character class or reserved prefixes.
func validateDeviceName(device *Device) error {
	if device.Kind == KindLVMLogicalVolume && device.Tags["internal"] {
		return validateLVMNameExempt(device.Name)
	}
	return validateName(device.Kind, device.Name)
}

// validateName enforces the per-kind naming rules from spec component C.
func validateName(kind Kind, name string) error {
	if name == "" {
		return ErrInvalidName
	}
	switch kind {
	case KindLVMVolumeGroup, KindLVMLogicalVolume:
		return validateLVMName(name)
	case KindBTRFSVolume, KindBTRFSSubVolume:
		// BTRFS names accept almost anything; only reject NUL.
		if pathForbidden.MatchString(name) {
			return ErrInvalidName
		}
		return nil
	case KindFile, KindDirectory:
		if pathForbidden.MatchString(name) || name == "." || name == ".." {
			return ErrInvalidName
		}
		return nil
	default:
		return nil
	}
}

// validateLVMNameExempt is like validateLVMName but skips the
// reserved-substring check for internal LVs (_rimage, _tdata, ...),
// which legitimately carry those substrings by construction.
func validateLVMNameExempt(name string) error {
	if !lvmNamePattern.MatchString(name) {
		return ErrInvalidName
	}
	for _, prefix := range lvmReservedPrefixes {
		if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
			return ErrInvalidName
		}
	}
	return nil
}

func validateLVMName(name string) error {
	if err := validateLVMNameExempt(name); err != nil {
		return err
	}
	for _, sub := range lvmReservedSubstrings {
		if contains(name, sub) {
			return ErrInvalidName
		}
	}
	return nil
}

func contains(s, substr string) bool {
	return len(substr) == 0 || indexOf(s, substr) >= 0
}

func indexOf(s, substr string) int {
	n, m := len(s), len(substr)
	if m > n {
		return -1
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == substr {
			return i
		}
	}
	return -1
}

// allowedParentKinds restricts which Kinds may parent a given child
// Kind. A child Kind absent from this map has no graph-level kind
// restriction on its parents (format-level checks apply instead).
var allowedParentKinds = map[Kind]map[Kind]bool{
	KindPartition: {
		KindDisk: true,
	},
	KindMDArray: {
		KindDisk: true, KindPartition: true, KindLVMLogicalVolume: true, KindDM: true, KindLUKS: true,
	},
	KindLVMVolumeGroup: {
		KindDisk: true, KindPartition: true, KindMDArray: true, KindLVMLogicalVolume: true, KindDM: true, KindLUKS: true,
	},
	KindLVMLogicalVolume: {
		KindLVMVolumeGroup: true, KindLVMLogicalVolume: true,
	},
	KindBTRFSVolume: {
		KindDisk: true, KindPartition: true, KindMDArray: true, KindLVMLogicalVolume: true, KindDM: true, KindLUKS: true,
	},
	KindBTRFSSubVolume: {
		KindBTRFSVolume: true, KindBTRFSSubVolume: true,
	},
	KindLUKS: {
		KindDisk: true, KindPartition: true, KindMDArray: true, KindLVMLogicalVolume: true, KindDM: true,
	},
	KindDM: {
		KindDisk: true, KindPartition: true, KindMDArray: true, KindLVMLogicalVolume: true, KindLUKS: true, KindDM: true,
	},
}

func checkParentKind(child, parent Kind) error {
	allowed, restricted := allowedParentKinds[child]
	if !restricted {
		return nil
	}
	if !allowed[parent] {
		return ErrWrongParentKind
	}
	return nil
}
