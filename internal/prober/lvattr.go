package prober

import "fmt"

// volumeType is the first character of an `lvs -o lv_attr` report
// field: what kind of logical volume a row describes.
type volumeType rune

const (
	volumeTypeMirrored          volumeType = 'm'
	volumeTypeRAID              volumeType = 'r'
	volumeTypeRAIDNoInitialSync volumeType = 'R'
	volumeTypeSnapshot          volumeType = 's'
	volumeTypePVMove            volumeType = 'p'
	volumeTypeVirtual           volumeType = 'v'
	volumeTypeThinVolume        volumeType = 'V'
	volumeTypeThinPool          volumeType = 't'
	volumeTypeThinPoolData      volumeType = 'T'
	volumeTypeThinPoolMetadata  volumeType = 'e'
	volumeTypeNone              volumeType = '-'
)

// lvState is the fifth lv_attr character: the volume's runtime state.
type lvState rune

const (
	lvStateActive                    lvState = 'a'
	lvStateSuspended                 lvState = 's'
	lvStateInvalidSnapshot           lvState = 'I'
	lvStateSuspendedSnapshotFailed   lvState = 'M'
	lvStateDevicePresentNoTables     lvState = 'd'
	lvStateDevicePresentInactive     lvState = 'i'
	lvStateNone                      lvState = '-'
	lvStateHistorical                lvState = 'h'
	lvStateThinPoolCheckNeeded       lvState = 'c'
	lvStateSuspendedThinCheckNeeded  lvState = 'C'
	lvStateUnknown                   lvState = 'X'
)

// volumeHealth is the ninth lv_attr character.
type volumeHealth rune

const (
	volumeHealthPartialActivation    volumeHealth = 'p'
	volumeHealthUnknown              volumeHealth = 'X'
	volumeHealthMissing              volumeHealth = '-'
	volumeHealthThinFailed           volumeHealth = 'F'
	volumeHealthThinPoolOutOfData    volumeHealth = 'D'
	volumeHealthThinPoolMetadataRO   volumeHealth = 'M'
	volumeHealthWriteCacheError      volumeHealth = 'E'
)

// lvAttr is a parsed `lv_attr` report column: a fixed 10-character
// bitfield `lvs` emits per logical volume, only the characters this
// package actually consumes are decoded (type, state, health).
type lvAttr struct {
	volumeType   volumeType
	state        lvState
	health       volumeHealth
}

func parseLVAttr(raw string) (lvAttr, error) {
	if len(raw) < 9 {
		return lvAttr{}, fmt.Errorf("lv_attr %q is shorter than the minimum 9 characters", raw)
	}
	return lvAttr{
		volumeType: volumeType(raw[0]),
		state:      lvState(raw[4]),
		health:     volumeHealth(raw[8]),
	}, nil
}

// active reports whether the row's state character means the LV's
// device-mapper node is live and servicing IO.
func (a lvAttr) active() bool {
	return a.state == lvStateActive
}

// healthError surfaces a known-bad health character as an error,
// mirroring the checks a discovery pass needs before trusting a
// freshly probed LV's reported size or backing devices.
func (a lvAttr) healthError() error {
	switch a.health {
	case volumeHealthMissing:
		return nil
	case volumeHealthPartialActivation:
		return fmt.Errorf("partial activation: one or more physical volumes are missing")
	case volumeHealthUnknown:
		return fmt.Errorf("unknown volume health, verification on the host is required")
	case volumeHealthWriteCacheError:
		return fmt.Errorf("write cache reports an error")
	case volumeHealthThinFailed:
		return fmt.Errorf("thin pool or thin volume has failed, no further IO is permitted")
	case volumeHealthThinPoolOutOfData:
		return fmt.Errorf("thin pool is out of data space")
	case volumeHealthThinPoolMetadataRO:
		return fmt.Errorf("thin pool metadata is read-only")
	}
	return nil
}
