package raid

import (
	"github.com/blockforge/storagecore/internal/units"
)

func stride(n int64) *int {
	v := int(n)
	return &v
}

// linearLevel concatenates members with no redundancy and no chunking.
type linearLevel struct{ base }

func (linearLevel) BaseMemberSize(data units.Size, n int) (units.Size, error) {
	return data, nil
}
func (l linearLevel) RawArraySize(n int, smallest units.Size) (units.Size, error) {
	if err := l.checkMembers(n); err != nil {
		return units.Zero, err
	}
	return mulSizeInt(smallest, int64(n)), nil
}
func (l linearLevel) Size(memberSizes []units.Size, chunk units.Size, sb SuperblockFunc) (units.Size, error) {
	if err := l.checkMembers(len(memberSizes)); err != nil {
		return units.Zero, err
	}
	total := units.Zero
	for _, m := range memberSizes {
		total = total.Add(m.Sub(sb(m)))
	}
	return total, nil
}
func (l linearLevel) MaxSpares(n int) (int, error) {
	if err := l.checkMembers(n); err != nil {
		return 0, err
	}
	return 0, nil
}
func (l linearLevel) RecommendedStride(n int) (*int, error) {
	if err := l.checkMembers(n); err != nil {
		return nil, err
	}
	return nil, nil
}

// stripedLevel implements the striping formula shared by raid0/4/5/6,
// parameterized by how many members hold parity/overhead (0 for raid0).
type stripedLevel struct {
	base
	parityMembers int // subtracted from n before dividing/multiplying
}

func (l stripedLevel) dataMembers(n int) int64 { return int64(n - l.parityMembers) }

func (l stripedLevel) BaseMemberSize(data units.Size, n int) (units.Size, error) {
	if err := l.checkMembers(n); err != nil {
		return units.Zero, err
	}
	return ceilDivSize(data, l.dataMembers(n)), nil
}

func (l stripedLevel) RawArraySize(n int, smallest units.Size) (units.Size, error) {
	if err := l.checkMembers(n); err != nil {
		return units.Zero, err
	}
	return mulSizeInt(smallest, l.dataMembers(n)), nil
}

func (l stripedLevel) Size(memberSizes []units.Size, chunk units.Size, sb SuperblockFunc) (units.Size, error) {
	if err := l.checkMembers(len(memberSizes)); err != nil {
		return units.Zero, err
	}
	smallest := memberSizes[0]
	for _, m := range memberSizes[1:] {
		if m.Cmp(smallest) < 0 {
			smallest = m
		}
	}
	usable := smallest.Sub(sb(smallest))
	raw, err := l.RawArraySize(len(memberSizes), usable)
	if err != nil {
		return units.Zero, err
	}
	if chunk.Cmp(units.Zero) == 0 {
		return raw, nil
	}
	rem, err := raw.Mod(chunk)
	if err != nil {
		return units.Zero, err
	}
	return raw.Sub(rem), nil
}

func (l stripedLevel) MaxSpares(n int) (int, error) {
	if err := l.checkMembers(n); err != nil {
		return 0, err
	}
	if l.minMembers == 2 && l.parityMembers == 0 {
		// raid0 takes no spares.
		return 0, nil
	}
	return n - l.minMembers, nil
}

func (l stripedLevel) RecommendedStride(n int) (*int, error) {
	if err := l.checkMembers(n); err != nil {
		return nil, err
	}
	d := l.dataMembers(n)
	if d <= 0 {
		return nil, nil
	}
	return stride(16 * d), nil
}

// mirroredLevel implements raid1: every member is a full copy.
type mirroredLevel struct{ base }

func (l mirroredLevel) BaseMemberSize(data units.Size, n int) (units.Size, error) {
	if err := l.checkMembers(n); err != nil {
		return units.Zero, err
	}
	return data, nil
}
func (l mirroredLevel) RawArraySize(n int, smallest units.Size) (units.Size, error) {
	if err := l.checkMembers(n); err != nil {
		return units.Zero, err
	}
	return smallest, nil
}
func (l mirroredLevel) Size(memberSizes []units.Size, chunk units.Size, sb SuperblockFunc) (units.Size, error) {
	if err := l.checkMembers(len(memberSizes)); err != nil {
		return units.Zero, err
	}
	smallest := memberSizes[0]
	for _, m := range memberSizes[1:] {
		if m.Cmp(smallest) < 0 {
			smallest = m
		}
	}
	return smallest.Sub(sb(smallest)), nil
}
func (l mirroredLevel) MaxSpares(n int) (int, error) {
	if err := l.checkMembers(n); err != nil {
		return 0, err
	}
	return n - l.minMembers, nil
}
func (l mirroredLevel) RecommendedStride(n int) (*int, error) {
	if err := l.checkMembers(n); err != nil {
		return nil, err
	}
	return nil, nil
}

// raid10Level: base_member_size = ceil(data/(n/2)), raw = (n/2)*smallest,
// no stripe-chunk rounding on the net size (mirrored pairs absorb it).
type raid10Level struct{ base }

func (l raid10Level) halves(n int) int64 { return int64(n / 2) }

func (l raid10Level) BaseMemberSize(data units.Size, n int) (units.Size, error) {
	if err := l.checkMembers(n); err != nil {
		return units.Zero, err
	}
	return ceilDivSize(data, l.halves(n)), nil
}
func (l raid10Level) RawArraySize(n int, smallest units.Size) (units.Size, error) {
	if err := l.checkMembers(n); err != nil {
		return units.Zero, err
	}
	return mulSizeInt(smallest, l.halves(n)), nil
}
func (l raid10Level) Size(memberSizes []units.Size, chunk units.Size, sb SuperblockFunc) (units.Size, error) {
	if err := l.checkMembers(len(memberSizes)); err != nil {
		return units.Zero, err
	}
	smallest := memberSizes[0]
	for _, m := range memberSizes[1:] {
		if m.Cmp(smallest) < 0 {
			smallest = m
		}
	}
	usable := smallest.Sub(sb(smallest))
	return l.RawArraySize(len(memberSizes), usable)
}
func (l raid10Level) MaxSpares(n int) (int, error) {
	if err := l.checkMembers(n); err != nil {
		return 0, err
	}
	return n - l.minMembers, nil
}
func (l raid10Level) RecommendedStride(n int) (*int, error) {
	if err := l.checkMembers(n); err != nil {
		return nil, err
	}
	return nil, nil
}

// containerLevel wraps a BIOS RAID set: it carries no data and no spares
// of its own, it is just a grouping of members for firmware metadata.
type containerLevel struct{ base }

func (l containerLevel) BaseMemberSize(data units.Size, n int) (units.Size, error) {
	return data, nil
}
func (l containerLevel) RawArraySize(n int, smallest units.Size) (units.Size, error) {
	if err := l.checkMembers(n); err != nil {
		return units.Zero, err
	}
	return mulSizeInt(smallest, int64(n)), nil
}
func (l containerLevel) Size(memberSizes []units.Size, chunk units.Size, sb SuperblockFunc) (units.Size, error) {
	return units.Zero, nil
}
func (l containerLevel) MaxSpares(n int) (int, error) {
	if err := l.checkMembers(n); err != nil {
		return 0, err
	}
	return 0, nil
}
func (l containerLevel) RecommendedStride(n int) (*int, error) {
	if err := l.checkMembers(n); err != nil {
		return nil, err
	}
	return nil, nil
}

// singleLevel is the BTRFS "single" profile: each chunk lives on exactly
// one member with no replication, members simply add up.
type singleLevel struct{ base }

func (l singleLevel) BaseMemberSize(data units.Size, n int) (units.Size, error) { return data, nil }
func (l singleLevel) RawArraySize(n int, smallest units.Size) (units.Size, error) {
	if err := l.checkMembers(n); err != nil {
		return units.Zero, err
	}
	return mulSizeInt(smallest, int64(n)), nil
}
func (l singleLevel) Size(memberSizes []units.Size, chunk units.Size, sb SuperblockFunc) (units.Size, error) {
	if err := l.checkMembers(len(memberSizes)); err != nil {
		return units.Zero, err
	}
	total := units.Zero
	for _, m := range memberSizes {
		total = total.Add(m.Sub(sb(m)))
	}
	return total, nil
}
func (l singleLevel) MaxSpares(n int) (int, error) {
	if err := l.checkMembers(n); err != nil {
		return 0, err
	}
	return 0, nil
}
func (l singleLevel) RecommendedStride(n int) (*int, error) {
	if err := l.checkMembers(n); err != nil {
		return nil, err
	}
	return nil, nil
}

// dupLevel is the BTRFS "dup" profile: every extent is written twice on
// the same member, halving the usable capacity of a single device.
type dupLevel struct{ base }

func (l dupLevel) BaseMemberSize(data units.Size, n int) (units.Size, error) {
	if err := l.checkMembers(n); err != nil {
		return units.Zero, err
	}
	return mulSizeInt(data, 2), nil
}
func (l dupLevel) RawArraySize(n int, smallest units.Size) (units.Size, error) {
	if err := l.checkMembers(n); err != nil {
		return units.Zero, err
	}
	return smallest, nil
}
func (l dupLevel) Size(memberSizes []units.Size, chunk units.Size, sb SuperblockFunc) (units.Size, error) {
	if err := l.checkMembers(len(memberSizes)); err != nil {
		return units.Zero, err
	}
	usable := memberSizes[0].Sub(sb(memberSizes[0]))
	half, err := usable.DivScalar(2)
	if err != nil {
		return units.Zero, err
	}
	return half, nil
}
func (l dupLevel) MaxSpares(n int) (int, error) {
	if err := l.checkMembers(n); err != nil {
		return 0, err
	}
	return 0, nil
}
func (l dupLevel) RecommendedStride(n int) (*int, error) {
	if err := l.checkMembers(n); err != nil {
		return nil, err
	}
	return nil, nil
}

var (
	Linear    Level = linearLevel{base{name: "linear", minMembers: 1, redundant: false}}
	RAID0     Level = stripedLevel{base: base{name: "raid0", numeric: "0", nick: "stripe", minMembers: 2, redundant: false}, parityMembers: 0}
	RAID1     Level = mirroredLevel{base{name: "raid1", numeric: "1", nick: "mirror", minMembers: 2, redundant: true}}
	RAID4     Level = stripedLevel{base: base{name: "raid4", numeric: "4", minMembers: 3, redundant: true}, parityMembers: 1}
	RAID5     Level = stripedLevel{base: base{name: "raid5", numeric: "5", minMembers: 3, redundant: true}, parityMembers: 1}
	RAID6     Level = stripedLevel{base: base{name: "raid6", numeric: "6", minMembers: 4, redundant: true}, parityMembers: 2}
	RAID10    Level = raid10Level{base{name: "raid10", numeric: "10", minMembers: 4, redundant: true}}
	Container Level = containerLevel{base{name: "container", minMembers: 1, redundant: false}}
	Single    Level = singleLevel{base{name: "single", minMembers: 1, redundant: false}}
	Dup       Level = dupLevel{base{name: "dup", minMembers: 1, redundant: false}}
)

var allLevels = []Level{Linear, RAID0, RAID1, RAID4, RAID5, RAID6, RAID10, Container, Single, Dup}

// Lookup resolves a level descriptor: canonical name, "RAIDn" / "n"
// numeric alias, or nickname ("stripe", "mirror").
func Lookup(descriptor string) (Level, error) {
	for _, l := range allLevels {
		for _, n := range l.Names() {
			if n == descriptor {
				return l, nil
			}
		}
	}
	return nil, ErrUnknownLevel
}

// All returns every registered level, in registration order.
func All() []Level {
	out := make([]Level, len(allLevels))
	copy(out, allLevels)
	return out
}
