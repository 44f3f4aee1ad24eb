package format

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/blockforge/storagecore/internal/units"
)

func TestImmutableKinds(t *testing.T) {
	assert.True(t, New(KindLVMPV).Immutable())
	assert.True(t, New(KindMDMember).Immutable())
	assert.False(t, New(KindExt4).Immutable())
	assert.False(t, New(KindNone).Immutable())
}

func TestWithinSizeBounds(t *testing.T) {
	f := New(KindExt4)
	f.MinSize = units.NewSize(1024)
	f.MaxSize = units.NewSize(4096)

	assert.False(t, f.WithinSizeBounds(units.NewSize(512)))
	assert.True(t, f.WithinSizeBounds(units.NewSize(2048)))
	assert.False(t, f.WithinSizeBounds(units.NewSize(8192)))
}

func TestWithinSizeBoundsUnboundedMax(t *testing.T) {
	f := New(KindXFS)
	f.MinSize = units.NewSize(1024)
	assert.True(t, f.WithinSizeBounds(units.NewSize(1 << 40)))
}

func TestMountOptionsRoundTrip(t *testing.T) {
	f := New(KindExt4)
	f.SetMountOptionsString("defaults,noatime")
	assert.Equal(t, []string{"defaults", "noatime"}, f.MountOptions)
	assert.Equal(t, "defaults,noatime", f.MountOptionsString())
}

func TestApplyNetdevPolicyAdds(t *testing.T) {
	got := ApplyNetdevPolicy([]string{"defaults"}, true, false)
	assert.Equal(t, []string{"defaults", "_netdev"}, got)
}

func TestApplyNetdevPolicyRemoves(t *testing.T) {
	got := ApplyNetdevPolicy([]string{"defaults", "_netdev"}, false, false)
	assert.Equal(t, []string{"defaults"}, got)
}

func TestApplyNetdevPolicyRespectsUserChoice(t *testing.T) {
	got := ApplyNetdevPolicy([]string{"defaults", "_netdev"}, false, true)
	assert.Equal(t, []string{"defaults", "_netdev"}, got)

	got = ApplyNetdevPolicy([]string{"defaults"}, true, true)
	assert.Equal(t, []string{"defaults"}, got)
}

func TestCloneIsIndependent(t *testing.T) {
	f := New(KindExt4)
	f.MountOptions = []string{"defaults"}
	c := f.Clone()
	c.MountOptions[0] = "ro"
	assert.Equal(t, "defaults", f.MountOptions[0])
}

func TestCloneProducesDeepEqualCopyBeforeMutation(t *testing.T) {
	f := New(KindExt4)
	f.Label = "root"
	f.UUID = "11111111-1111-1111-1111-111111111111"
	f.MountOptions = []string{"defaults", "noatime"}
	f.Attrs["filesystem_uuid_subtype"] = "e2label"

	c := f.Clone()
	if diff := cmp.Diff(f, c); diff != "" {
		t.Errorf("clone diverged from original before any mutation (-original +clone):\n%s", diff)
	}
}
