package uuidfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	canonical := "12345678-9abc-def0-1234-56789abcdef0"
	mdadm, err := ToMDADM(canonical)
	require.NoError(t, err)
	assert.Equal(t, "12345678:9abcdef0:12345678:9abcdef0", mdadm)

	back, err := FromMDADM(mdadm)
	require.NoError(t, err)
	assert.Equal(t, canonical, back)
}

func TestToMDADMAcceptsBareHex(t *testing.T) {
	_, err := ToMDADM("0123456789abcdef0123456789abcdef0") // 33 chars
	assert.Error(t, err)

	mdadm, err := ToMDADM("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, "01234567:89abcdef:01234567:89abcdef", mdadm)
}

func TestInvalidInputs(t *testing.T) {
	_, err := ToMDADM("not-hex-at-all-zzzz")
	assert.ErrorIs(t, err, ErrInvalidUUID)

	_, err = FromMDADM("1234:5678:9abc")
	assert.ErrorIs(t, err, ErrInvalidUUID)

	_, err = FromMDADM("zzzzzzzz:zzzzzzzz:zzzzzzzz:zzzzzzzz")
	assert.ErrorIs(t, err, ErrInvalidUUID)
}
