package md

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blockforge/storagecore/internal/units"
)

func TestSuperblockSizeFlatVersions(t *testing.T) {
	s := SuperblockSize(units.NewSize(1<<40), "0.9")
	assert.True(t, s.Equal(DefaultSuperblockSize))

	s = SuperblockSize(units.NewSize(1<<40), "1.0")
	assert.True(t, s.Equal(DefaultSuperblockSize))
}

func TestSuperblockSizeReshapeHeadroomCapsAt128MiB(t *testing.T) {
	huge := units.NewSize(10 * 1024 * 1024 * 1024 * 1024) // 10 TiB
	s := SuperblockSize(huge, "1.2")
	assert.Equal(t, int64(128*1024*1024), s.Bytes())
}

func TestSuperblockSizeReshapeHeadroomShrinksForSmallArrays(t *testing.T) {
	small := units.NewSize(10 * 1024 * 1024) // 10 MiB
	s := SuperblockSize(small, "1.2")
	assert.True(t, s.Cmp(units.NewSize(128*1024*1024)) < 0)
	assert.True(t, s.Cmp(units.NewSize(1024*1024)) >= 0)
}
