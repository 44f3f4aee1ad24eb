package prober

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogicalSectorSizeRejectsNonBlockDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-block-device")
	assert.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := LogicalSectorSize(path)
	assert.Error(t, err)
}

func TestLogicalSectorSizeRejectsMissingPath(t *testing.T) {
	_, err := LogicalSectorSize("/nonexistent/path/for/test")
	assert.Error(t, err)
}
