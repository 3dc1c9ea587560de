package path

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootPath(t *testing.T) {
	root := RootPath()
	_, err := os.Stat(filepath.Join(root, "go.mod"))
	assert.NoError(t, err)

	t.Setenv(RootEnv, "/srv/medcard/")
	assert.Equal(t, "/srv/medcard", RootPath())
}
