package apply

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dots/pkg/errors"
	"github.com/arthur-debert/dots/pkg/testutil"
	"github.com/arthur-debert/dots/pkg/types"
)

func TestApplyCreatesFileAndParents(t *testing.T) {
	memfs := testutil.NewMemoryFS()

	err := Apply(memfs, types.PlannedWrite{
		Path:     "/home/user/.config/gitui/keys.toml",
		Contents: "[keys]\n",
	})
	require.NoError(t, err)

	data, err := memfs.ReadFile("/home/user/.config/gitui/keys.toml")
	require.NoError(t, err)
	assert.Equal(t, "[keys]\n", string(data))
}

func TestApplyReplacesExistingFile(t *testing.T) {
	memfs := testutil.NewMemoryFS()
	require.NoError(t, memfs.WriteTree(map[string]string{
		"/out/conf": "old",
	}))

	err := Apply(memfs, types.PlannedWrite{Path: "/out/conf", Contents: "new"})
	require.NoError(t, err)

	data, err := memfs.ReadFile("/out/conf")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestApplyRemoveFailure(t *testing.T) {
	memfs := testutil.NewMemoryFS()
	require.NoError(t, memfs.WriteTree(map[string]string{
		"/out/conf": "old",
	}))
	memfs.InjectError("/out/conf", fs.ErrPermission)

	err := Apply(memfs, types.PlannedWrite{Path: "/out/conf", Contents: "new"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRemove))
	assert.Equal(t, "/out/conf", errors.GetErrorDetails(err)["path"])
}

func TestApplyAllCollectsFailures(t *testing.T) {
	memfs := testutil.NewMemoryFS()
	require.NoError(t, memfs.WriteTree(map[string]string{
		"/out/locked": "old",
	}))
	memfs.InjectError("/out/locked", fs.ErrPermission)

	errs := ApplyAll(memfs, []types.PlannedWrite{
		{Path: "/out/locked", Contents: "never"},
		{Path: "/out/fine", Contents: "written"},
	})

	// The failing write is reported, the healthy one still lands.
	require.Len(t, errs, 1)
	assert.True(t, errors.IsErrorCode(errs[0], errors.ErrFileRemove))

	data, err := memfs.ReadFile("/out/fine")
	require.NoError(t, err)
	assert.Equal(t, "written", string(data))
}

func TestApplyAllEmpty(t *testing.T) {
	assert.Nil(t, ApplyAll(testutil.NewMemoryFS(), nil))
}
