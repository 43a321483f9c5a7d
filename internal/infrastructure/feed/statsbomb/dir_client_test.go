package statsbomb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/futball/internal/domain/errs"
)

func TestDirClientFetch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data", "matches", "2"), 0o755))
	writeFile(t, filepath.Join(root, "data", "matches", "2"), "27.json", `[]`)

	client := NewDirClient(root)
	data, err := client.Fetch(context.Background(), "matches/2/27.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = client.Fetch(context.Background(), "matches/2/28.json")
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = client.Fetch(context.Background(), "../secrets.json")
	require.ErrorIs(t, err, errs.ErrInput)
}
