package statsbomb

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/usecase"
)

// DirClient serves open-data files from a local checkout of the open-data
// repository. Paths resolve under <root>/data.
type DirClient struct {
	root string
}

var _ usecase.OpenDataClient = (*DirClient)(nil)

func NewDirClient(root string) *DirClient {
	return &DirClient{root: root}
}

func (c *DirClient) Fetch(ctx context.Context, relPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(relPath, "/")))
	if clean == "." || strings.HasPrefix(clean, "..") {
		return nil, errs.Input("invalid open-data path %q", relPath)
	}

	path := filepath.Join(c.root, "data", clean)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.NotFound("open-data file %s", path)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}
