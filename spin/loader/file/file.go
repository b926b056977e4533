package file

import (
	"context"
	"image"
	"os"
	"path/filepath"

	"github.com/allape/openspin/spin"
	"github.com/allape/openspin/spin/loader"
)

// Loader reads frames from the local filesystem.
// Relative paths are resolved against Root when it is set.
type Loader struct {
	spin.Loader

	Root string
}

func (f *Loader) Load(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if f.Root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(f.Root, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	return loader.Decode(file, path)
}

func New(root string) *Loader {
	return &Loader{Root: root}
}
