package cart

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FilePersister keeps the cart blob as a JSON file, the terminal client's
// equivalent of browser local storage.
type FilePersister struct {
	path string
}

func NewFilePersister(dir string) *FilePersister {
	return &FilePersister{path: filepath.Join(dir, BlobName+".json")}
}

// DefaultDir is <user config dir>/frocone.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "frocone"), nil
}

func (f *FilePersister) Path() string {
	return f.path
}

func (f *FilePersister) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read cart file failed: %w", err)
	}
	return decodeSnapshot(data)
}

// Save writes through a temp file and rename so a crash never leaves half a blob.
func (f *FilePersister) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create cart dir failed: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), BlobName+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cart file failed: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cart file failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cart file failed: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace cart file failed: %w", err)
	}
	return nil
}
