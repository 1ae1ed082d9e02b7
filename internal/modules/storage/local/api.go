package local

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/reusedev/sbi-hub/internal/consts"
	"github.com/reusedev/sbi-hub/tools"
)

func SaveFile(f io.Reader, path string) error {
	dir := filepath.Dir(path)
	err := os.MkdirAll(dir, 0770)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(file, f)
	if err != nil {
		return err
	}
	return nil
}

func DeleteFile(path string) error {
	return os.Remove(path)
}

type Archiver struct {
	Directory string
}

func NewArchiver(directory string) *Archiver {
	return &Archiver{Directory: directory}
}

func (a *Archiver) Supplier() consts.StorageSupplier {
	return consts.LocalStorage
}

// Archive writes data under a fresh name; the returned key is the file path.
func (a *Archiver) Archive(_ context.Context, data []byte) (string, error) {
	path := filepath.Join(a.Directory, uuid.NewString()+"."+tools.DetectImageType(data).String())
	if err := SaveFile(bytes.NewReader(data), path); err != nil {
		return "", err
	}
	return path, nil
}

func (a *Archiver) URL(_ context.Context, key string, _ time.Duration) (string, error) {
	if _, err := os.Stat(key); err != nil {
		return "", err
	}
	return key, nil
}
