package models

import (
	"errors"
	"io/fs"
	"os"
	"sync"
)

// UploadedFile is a PDF stored on local disk for the lifetime of one request.
type UploadedFile struct {
	Filename     string
	Path         string
	MimeType     string
	OriginalName string
	Size         int64

	once sync.Once
	err  error
}

// Remove deletes the file from disk. It is safe to call more than once;
// a file that is already gone counts as removed.
func (f *UploadedFile) Remove() error {
	if f == nil {
		return nil
	}
	f.once.Do(func() {
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			f.err = err
		}
	})
	return f.err
}
