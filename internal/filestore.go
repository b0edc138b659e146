package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	imagePrefix = "IMG_"
	imageExt    = ".jpg"
	timeLayout  = "20060102_150405"
)

// FileStore maps session ids to image directories under a local
// pictures root, mirroring the layout Sessions/<sessionId>/IMG_*.jpg.
type FileStore struct {
	root string // e.g. <data-dir>/Pictures/OralVis/Sessions
}

// NewFileStore creates a file store rooted at the given directory
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Root returns the sessions root directory
func (fs *FileStore) Root() string {
	return fs.root
}

// SessionDirectory returns the directory reserved for a session's
// images, creating it if absent. Safe to call repeatedly.
func (fs *FileStore) SessionDirectory(sessionID string) (string, error) {
	dir := filepath.Join(fs.root, sessionID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		if os.IsPermission(err) {
			return "", &PermissionError{Resource: "storage", Err: err}
		}
		return "", &FileStoreError{Path: dir, Op: "mkdir", Err: err}
	}
	return dir, nil
}

// NewImageFilePath returns a fresh path for the next capture, named
// from the current timestamp. Two captures within the same second get
// a numeric disambiguator so paths never collide.
func (fs *FileStore) NewImageFilePath(sessionID string) (string, error) {
	dir, err := fs.SessionDirectory(sessionID)
	if err != nil {
		return "", err
	}

	stamp := time.Now().Format(timeLayout)
	path := filepath.Join(dir, imagePrefix+stamp+imageExt)
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		path = filepath.Join(dir, fmt.Sprintf("%s%s_%d%s", imagePrefix, stamp, n, imageExt))
	}
}

// ListImages returns the session's image paths ordered by last
// modified time, oldest first. A missing or empty directory yields an
// empty slice, not an error.
func (fs *FileStore) ListImages(sessionID string) ([]string, error) {
	dir := filepath.Join(fs.root, sessionID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, &FileStoreError{Path: dir, Op: "list", Err: err}
	}

	type imageFile struct {
		path    string
		modTime time.Time
	}
	images := make([]imageFile, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, imagePrefix) || !strings.HasSuffix(name, imageExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		images = append(images, imageFile{
			path:    filepath.Join(dir, name),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].modTime.Before(images[j].modTime)
	})

	paths := make([]string, len(images))
	for i, img := range images {
		paths[i] = img.path
	}
	return paths, nil
}

// CountImages returns the number of image files currently on disk for
// the session.
func (fs *FileStore) CountImages(sessionID string) (int, error) {
	images, err := fs.ListImages(sessionID)
	if err != nil {
		return 0, err
	}
	return len(images), nil
}

// DeleteSessionFiles removes the session directory and everything in
// it. Removing an absent directory is a no-op.
func (fs *FileStore) DeleteSessionFiles(sessionID string) error {
	dir := filepath.Join(fs.root, sessionID)
	if err := os.RemoveAll(dir); err != nil {
		return &FileStoreError{Path: dir, Op: "remove", Err: err}
	}
	return nil
}

// ListSessionDirectories returns the session ids that currently have
// an image directory on disk, for reconciling against the store.
func (fs *FileStore) ListSessionDirectories() ([]string, error) {
	entries, err := os.ReadDir(fs.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, &FileStoreError{Path: fs.root, Op: "list", Err: err}
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			ids = append(ids, entry.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}
