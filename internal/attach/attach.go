// Package attach tracks candidate files for the composer and filters out ones
// that were already picked.
package attach

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/matheus3301/qshare/internal/chat"
)

// ErrNotRegular is returned by Probe for directories and other non-regular files.
var ErrNotRegular = errors.New("not a regular file")

// Source is a file the user picked or dropped, not yet sent.
type Source struct {
	Name         string
	Size         uint64
	Type         string
	LastModified time.Time
	Path         string
}

// Key returns the identity used for deduplication: name, size and
// modification time. Contents are never hashed.
func Key(s Source) string {
	return s.Name + "|" + strconv.FormatUint(s.Size, 10) + "|" + strconv.FormatInt(s.LastModified.UnixMilli(), 10)
}

// AddFiles returns existing followed by every incoming item whose key is not
// already present. Duplicates inside incoming are dropped too; the first one
// wins.
func AddFiles(existing, incoming []Source) []Source {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, s := range existing {
		seen[Key(s)] = struct{}{}
	}

	out := make([]Source, 0, len(existing)+len(incoming))
	out = append(out, existing...)
	for _, s := range incoming {
		k := Key(s)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Attachment converts s into the form stored on a message.
func (s Source) Attachment() chat.Attachment {
	return chat.Attachment{
		Name: s.Name,
		Size: s.Size,
		Type: s.Type,
		URL:  fileURL(s.Path),
	}
}

// Probe stats the file at path and sniffs its content type.
func Probe(path string) (Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Source{}, fmt.Errorf("resolve %q: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Source{}, err
	}
	if !info.Mode().IsRegular() {
		return Source{}, fmt.Errorf("%s: %w", abs, ErrNotRegular)
	}

	mtype, err := mimetype.DetectFile(abs)
	if err != nil {
		return Source{}, fmt.Errorf("detect type of %s: %w", abs, err)
	}

	return Source{
		Name:         info.Name(),
		Size:         uint64(info.Size()),
		Type:         mtype.String(),
		LastModified: info.ModTime(),
		Path:         abs,
	}, nil
}

func fileURL(path string) string {
	if path == "" {
		return ""
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
