package transport

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const (
	defaultDownloadName = "download.raw"
	downloadPerm        = 0o644
)

// writeDownload stores resp.Body at dest, or inside dest when dest is empty or
// an existing directory. It returns the path written.
func writeDownload(resp *Response, dest string) (string, error) {
	path := dest
	if dest == "" {
		path = filepath.Join(".", responseFilename(resp))
	} else if info, err := os.Stat(dest); err == nil && info.IsDir() {
		path = filepath.Join(dest, responseFilename(resp))
	}

	// The lock opens the target itself, so it decides the mode of a new file.
	lock := flock.New(path, flock.SetPermissions(downloadPerm))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("lock %s: %w", path, err)
	}
	defer lock.Unlock()

	if err := os.WriteFile(path, resp.Body, downloadPerm); err != nil {
		return "", fmt.Errorf("write download: %w", err)
	}
	return path, nil
}

// responseFilename picks the name the service gave the file, from the
// Content-Type name parameter or the Content-Disposition filename.
func responseFilename(resp *Response) string {
	if resp != nil {
		if name := headerParam(resp.Header.Get("Content-Type"), "name"); name != "" {
			return name
		}
		if name := headerParam(resp.Header.Get("Content-Disposition"), "filename"); name != "" {
			return name
		}
	}
	return defaultDownloadName
}

func headerParam(value, key string) string {
	if value == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(value)
	if err != nil {
		return ""
	}
	name := filepath.Base(params[key])
	switch name {
	case "", ".", "..", string(filepath.Separator):
		return ""
	}
	return name
}
