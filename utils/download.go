package utils

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// DownloadFile fetches a remote resource into a temporary file keeping the
// extension of the url path. The caller removes the file when done.
func DownloadFile(uri string) (*os.File, error) {
	res, err := http.Get(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to download %s", uri)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unable to download %s: status %s", uri, res.Status)
	}

	ext := ""
	if u, err := url.Parse(uri); err == nil {
		ext = filepath.Ext(u.Path)
	}
	tmpfile, err := os.CreateTemp("", "hexmap-*"+ext)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create temporary file")
	}

	if _, err := io.Copy(tmpfile, res.Body); err != nil {
		tmpfile.Close()
		os.Remove(tmpfile.Name())
		return nil, errors.Wrapf(err, "unable to copy %s into the destination file", uri)
	}
	if _, err := tmpfile.Seek(0, io.SeekStart); err != nil {
		tmpfile.Close()
		os.Remove(tmpfile.Name())
		return nil, err
	}
	return tmpfile, nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

// DetectContentType detects the file type by reading MIME type information of the file content.
func DetectContentType(fname string) (string, error) {
	file, err := os.Open(fname)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.Warn("could not close the opened file", "file", fname, "err", err)
		}
	}()

	// Only the first 512 bytes are used to sniff the content type.
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	// Always returns a valid content-type and "application/octet-stream" if no others seemed to match.
	return http.DetectContentType(buffer[:n]), nil
}
