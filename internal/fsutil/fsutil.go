// Package fsutil holds the low-level filesystem helpers shared by the
// locator, the profile store and the static-data loader. All helpers are
// plain wrappers with no policy of their own; callers decide whether a
// failure means "absent", "default" or "error".
package fsutil

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

// Exists reports whether a file or directory is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ReadJSON reads path and unmarshals it into out.
func ReadJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// ReadJSONValue reads path as a generic JSON object. Missing files and
// malformed content both come back as an error; callers that treat those as
// "absent" map the error themselves.
func ReadJSONValue(path string) (map[string]any, error) {
	var value map[string]any
	if err := ReadJSON(path, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// WriteJSON serializes v with 4-space indentation and replaces path with
// the result. The write goes through a temp file in the same directory and
// a rename, so readers never observe a partially written file.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// CopyFile copies src to dst byte for byte, overwriting dst if present.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
