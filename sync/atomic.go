package sync

import "os"

// atomicWriteFile writes content to path via a same-directory temp file
// plus rename. On any error after the temp file is created, it is
// removed before the error propagates.
func atomicWriteFile(path, content string) error {
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
