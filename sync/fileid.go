package sync

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"regexp"
)

// frontMatterPattern matches a leading YAML front-matter block delimited
// by "---" lines.
var frontMatterPattern = regexp.MustCompile(`(?s)\A---\n(.*?)\n---\n?`)

var fileIDKeyPattern = regexp.MustCompile(`(?m)^mnmd_file_id:\s*(\S+)\s*$`)

// EnsureFileID reads path's front-matter (if any) for mnmd_file_id. If
// present, it is returned unchanged. Otherwise a fresh 8-character
// url-safe identifier is generated, written into the file's front
// matter (creating a new block if none existed), and the file is
// rewritten atomically.
func EnsureFileID(path string) (string, error) {
	return ensureFileIDFromContent(path, readFile)
}

// fileReader is a seam so tests can avoid real filesystem I/O;
// production code always passes readFile.
type fileReader func(path string) (string, error)

func ensureFileIDFromContent(path string, read fileReader) (string, error) {
	content, err := read(path)
	if err != nil {
		return "", err
	}

	if m := frontMatterPattern.FindStringSubmatch(content); m != nil {
		body := m[1]
		if idm := fileIDKeyPattern.FindStringSubmatch(body); idm != nil {
			return idm[1], nil
		}

		id, err := generateFileID()
		if err != nil {
			return "", err
		}
		newBlock := "---\n" + body + "\nmnmd_file_id: " + id + "\n---\n"
		updated := newBlock + content[len(m[0]):]
		if err := atomicWriteFile(path, updated); err != nil {
			return "", err
		}
		return id, nil
	}

	id, err := generateFileID()
	if err != nil {
		return "", err
	}
	updated := "---\nmnmd_file_id: " + id + "\n---\n\n" + content
	if err := atomicWriteFile(path, updated); err != nil {
		return "", err
	}
	return id, nil
}

func generateFileID() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sync: generating file id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
