package static

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"webperf/internal/startup"

	"golang.org/x/crypto/blake2b"
)

// strongETagLength is the number of hex digits of the digest kept in a
// strong ETag.
const strongETagLength = 32

// weakETag derives a validator from size and modification time without
// reading the file.
func weakETag(info os.FileInfo) string {
	return fmt.Sprintf(`W/"%x-%x"`, info.Size(), info.ModTime().UnixMilli())
}

// strongETag hashes the file content with BLAKE2b-256 and rewinds f.
func strongETag(f io.ReadSeeker) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("create digest: %w", err)
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash content: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind: %w", err)
	}
	sum := hex.EncodeToString(h.Sum(nil))
	return `"` + sum[:strongETagLength] + `"`, nil
}

func computeETag(mode string, f io.ReadSeeker, info os.FileInfo) (string, error) {
	if mode == startup.ETagStrong {
		return strongETag(f)
	}
	return weakETag(info), nil
}
