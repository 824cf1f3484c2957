// Package filesystem offers local files to the photo pipeline, either
// named directly or picked up from a watched folder.
package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/motocheck/internal/core/ports/driving"
)

// Candidate describes a local file as a photo candidate. The media type
// is sniffed from the file contents; unreadable files get an empty type
// and fail when the pipeline opens them.
func Candidate(path string) driving.PhotoCandidate {
	mediaType := ""
	if m, err := mimetype.DetectFile(path); err == nil {
		mediaType = m.String()
	}
	return driving.PhotoCandidate{
		Name:      filepath.Base(path),
		MediaType: mediaType,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// Candidates describes each path in order.
func Candidates(paths []string) []driving.PhotoCandidate {
	out := make([]driving.PhotoCandidate, 0, len(paths))
	for _, p := range paths {
		out = append(out, Candidate(p))
	}
	return out
}

// isHidden reports dotfiles, which editors and cameras use for temporary
// and metadata files.
func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
