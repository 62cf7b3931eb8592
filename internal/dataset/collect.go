package dataset

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// CollectInputs lists regular files directly inside dir, non-recursive.
// No extension filtering happens here; that is the Accept predicate's job.
func CollectInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list source directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// Shuffle permutes files in place. A nil rng uses the process global source,
// which is unseeded: two runs may order the same inputs differently.
func Shuffle(files []string, rng *rand.Rand) {
	swap := func(i, j int) { files[i], files[j] = files[j], files[i] }
	if rng == nil {
		rand.Shuffle(len(files), swap)
		return
	}
	rng.Shuffle(len(files), swap)
}

// IsJPEG accepts paths ending in ".jpg". Case-sensitive, so "IMG.JPG" is
// rejected the same way the splitter has always rejected it.
func IsJPEG(path string) bool {
	return strings.HasSuffix(path, ".jpg")
}
