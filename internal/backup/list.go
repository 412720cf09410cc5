package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ArchiveInfo describes one archive file on disk.
type ArchiveInfo struct {
	Path      string    `json:"path"`
	Size      int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
	Runs      int       `json:"runs"`
}

// List returns the archives in dir, newest first. Files that do not
// decode as archives are skipped.
func List(dir string) ([]ArchiveInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read archive directory: %w", err)
	}

	var infos []ArchiveInfo
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, e.Name())

		archive, err := readArchive(path)
		if err != nil {
			continue
		}

		fi, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat archive %s: %w", e.Name(), err)
		}

		infos = append(infos, ArchiveInfo{
			Path:      path,
			Size:      fi.Size(),
			CreatedAt: archive.CreatedAt,
			Runs:      len(archive.Runs),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}
