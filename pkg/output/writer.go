// Package output writes discovered communities to disk, one file per
// percolation level, in the plain space-separated node-name format the
// original clique-percolation tool used.
package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dd0wney/percolate/pkg/errs"
	"github.com/dd0wney/percolate/pkg/ingest"
	"github.com/dd0wney/percolate/pkg/percolation"
)

// EnsureDir creates dir if it doesn't already exist, tolerating the
// case where it was created by a previous run.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return errs.IoError("output.EnsureDir", dir, err)
	}
	return nil
}

// WriteLevel writes one "commK" file under dir holding every community
// found at percolation level k, one per line, as whitespace-separated
// external node names resolved through index.
func WriteLevel(dir string, k int, communities []percolation.Community, index *ingest.NodeNameIndex) error {
	path := filepath.Join(dir, fmt.Sprintf("comm%d", k))
	f, err := os.Create(path)
	if err != nil {
		return errs.IoError("output.WriteLevel", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, community := range communities {
		for i, v := range community.Vertices {
			if i > 0 {
				if err := w.WriteByte(' '); err != nil {
					return errs.IoError("output.WriteLevel", path, err)
				}
			}
			if _, err := w.WriteString(index.NameOf(v)); err != nil {
				return errs.IoError("output.WriteLevel", path, err)
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return errs.IoError("output.WriteLevel", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return errs.IoError("output.WriteLevel", path, err)
	}
	return nil
}

// WriteAll writes every level result returned by percolation.Engine.Run.
func WriteAll(dir string, results []percolation.LevelResult, index *ingest.NodeNameIndex) error {
	if err := EnsureDir(dir); err != nil {
		return err
	}
	for _, r := range results {
		if err := WriteLevel(dir, r.K, r.Communities, index); err != nil {
			return err
		}
	}
	return nil
}
