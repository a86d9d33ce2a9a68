// Package verify checks that two directory trees hold identical file
// contents. Each regular file is hashed with xxHash, and the sorted per-file
// hashes are folded into a Merkle root so two trees can be compared by a
// single digest before diffing file by file.
package verify

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/cespare/xxhash/v2"
	mt "github.com/txaty/go-merkletree"
	"golang.org/x/sync/errgroup"
)

// Summary describes one hashed tree.
type Summary struct {
	// Root is the hex Merkle root over the sorted per-file hashes.
	Root string
	// Files maps relative path to the hex xxHash of its content.
	Files map[string]string
}

// Diff is the result of comparing two Summaries.
type Diff struct {
	// Missing lists paths present in the source but not the destination.
	Missing []string
	// Extra lists paths present in the destination but not the source.
	Extra []string
	// Mismatched lists paths whose contents differ.
	Mismatched []string
}

// Clean reports whether the two trees matched.
func (d *Diff) Clean() bool {
	return len(d.Missing) == 0 && len(d.Extra) == 0 && len(d.Mismatched) == 0
}

// Tree hashes every regular file under root. Symlinks are not followed and
// directories contribute nothing; only file contents are verified. Hashing
// runs on up to workers goroutines (NumCPU when workers <= 0).
func Tree(ctx context.Context, root string, workers int) (*Summary, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	hashes := make([]string, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rel := range paths {
		i, rel := i, rel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, err := hashFile(filepath.Join(root, rel))
			if err != nil {
				return fmt.Errorf("failed to hash %s: %w", rel, err)
			}
			hashes[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make(map[string]string, len(paths))
	for i, rel := range paths {
		files[rel] = hashes[i]
	}

	rootHash, err := merkleRoot(files)
	if err != nil {
		return nil, err
	}

	return &Summary{Root: rootHash, Files: files}, nil
}

// Compare diffs a destination Summary against a source Summary.
func Compare(src, dest *Summary) *Diff {
	var d Diff
	for rel, h := range src.Files {
		dh, ok := dest.Files[rel]
		switch {
		case !ok:
			d.Missing = append(d.Missing, rel)
		case dh != h:
			d.Mismatched = append(d.Mismatched, rel)
		}
	}
	for rel := range dest.Files {
		if _, ok := src.Files[rel]; !ok {
			d.Extra = append(d.Extra, rel)
		}
	}
	sort.Strings(d.Missing)
	sort.Strings(d.Extra)
	sort.Strings(d.Mismatched)
	return &d
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// xxHashFunc adapts xxHash to go-merkletree's hash function signature.
func xxHashFunc(data []byte) ([]byte, error) {
	h := xxhash.New()
	h.Write(data)
	return h.Sum(nil), nil
}

// leaf is one (path, hash) pair fed to the Merkle tree.
type leaf struct {
	rel  string
	hash string
}

func (l leaf) Serialize() ([]byte, error) {
	return []byte(l.rel + "\x00" + l.hash), nil
}

// merkleRoot folds the sorted per-file hashes into a single digest.
// go-merkletree needs at least two blocks, so empty and single-file trees
// are digested directly.
func merkleRoot(files map[string]string) (string, error) {
	paths := make([]string, 0, len(files))
	for rel := range files {
		paths = append(paths, rel)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		sum, err := xxHashFunc([]byte("empty-tree"))
		if err != nil {
			return "", err
		}
		return hex.EncodeToString(sum), nil
	}

	blocks := make([]mt.DataBlock, len(paths))
	for i, rel := range paths {
		blocks[i] = leaf{rel: rel, hash: files[rel]}
	}

	if len(blocks) == 1 {
		data, err := blocks[0].Serialize()
		if err != nil {
			return "", err
		}
		sum, err := xxHashFunc(data)
		if err != nil {
			return "", err
		}
		return hex.EncodeToString(sum), nil
	}

	tree, err := mt.New(&mt.Config{HashFunc: xxHashFunc}, blocks)
	if err != nil {
		return "", fmt.Errorf("failed to build merkle tree: %w", err)
	}
	return hex.EncodeToString(tree.Root), nil
}
