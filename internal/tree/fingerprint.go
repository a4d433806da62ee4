package tree

import (
	"encoding/hex"
	"fmt"
	"path"

	merkletree "github.com/txaty/go-merkletree"

	"treecomp/internal/fsys"
	"treecomp/internal/hash"
)

// leafBlock feeds one element into the merkle tree. For file trees the
// payload couples the relative path with the file's content digest, so the
// fingerprint changes when content changes even if membership does not.
type leafBlock struct {
	data []byte
}

func (l *leafBlock) Serialize() ([]byte, error) {
	return l.data, nil
}

// Fingerprint condenses the whole snapshot into a single hex digest: a
// merkle root over the sorted elements. Two file trees with the same
// membership and identical content fingerprint identically; directory trees
// fingerprint on membership alone. The empty tree has a fixed sentinel
// fingerprint.
func (t *Tree) Fingerprint(fs fsys.Filesystem, algo hash.Algorithm) (string, error) {
	if t.Size() == 0 {
		sum, err := hash.NodeHashFunc([]byte("empty-tree"))
		if err != nil {
			return "", fmt.Errorf("failed to hash empty tree: %w", err)
		}
		return hex.EncodeToString(sum), nil
	}

	blocks := make([]merkletree.DataBlock, 0, t.Size())
	for _, rel := range t.elements {
		payload := rel
		if t.kind == Files {
			digest, err := hash.File(fs, path.Join(t.root, rel), algo)
			if err != nil {
				return "", fmt.Errorf("failed to hash %s: %w", rel, err)
			}
			payload = rel + "\n" + digest
		}
		blocks = append(blocks, &leafBlock{data: []byte(payload)})
	}

	// The merkle library needs at least two leaves.
	if len(blocks) == 1 {
		data, _ := blocks[0].Serialize()
		sum, err := hash.NodeHashFunc(data)
		if err != nil {
			return "", fmt.Errorf("failed to hash single leaf: %w", err)
		}
		return hex.EncodeToString(sum), nil
	}

	m, err := merkletree.New(&merkletree.Config{
		HashFunc: hash.NodeHashFunc,
		Mode:     merkletree.ModeTreeBuild,
	}, blocks)
	if err != nil {
		return "", fmt.Errorf("failed to build fingerprint tree: %w", err)
	}

	return hex.EncodeToString(m.Root), nil
}
