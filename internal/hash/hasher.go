package hash

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"

	"treecomp/internal/fsys"
)

const chunkSize = 1024 // fixed read size for streaming

// Algorithm selects the digest used for content fingerprints.
type Algorithm int

const (
	MD5 Algorithm = iota
	SHA1
	SHA256
	XXH64
)

// DefaultAlgorithm is the digest used when the caller does not pick one.
const DefaultAlgorithm = MD5

func (a Algorithm) String() string {
	switch a {
	case MD5:
		return "md5"
	case SHA1:
		return "sha1"
	case SHA256:
		return "sha256"
	case XXH64:
		return "xxh64"
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// ParseAlgorithm maps a config or flag value to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case "md5", "":
		return MD5, nil
	case "sha1":
		return SHA1, nil
	case "sha256":
		return SHA256, nil
	case "xxh64", "xxhash":
		return XXH64, nil
	}
	return 0, fmt.Errorf("unknown hash algorithm %q", name)
}

func (a Algorithm) newHash() (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case XXH64:
		return xxhash.New(), nil
	}
	return nil, fmt.Errorf("unknown hash algorithm %q", a)
}

// File streams the named file through algo in fixed 1024-byte chunks and
// returns the digest as a lowercase hex string. The file is never loaded
// into memory at once.
func File(fsys fsys.Filesystem, path string, algo Algorithm) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	h, err := algo.newHash()
	if err != nil {
		return "", err
	}

	buf := make([]byte, chunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// NodeHashFunc is the hash function handed to go-merkletree when building
// tree fingerprints. It converts []byte input to an 8-byte big-endian
// xxHash digest.
func NodeHashFunc(data []byte) ([]byte, error) {
	h := xxhash.New()
	h.Write(data)
	sum := h.Sum64()

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, sum)
	return buf, nil
}
