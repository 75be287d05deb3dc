// Package hashing provides interchangeable content-digest strategies used
// for collision detection and sidecar audit entries.
package hashing

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
)

// defaultChunkSize bounds how much file content is held in memory per read.
const defaultChunkSize = 8192

// Computer digests a byte stream. Implementations must report their
// algorithm name so sidecar entries always record what actually ran.
type Computer interface {
	Sum(r io.Reader) (string, error)
	Algorithm() string
}

// computer is the shared chunked-read implementation behind both algorithms.
type computer struct {
	algorithm string
	factory   func() hash.Hash
	chunkSize int
}

// NewSHA256 returns the SHA-256 computer, the default for local files.
func NewSHA256() Computer {
	return &computer{algorithm: "sha256", factory: sha256.New, chunkSize: defaultChunkSize}
}

// NewMD5 returns the MD5 computer. MD5 is what most cloud remotes report,
// so it is the default for the remote backend; it is used for integrity
// bookkeeping only, not security.
func NewMD5() Computer {
	return &computer{algorithm: "md5", factory: md5.New, chunkSize: defaultChunkSize}
}

func (c *computer) Algorithm() string { return c.algorithm }

func (c *computer) Sum(r io.Reader) (string, error) {
	h := c.factory()
	buf := make([]byte, c.chunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", c.algorithm, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
