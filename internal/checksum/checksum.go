package checksum

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Sum returns the SHA256 hex digest of the given bytes.
func (g *Generator) Sum(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// SumFile hashes the contents of the file at path.
func (g *Generator) SumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// Verify checks data against an expected digest.
func (g *Generator) Verify(expected string, data []byte) bool {
	return g.Sum(data) == expected
}
