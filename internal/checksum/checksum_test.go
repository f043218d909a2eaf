package checksum

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSum(t *testing.T) {
	gen := NewGenerator()

	data := []byte("front page bytes")

	hash1 := gen.Sum(data)
	hash2 := gen.Sum(data)

	if hash1 != hash2 {
		t.Errorf("Hash not deterministic: %s != %s", hash1, hash2)
	}
	if len(hash1) != 64 {
		t.Errorf("Hash wrong length: %d, expected 64", len(hash1))
	}

	if hash1 == gen.Sum([]byte("other bytes")) {
		t.Errorf("Hash should change when content changes")
	}
}

func TestSumFile(t *testing.T) {
	gen := NewGenerator()

	data := []byte("front page bytes")
	path := filepath.Join(t.TempDir(), "paper_fp.jpg")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	fileHash, err := gen.SumFile(path)
	if err != nil {
		t.Fatalf("SumFile error: %v", err)
	}
	if fileHash != gen.Sum(data) {
		t.Errorf("SumFile = %s, want %s", fileHash, gen.Sum(data))
	}

	if _, err := gen.SumFile(filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Errorf("SumFile should fail for a missing file")
	}
}

func TestVerify(t *testing.T) {
	gen := NewGenerator()

	data := []byte("front page bytes")
	hash := gen.Sum(data)

	if !gen.Verify(hash, data) {
		t.Errorf("Verify failed for correct data")
	}
	if gen.Verify(hash, []byte("tampered")) {
		t.Errorf("Verify should fail for different data")
	}
}
