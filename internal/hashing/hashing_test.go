package hashing

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestSumKnownValues(t *testing.T) {
	tests := []struct {
		name     string
		computer Computer
		input    string
		want     string
	}{
		{
			name:     "sha256 empty",
			computer: NewSHA256(),
			input:    "",
			want:     "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "sha256 abc",
			computer: NewSHA256(),
			input:    "abc",
			want:     "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name:     "md5 empty",
			computer: NewMD5(),
			input:    "",
			want:     "d41d8cd98f00b204e9800998ecf8427e",
		},
		{
			name:     "md5 abc",
			computer: NewMD5(),
			input:    "abc",
			want:     "900150983cd24fb0d6963f7d28e17f72",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.computer.Sum(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Sum() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Sum(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAlgorithmNames(t *testing.T) {
	if got := NewSHA256().Algorithm(); got != "sha256" {
		t.Errorf("sha256 Algorithm() = %q", got)
	}
	if got := NewMD5().Algorithm(); got != "md5" {
		t.Errorf("md5 Algorithm() = %q", got)
	}
}

// Content much larger than the chunk buffer must hash identically to a
// single-shot read.
func TestSumChunked(t *testing.T) {
	content := strings.Repeat("0123456789abcdef", 4096) // 64 KiB
	c := NewSHA256()

	whole, err := c.Sum(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Sum() error = %v", err)
	}
	trickled, err := c.Sum(iotest.OneByteReader(strings.NewReader(content)))
	if err != nil {
		t.Fatalf("Sum() one-byte error = %v", err)
	}
	if whole != trickled {
		t.Errorf("chunked hash mismatch: %q vs %q", whole, trickled)
	}
}

func TestSumReadError(t *testing.T) {
	wantErr := errors.New("disk gone")
	_, err := NewSHA256().Sum(iotest.ErrReader(wantErr))
	if !errors.Is(err, wantErr) {
		t.Errorf("Sum() error = %v, want wrapped %v", err, wantErr)
	}
}
