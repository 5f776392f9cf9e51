package compression

import (
	"bytes"
	"io"
	"testing"
)

func TestRoundTripAllAlgorithms(t *testing.T) {
	original := bytes.Repeat([]byte("JobID|User|State|ReqMem|Elapsed\n123|alice|COMPLETED|4Gn|1-02:03:04\n"), 50)

	for _, alg := range []Algorithm{None, Gzip, Snappy, LZ4, Zstd, S2, Xz} {
		t.Run(string(alg), func(t *testing.T) {
			comp, err := NewCompressor(&Config{Algorithm: alg, Level: Default})
			if err != nil {
				t.Fatalf("failed to create %s compressor: %v", alg, err)
			}

			compressed, err := comp.Compress(original)
			if err != nil {
				t.Fatalf("failed to compress: %v", err)
			}
			decompressed, err := comp.Decompress(compressed)
			if err != nil {
				t.Fatalf("failed to decompress: %v", err)
			}
			if !bytes.Equal(original, decompressed) {
				t.Errorf("decompressed data doesn't match original")
			}

			// Streaming round trip
			var compressedBuf bytes.Buffer
			if err := comp.CompressStream(&compressedBuf, bytes.NewReader(original)); err != nil {
				t.Fatalf("failed to compress stream: %v", err)
			}
			var decompressedBuf bytes.Buffer
			if err := comp.DecompressStream(&decompressedBuf, &compressedBuf); err != nil {
				t.Fatalf("failed to decompress stream: %v", err)
			}
			if !bytes.Equal(original, decompressedBuf.Bytes()) {
				t.Errorf("stream decompressed data doesn't match original")
			}
		})
	}
}

func TestUnsupportedAlgorithm(t *testing.T) {
	_, err := NewCompressor(&Config{Algorithm: "brotli"})
	if err == nil {
		t.Fatal("expected an error for an unsupported algorithm")
	}
}

// produced by bzip2 -9 from "JobID|State\n1|COMPLETED\n"
var bzip2Fixture = []byte{
	0x42, 0x5a, 0x68, 0x39, 0x31, 0x41, 0x59, 0x26, 0x53, 0x59, 0x19, 0x12, 0xb2, 0x5a, 0x00, 0x00,
	0x04, 0xcf, 0x80, 0x00, 0x10, 0x20, 0x00, 0x0e, 0x36, 0xcc, 0x00, 0x32, 0x00, 0x84, 0x04, 0x20,
	0x00, 0x31, 0x4c, 0x98, 0x99, 0x06, 0x46, 0x14, 0x06, 0x86, 0x8d, 0xa9, 0x9a, 0x9e, 0xbd, 0x4a,
	0x64, 0x2b, 0xa0, 0x1d, 0x0a, 0xa4, 0xd1, 0xe0, 0x98, 0xf8, 0xbb, 0x92, 0x29, 0xc2, 0x84, 0x80,
	0xc8, 0x95, 0x92, 0xd0,
}

func TestBzip2DecompressOnly(t *testing.T) {
	comp, err := NewCompressor(&Config{Algorithm: Bzip2})
	if err != nil {
		t.Fatalf("failed to create bzip2 compressor: %v", err)
	}

	got, err := comp.Decompress(bzip2Fixture)
	if err != nil {
		t.Fatalf("failed to decompress: %v", err)
	}
	if string(got) != "JobID|State\n1|COMPLETED\n" {
		t.Errorf("decompressed data doesn't match original: %q", got)
	}

	if _, err := comp.Compress([]byte("x")); err == nil {
		t.Fatal("expected an error: bzip2 has no encoder")
	}
	if err := comp.CompressStream(io.Discard, bytes.NewReader([]byte("x"))); err == nil {
		t.Fatal("expected a stream error: bzip2 has no encoder")
	}
}

func TestDefaultConfigIsZstd(t *testing.T) {
	comp, err := NewCompressor(nil)
	if err != nil {
		t.Fatalf("failed to create default compressor: %v", err)
	}
	if comp.Algorithm() != Zstd {
		t.Errorf("expected zstd default, got %s", comp.Algorithm())
	}
}
