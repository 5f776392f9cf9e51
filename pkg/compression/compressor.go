// Package compression provides in-process compression for accounting log
// files. It replaces external compressor binaries with library codecs so
// that no process-wide binary lookup or shell invocation is needed.
//
// Supported algorithms: Zstd, Gzip, LZ4, Snappy, S2, Xz and None, plus
// read-only Bzip2. Archived sacct dumps are usually zstd; OpenFile picks
// the decoder from the file extension so loaders never care which one
// was used.
package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"

	"github.com/slurmframe/slurmframe/pkg/errors"
)

// Algorithm represents a compression algorithm
type Algorithm string

const (
	// None represents no compression
	None Algorithm = "none"
	// Gzip represents gzip compression
	Gzip Algorithm = "gzip"
	// Snappy represents snappy compression
	Snappy Algorithm = "snappy"
	// LZ4 represents lz4 compression
	LZ4 Algorithm = "lz4"
	// Zstd represents zstandard compression
	Zstd Algorithm = "zstd"
	// S2 represents s2 compression (Snappy compatible)
	S2 Algorithm = "s2"
	// Xz represents xz (LZMA2) compression
	Xz Algorithm = "xz"
	// Bzip2 represents bzip2. Decompression only: the standard library
	// ships a reader but no writer.
	Bzip2 Algorithm = "bzip2"
)

// Level represents the speed/ratio trade-off of a compressor
type Level int

const (
	// Fastest prioritizes speed over compression ratio
	Fastest Level = 1
	// Default balances speed and compression
	Default Level = 5
	// Best maximizes compression ratio, the usual choice for archived logs
	Best Level = 9
)

// Compressor provides compression and decompression. Implementations are
// safe for concurrent use.
type Compressor interface {
	// Compress compresses data and returns the compressed bytes
	Compress(data []byte) ([]byte, error)

	// Decompress decompresses data and returns the original bytes
	Decompress(data []byte) ([]byte, error)

	// CompressStream compresses from reader to writer
	CompressStream(dst io.Writer, src io.Reader) error

	// DecompressStream decompresses from reader to writer
	DecompressStream(dst io.Writer, src io.Reader) error

	// Algorithm returns the compression algorithm used
	Algorithm() Algorithm
}

// Config represents compressor configuration
type Config struct {
	Algorithm Algorithm
	Level     Level
}

// DefaultConfig returns the default configuration: zstd at best level,
// matching how accounting archives are stored.
func DefaultConfig() *Config {
	return &Config{
		Algorithm: Zstd,
		Level:     Best,
	}
}

// NewCompressor creates a compressor for the configured algorithm. A nil
// config uses the defaults.
func NewCompressor(config *Config) (Compressor, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Algorithm {
	case None:
		return &noneCompressor{}, nil
	case Gzip:
		return newGzipCompressor(config)
	case Snappy:
		return &snappyCompressor{}, nil
	case LZ4:
		return newLZ4Compressor(config)
	case Zstd:
		return newZstdCompressor(config)
	case S2:
		return &s2Compressor{}, nil
	case Xz:
		return &xzCompressor{baseCompressor{algorithm: Xz}}, nil
	case Bzip2:
		return &bzip2Compressor{baseCompressor{algorithm: Bzip2}}, nil
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig,
			"unsupported compression algorithm: %s", config.Algorithm)
	}
}

type baseCompressor struct {
	algorithm Algorithm
}

func (bc *baseCompressor) Algorithm() Algorithm {
	return bc.algorithm
}

// None compressor (pass-through)
type noneCompressor struct {
	baseCompressor
}

func (nc *noneCompressor) Compress(data []byte) ([]byte, error)   { return data, nil }
func (nc *noneCompressor) Decompress(data []byte) ([]byte, error) { return data, nil }

func (nc *noneCompressor) CompressStream(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, src)
	return err
}

func (nc *noneCompressor) DecompressStream(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, src)
	return err
}

// Gzip compressor
type gzipCompressor struct {
	baseCompressor
	level      int
	writerPool sync.Pool
}

func newGzipCompressor(config *Config) (*gzipCompressor, error) {
	level := gzip.DefaultCompression
	switch {
	case config.Level <= Fastest:
		level = gzip.BestSpeed
	case config.Level >= Best:
		level = gzip.BestCompression
	}

	gc := &gzipCompressor{
		baseCompressor: baseCompressor{algorithm: Gzip},
		level:          level,
	}
	gc.writerPool.New = func() interface{} {
		w, _ := gzip.NewWriterLevel(nil, level)
		return w
	}
	return gc, nil
}

func (gc *gzipCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := gc.CompressStream(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gc *gzipCompressor) Decompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := gc.DecompressStream(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gc *gzipCompressor) CompressStream(dst io.Writer, src io.Reader) error {
	w := gc.writerPool.Get().(*gzip.Writer)
	defer gc.writerPool.Put(w)

	w.Reset(dst)
	if _, err := io.Copy(w, src); err != nil {
		return err
	}
	return w.Close()
}

func (gc *gzipCompressor) DecompressStream(dst io.Writer, src io.Reader) error {
	r, err := gzip.NewReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	_, err = io.Copy(dst, r) //nolint:gosec // G110: inputs are operator-supplied archives
	return err
}

// Zstd compressor
type zstdCompressor struct {
	baseCompressor
	encoderLevel zstd.EncoderLevel
}

func newZstdCompressor(config *Config) (*zstdCompressor, error) {
	level := zstd.SpeedDefault
	switch {
	case config.Level <= Fastest:
		level = zstd.SpeedFastest
	case config.Level >= Best:
		level = zstd.SpeedBestCompression
	}
	return &zstdCompressor{
		baseCompressor: baseCompressor{algorithm: Zstd},
		encoderLevel:   level,
	}, nil
}

func (zc *zstdCompressor) Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zc.encoderLevel))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func (zc *zstdCompressor) Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

func (zc *zstdCompressor) CompressStream(dst io.Writer, src io.Reader) error {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zc.encoderLevel))
	if err != nil {
		return err
	}
	if _, err := io.Copy(enc, src); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func (zc *zstdCompressor) DecompressStream(dst io.Writer, src io.Reader) error {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return err
	}
	defer dec.Close()

	_, err = io.Copy(dst, dec) //nolint:gosec // G110: inputs are operator-supplied archives
	return err
}

// LZ4 compressor
type lz4Compressor struct {
	baseCompressor
	level lz4.CompressionLevel
}

func newLZ4Compressor(config *Config) (*lz4Compressor, error) {
	level := lz4.Fast
	if config.Level >= Best {
		level = lz4.Level9
	}
	return &lz4Compressor{
		baseCompressor: baseCompressor{algorithm: LZ4},
		level:          level,
	}, nil
}

func (lc *lz4Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := lc.CompressStream(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (lc *lz4Compressor) Decompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := lc.DecompressStream(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (lc *lz4Compressor) CompressStream(dst io.Writer, src io.Reader) error {
	w := lz4.NewWriter(dst)
	if err := w.Apply(lz4.CompressionLevelOption(lc.level)); err != nil {
		return err
	}
	if _, err := io.Copy(w, src); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (lc *lz4Compressor) DecompressStream(dst io.Writer, src io.Reader) error {
	r := lz4.NewReader(src)
	_, err := io.Copy(dst, r) //nolint:gosec // G110: inputs are operator-supplied archives
	return err
}

// Snappy compressor (block format)
type snappyCompressor struct {
	baseCompressor
}

func (sc *snappyCompressor) Algorithm() Algorithm { return Snappy }

func (sc *snappyCompressor) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func (sc *snappyCompressor) Decompress(data []byte) ([]byte, error) {
	return snappy.Decode(nil, data)
}

func (sc *snappyCompressor) CompressStream(dst io.Writer, src io.Reader) error {
	w := snappy.NewBufferedWriter(dst)
	if _, err := io.Copy(w, src); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (sc *snappyCompressor) DecompressStream(dst io.Writer, src io.Reader) error {
	r := snappy.NewReader(src)
	_, err := io.Copy(dst, r) //nolint:gosec // G110: inputs are operator-supplied archives
	return err
}

// S2 compressor (snappy-compatible, faster)
type s2Compressor struct {
	baseCompressor
}

func (sc *s2Compressor) Algorithm() Algorithm { return S2 }

func (sc *s2Compressor) Compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

func (sc *s2Compressor) Decompress(data []byte) ([]byte, error) {
	return s2.Decode(nil, data)
}

func (sc *s2Compressor) CompressStream(dst io.Writer, src io.Reader) error {
	w := s2.NewWriter(dst)
	if _, err := io.Copy(w, src); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (sc *s2Compressor) DecompressStream(dst io.Writer, src io.Reader) error {
	r := s2.NewReader(src)
	_, err := io.Copy(dst, r) //nolint:gosec // G110: inputs are operator-supplied archives
	return err
}

// Xz compressor
type xzCompressor struct {
	baseCompressor
}

func (xc *xzCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := xc.CompressStream(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (xc *xzCompressor) Decompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := xc.DecompressStream(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (xc *xzCompressor) CompressStream(dst io.Writer, src io.Reader) error {
	w, err := xz.NewWriter(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, src); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (xc *xzCompressor) DecompressStream(dst io.Writer, src io.Reader) error {
	r, err := xz.NewReader(src)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, r) //nolint:gosec // G110: inputs are operator-supplied archives
	return err
}

// Bzip2 compressor. Archives written elsewhere can be read, but bzip2
// output cannot be produced.
type bzip2Compressor struct {
	baseCompressor
}

func (bc *bzip2Compressor) Compress([]byte) ([]byte, error) {
	return nil, errors.New(errors.ErrorTypeConfig, "bzip2 supports decompression only")
}

func (bc *bzip2Compressor) CompressStream(io.Writer, io.Reader) error {
	return errors.New(errors.ErrorTypeConfig, "bzip2 supports decompression only")
}

func (bc *bzip2Compressor) Decompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := bc.DecompressStream(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (bc *bzip2Compressor) DecompressStream(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, bzip2.NewReader(src)) //nolint:gosec // G110: inputs are operator-supplied archives
	return err
}
