package compression

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/slurmframe/slurmframe/pkg/errors"
	"github.com/slurmframe/slurmframe/pkg/logger"
)

// extensions maps file extensions to their compression algorithm. Archived
// accounting logs in the wild carry any of these.
var extensions = map[string]Algorithm{
	".gz":   Gzip,
	".zst":  Zstd,
	".zstd": Zstd,
	".lz4":  LZ4,
	".sz":   Snappy,
	".s2":   S2,
	".xz":   Xz,
	".bz2":  Bzip2,
}

// defaultExtension maps an algorithm to the extension CompressFile appends
var defaultExtension = map[Algorithm]string{
	Gzip:   ".gz",
	Zstd:   ".zst",
	LZ4:    ".lz4",
	Snappy: ".sz",
	S2:     ".s2",
	Xz:     ".xz",
}

// ForExtension returns the algorithm implied by the path's extension. The
// second return is false for plain/unknown extensions.
func ForExtension(path string) (Algorithm, bool) {
	alg, ok := extensions[filepath.Ext(path)]
	return alg, ok
}

// Registry lazily constructs and caches one compressor per algorithm. It
// replaces a process-global lookup with an injectable object: components
// that open files share a registry instead of each building codecs.
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	cache map[Algorithm]Compressor
	level Level
}

// NewRegistry creates a registry building compressors at the given level
func NewRegistry(level Level) *Registry {
	return &Registry{
		cache: make(map[Algorithm]Compressor),
		level: level,
	}
}

// For returns the cached compressor for an algorithm, constructing it on
// first use.
func (r *Registry) For(alg Algorithm) (Compressor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.cache[alg]; ok {
		return c, nil
	}
	c, err := NewCompressor(&Config{Algorithm: alg, Level: r.level})
	if err != nil {
		return nil, err
	}
	r.cache[alg] = c
	return c, nil
}

// DefaultRegistry is the registry used by the package-level file helpers
var DefaultRegistry = NewRegistry(Best)

type decodedReader struct {
	io.Reader
	closers []io.Closer
}

func (d *decodedReader) Close() error {
	var first error
	for _, c := range d.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenFile opens a possibly compressed file for reading, choosing the
// decoder from the extension. Files with an unrecognized extension are
// opened as-is.
func OpenFile(path string) (io.ReadCloser, error) {
	return DefaultRegistry.OpenFile(path)
}

// OpenFile opens a possibly compressed file through this registry's codecs
func (r *Registry) OpenFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "open input file")
	}

	alg, ok := ForExtension(path)
	if !ok {
		return f, nil
	}

	// Decode through a pipe so callers see plain bytes
	pr, pw := io.Pipe()
	comp, err := r.For(alg)
	if err != nil {
		f.Close()
		return nil, err
	}
	go func() {
		err := comp.DecompressStream(pw, f)
		pw.CloseWithError(err)
	}()
	return &decodedReader{Reader: pr, closers: []io.Closer{pr, f}}, nil
}

// FileOptions controls CompressFile and DecompressFile behavior
type FileOptions struct {
	// Algorithm selects the codec; empty means Zstd
	Algorithm Algorithm
	// Overwrite removes an existing destination instead of failing
	Overwrite bool
	// Keep leaves the source file in place after a successful conversion
	Keep bool
}

// CompressFile compresses path into path plus the algorithm's extension.
// When both the file and its compressed form already exist the compressed
// copy may be incomplete, so it is an error unless Overwrite is set. The
// source is removed afterwards unless Keep is set.
func CompressFile(path string, opts *FileOptions) error {
	if opts == nil {
		opts = &FileOptions{}
	}
	alg := opts.Algorithm
	if alg == "" {
		alg = Zstd
	}
	ext, ok := defaultExtension[alg]
	if !ok {
		return errors.Newf(errors.ErrorTypeConfig, "no file extension for algorithm %s", alg)
	}
	dst := path + ext

	if err := prepareDestination(path, dst, opts.Overwrite); err != nil {
		return err
	}

	logger.Debug("compressing file", zap.String("path", path), zap.String("algorithm", string(alg)))
	comp, err := DefaultRegistry.For(alg)
	if err != nil {
		return err
	}
	if err := convertFile(path, dst, comp.CompressStream); err != nil {
		return err
	}
	if !opts.Keep {
		if err := os.Remove(path); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "remove source after compression")
		}
	}
	return nil
}

// DecompressFile decompresses path (which must carry a recognized
// extension) next to itself, honoring the same Overwrite/Keep semantics
// as CompressFile.
func DecompressFile(path string, opts *FileOptions) error {
	if opts == nil {
		opts = &FileOptions{}
	}
	alg, ok := ForExtension(path)
	if !ok {
		return errors.Newf(errors.ErrorTypeFile, "unrecognized compressed extension on %q", path)
	}
	dst := path[:len(path)-len(filepath.Ext(path))]

	if err := prepareDestination(path, dst, opts.Overwrite); err != nil {
		return err
	}

	logger.Debug("decompressing file", zap.String("path", path), zap.String("algorithm", string(alg)))
	comp, err := DefaultRegistry.For(alg)
	if err != nil {
		return err
	}
	if err := convertFile(path, dst, comp.DecompressStream); err != nil {
		return err
	}
	if !opts.Keep {
		if err := os.Remove(path); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "remove source after decompression")
		}
	}
	return nil
}

func prepareDestination(src, dst string, overwrite bool) error {
	if _, err := os.Stat(dst); err == nil {
		if !overwrite {
			return errors.Newf(errors.ErrorTypeFile,
				"both %q and %q exist; the converted copy may be incomplete, delete it and retry", src, dst)
		}
		if err := os.Remove(dst); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "remove existing destination")
		}
	}
	return nil
}

func convertFile(src, dst string, stream func(io.Writer, io.Reader) error) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "open source")
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "create destination")
	}
	if err := stream(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return errors.Wrap(err, errors.ErrorTypeFile, "convert file")
	}
	return out.Close()
}
