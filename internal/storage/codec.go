// Package storage abstracts where the dump, checkpoint and index files
// live (local disk or S3-compatible object storage) and how their bytes
// are framed (plain, gzip, zstd, xz, bzip2 or brotli).
package storage

import (
	"compress/gzip"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// nopWriteCloser adapts an io.Writer that has no Close method of its own.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NopWriteCloser wraps w so it satisfies io.WriteCloser without doing
// anything on Close.
func NopWriteCloser(w io.Writer) io.WriteCloser {
	return nopWriteCloser{w}
}

// DecompressByName wraps r with a decompressing reader chosen by the
// file extension in name. Unrecognized extensions are passed through
// unchanged, so a plain ".xml" dump works with no extra layer.
func DecompressByName(r io.Reader, name string) (io.Reader, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		return gzip.NewReader(r)
	case strings.HasSuffix(name, ".zst"):
		return zstd.NewReader(r, zstd.WithDecoderConcurrency(0))
	case strings.HasSuffix(name, ".xz"):
		return xz.NewReader(r)
	case strings.HasSuffix(name, ".bz2"):
		return bzip2.NewReader(r, &bzip2.ReaderConfig{})
	case strings.HasSuffix(name, ".br"):
		return brotli.NewReader(r), nil
	default:
		return r, nil
	}
}

// zstdReadCloser adapts *zstd.Decoder (whose Close method has no error
// return) to io.ReadCloser.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// DecompressCloserByName is like DecompressByName but always returns an
// io.ReadCloser. Its Close closes the decompressor; it closes rc as
// well only when the codec's reader has no Close of its own (xz,
// brotli) or when the extension is unrecognized and rc is returned as
// is. For gzip, zstd and bzip2 the caller still closes rc itself.
func DecompressCloserByName(rc io.ReadCloser, name string) (io.ReadCloser, error) {
	r, err := DecompressByName(rc, name)
	if err != nil {
		return nil, err
	}
	switch v := r.(type) {
	case io.ReadCloser:
		return v, nil
	case *zstd.Decoder:
		return zstdReadCloser{v}, nil
	default:
		return &readCloserWrapper{r, rc}, nil
	}
}

// readCloserWrapper pairs a plain io.Reader with the io.Closer of the
// stream it was built from (used for codecs whose Reader type doesn't
// itself implement Close, such as brotli.Reader).
type readCloserWrapper struct {
	io.Reader
	closer io.Closer
}

func (w *readCloserWrapper) Close() error {
	return w.closer.Close()
}

// CompressByName wraps w with a compressing writer chosen by the file
// extension in name. zstd, bzip2 and brotli are set to high-ratio
// levels; gzip and xz use their library defaults. Unrecognized
// extensions get a no-op WriteCloser.
func CompressByName(w io.Writer, name string) (io.WriteCloser, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		return gzip.NewWriter(w), nil
	case strings.HasSuffix(name, ".zst"):
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case strings.HasSuffix(name, ".xz"):
		return xz.NewWriter(w)
	case strings.HasSuffix(name, ".bz2"):
		return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: 9})
	case strings.HasSuffix(name, ".br"):
		return brotli.NewWriterLevel(w, 9), nil
	default:
		return NopWriteCloser(w), nil
	}
}
