package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage is the blob store this program reads dumps from and writes
// checkpoints and indexes to. Modeled on the S3 interface in the
// Wikidata QRank builder: a small subset of operations, easy to fake
// in tests, with the network client as just one implementation.
type Storage interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Create(ctx context.Context, path string) (io.WriteCloser, error)
}

// LocalStorage reads and writes plain files on local disk.
type LocalStorage struct{}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{}
}

func (LocalStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (LocalStorage) Create(ctx context.Context, path string) (io.WriteCloser, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

// minioClient is the subset of *minio.Client used by S3Storage, broken
// out as an interface for easier testing (see fakeMinio in
// storage_test.go).
type minioClient interface {
	GetObject(ctx context.Context, bucket, object string, opts minio.GetObjectOptions) (*minio.Object, error)
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// S3Storage reads and writes objects in an S3-compatible bucket.
type S3Storage struct {
	client minioClient
	bucket string
}

// NewS3Storage connects to an S3-compatible endpoint using static
// credentials, the same configuration shape as the Wikidata QRank
// builder's NewStorageClient.
func NewS3Storage(endpoint, accessKey, secretKey, bucket string, secure bool) (*S3Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, err
	}
	return &S3Storage{client: client, bucket: bucket}, nil
}

func (s *S3Storage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	// Downloading to a local temp file first, rather than streaming the
	// object directly, decouples parsing from network hiccups the same
	// way NewS3Reader does in the Wikidata QRank builder.
	obj, err := s.client.GetObject(ctx, s.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	temp, err := os.CreateTemp("", "skwiki-s3-*")
	if err != nil {
		obj.Close()
		return nil, err
	}
	if _, err := io.Copy(temp, obj); err != nil {
		obj.Close()
		temp.Close()
		os.Remove(temp.Name())
		return nil, err
	}
	obj.Close()
	if _, err := temp.Seek(0, io.SeekStart); err != nil {
		temp.Close()
		os.Remove(temp.Name())
		return nil, err
	}
	return &tempFileReader{file: temp}, nil
}

func (s *S3Storage) Create(ctx context.Context, path string) (io.WriteCloser, error) {
	return &s3Writer{ctx: ctx, client: s.client, bucket: s.bucket, object: path}, nil
}

// tempFileReader deletes its backing temp file on Close, mirroring the
// QRank builder's tempFileReader.
type tempFileReader struct {
	file *os.File
}

func (r *tempFileReader) Read(buf []byte) (int, error) {
	if r.file == nil {
		return 0, fmt.Errorf("storage: read from closed file")
	}
	return r.file.Read(buf)
}

func (r *tempFileReader) Close() error {
	if r.file == nil {
		return nil
	}
	name := r.file.Name()
	err := r.file.Close()
	r.file = nil
	if rmErr := os.Remove(name); err == nil {
		err = rmErr
	}
	return err
}

// s3Writer buffers to a local temp file and uploads it on Close, since
// minio's PutObject wants a io.Reader with a known size up front.
type s3Writer struct {
	ctx     context.Context
	client  minioClient
	bucket  string
	object  string
	temp    *os.File
	openErr error
}

func (w *s3Writer) ensureTemp() error {
	if w.temp != nil || w.openErr != nil {
		return w.openErr
	}
	temp, err := os.CreateTemp("", "skwiki-s3-put-*")
	if err != nil {
		w.openErr = err
		return err
	}
	w.temp = temp
	return nil
}

func (w *s3Writer) Write(p []byte) (int, error) {
	if err := w.ensureTemp(); err != nil {
		return 0, err
	}
	return w.temp.Write(p)
}

func (w *s3Writer) Close() error {
	if err := w.ensureTemp(); err != nil {
		return err
	}
	defer os.Remove(w.temp.Name())
	size, err := w.temp.Seek(0, io.SeekCurrent)
	if err != nil {
		w.temp.Close()
		return err
	}
	if _, err := w.temp.Seek(0, io.SeekStart); err != nil {
		w.temp.Close()
		return err
	}
	_, err = w.client.PutObject(w.ctx, w.bucket, w.object, w.temp, size, minio.PutObjectOptions{})
	closeErr := w.temp.Close()
	if err != nil {
		return err
	}
	return closeErr
}

// NewStorage resolves to S3Storage when endpoint is non-empty, else
// LocalStorage — the selection rule from SPEC_FULL.md's storage_endpoint
// configuration key.
func NewStorage(endpoint, accessKey, secretKey, bucket string) (Storage, error) {
	if endpoint == "" {
		return NewLocalStorage(), nil
	}
	return NewS3Storage(endpoint, accessKey, secretKey, bucket, true)
}
