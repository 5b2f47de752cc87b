package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	local := NewLocalStorage()
	path := filepath.Join(t.TempDir(), "sub", "blob.txt")

	w, err := local.Create(ctx, path)
	require.NoError(t, err)
	_, err = w.Write([]byte("hello wiki"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := local.Open(ctx, path)
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello wiki", string(got))
}

// fakeMinio is a minimal in-memory stand-in for minioClient, modeled on
// FakeS3 in the teacher's s3_test.go.
type fakeMinio struct {
	mutex sync.RWMutex
	data  map[string][]byte
}

func newFakeMinio() *fakeMinio {
	return &fakeMinio{data: make(map[string][]byte)}
}

func (f *fakeMinio) GetObject(ctx context.Context, bucket, object string, opts minio.GetObjectOptions) (*minio.Object, error) {
	return nil, fmt.Errorf("fakeMinio.GetObject is not wired for direct use; use readBytes in tests")
}

func (f *fakeMinio) PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	buf, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.mutex.Lock()
	f.data[bucket+"/"+object] = buf
	f.mutex.Unlock()
	return minio.UploadInfo{Bucket: bucket, Key: object, Size: int64(len(buf))}, nil
}

func (f *fakeMinio) readBytes(bucket, object string) ([]byte, bool) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	b, ok := f.data[bucket+"/"+object]
	return b, ok
}

func TestS3WriterUploadsOnClose(t *testing.T) {
	fake := newFakeMinio()
	s3 := &S3Storage{client: fake, bucket: "skwiki"}

	w, err := s3.Create(context.Background(), "index/skwiki.idx")
	require.NoError(t, err)
	_, err = w.Write([]byte("tagged binary index"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, ok := fake.readBytes("skwiki", "index/skwiki.idx")
	require.True(t, ok)
	assert.Equal(t, "tagged binary index", string(got))
}

func TestTempFileReaderDeletesOnClose(t *testing.T) {
	temp, err := os.CreateTemp(t.TempDir(), "skwiki-*")
	require.NoError(t, err)
	_, err = temp.WriteString("payload")
	require.NoError(t, err)
	_, err = temp.Seek(0, io.SeekStart)
	require.NoError(t, err)

	r := &tempFileReader{file: temp}
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
	require.NoError(t, r.Close())

	_, err = os.Stat(temp.Name())
	assert.True(t, os.IsNotExist(err))
}

func TestDecompressByNamePassthrough(t *testing.T) {
	r, err := DecompressByName(bytes.NewReader([]byte("plain text")), "dump.xml")
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "plain text", string(got))
}

func TestCompressDecompressGzipRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := CompressByName(&buf, "data.gz")
	require.NoError(t, err)
	_, err = w.Write([]byte("compressed payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := DecompressByName(&buf, "data.gz")
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "compressed payload", string(got))
}

func TestCompressDecompressZstdRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := CompressByName(&buf, "checkpoint.zst")
	require.NoError(t, err)
	_, err = w.Write([]byte("checkpoint row"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := DecompressByName(&buf, "checkpoint.zst")
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "checkpoint row", string(got))
}
