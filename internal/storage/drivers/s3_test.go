package drivers

import (
	"context"
	"errors"
	"io"
	"strconv"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves listings in pages of pageSize keys and records writes
type fakeS3 struct {
	keys     []string
	pageSize int
	listErr  error
	putErr   error

	listCalls int
	maxKeys   []int32
	puts      map[string][]byte
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.listCalls++
	if params.MaxKeys != nil {
		f.maxKeys = append(f.maxKeys, *params.MaxKeys)
	}
	if f.listErr != nil {
		return nil, f.listErr
	}

	start := 0
	if params.ContinuationToken != nil {
		var err error
		start, err = strconv.Atoi(*params.ContinuationToken)
		if err != nil {
			return nil, err
		}
	}

	end := min(start+f.pageSize, len(f.keys))
	out := &s3.ListObjectsV2Output{KeyCount: aws.Int32(int32(end - start))}
	for _, key := range f.keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
	}
	if end < len(f.keys) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(strconv.Itoa(end))
	} else {
		out.IsTruncated = aws.Bool(false)
	}

	return out, nil
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	if f.puts == nil {
		f.puts = make(map[string][]byte)
	}
	f.puts[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3ListKeysFollowsContinuationTokens(t *testing.T) {
	api := &fakeS3{keys: []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}, pageSize: 2}
	client := NewS3ClientWithAPI(api, "photos", 2)

	keys, err := client.ListKeys(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}, keys)
	assert.Equal(t, 3, api.listCalls)
	assert.Equal(t, []int32{2, 2, 2}, api.maxKeys)
}

func TestS3ListKeysEmptyBucket(t *testing.T) {
	api := &fakeS3{pageSize: 1000}
	client := NewS3ClientWithAPI(api, "empty-bucket", 0)

	keys, err := client.ListKeys(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, keys)
	assert.Empty(t, keys)
	assert.Equal(t, 1, api.listCalls)
	assert.Equal(t, []int32{1000}, api.maxKeys)
}

func TestS3ListKeysError(t *testing.T) {
	denied := errors.New("AccessDenied")
	client := NewS3ClientWithAPI(&fakeS3{listErr: denied, pageSize: 10}, "photos", 10)

	keys, err := client.ListKeys(context.Background())

	assert.ErrorIs(t, err, denied)
	assert.Nil(t, keys)
}

func TestS3PutObject(t *testing.T) {
	api := &fakeS3{}
	client := NewS3ClientWithAPI(api, "photos", 10)

	require.NoError(t, client.PutObject(context.Background(), "2024/a.jpg", []byte("jpeg")))

	assert.Equal(t, []byte("jpeg"), api.puts["photos/2024/a.jpg"])
	assert.Equal(t, "photos", client.Bucket())
}

func TestS3PutObjectError(t *testing.T) {
	failed := errors.New("NoSuchBucket")
	client := NewS3ClientWithAPI(&fakeS3{putErr: failed}, "photos", 10)

	assert.ErrorIs(t, client.PutObject(context.Background(), "a.jpg", []byte("x")), failed)
}

func TestCreateOptimizedHTTPClientDefaults(t *testing.T) {
	client := createOptimizedHTTPClient(nil)
	assert.Equal(t, "30s", client.Timeout.String())

	client = createOptimizedHTTPClient(&S3HTTPConfig{RequestTimeout: 5})
	assert.Equal(t, "5s", client.Timeout.String())
}
