package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sway-pr/config"
)

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, input *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = input
	f.body, _ = io.ReadAll(input.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3ServiceArchive(t *testing.T) {
	client := &fakeS3{}
	svc := NewS3ServiceWithClient(client, &config.S3Config{BucketName: "pr-archive", BucketUrl: "https://cdn.example"})

	url, err := svc.Archive(context.Background(), "imports", "../lists/contacts.csv", []byte("a,b\n"), "text/csv")
	require.NoError(t, err)

	key := aws.StringValue(client.input.Key)
	assert.True(t, strings.HasPrefix(key, "imports/"))
	assert.True(t, strings.HasSuffix(key, "-contacts.csv"))
	assert.Equal(t, "https://cdn.example/"+key, url)
	assert.Equal(t, "pr-archive", aws.StringValue(client.input.Bucket))
	assert.Equal(t, "text/csv", aws.StringValue(client.input.ContentType))
	assert.Equal(t, []byte("a,b\n"), client.body)

	client.err = errors.New("denied")
	_, err = svc.Archive(context.Background(), "imports", "x.csv", []byte("x"), "")
	assert.Error(t, err)
}
