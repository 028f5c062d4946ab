package s3store

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func TestWithPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"prefix", "prefix/"},
		{"prefix/", "prefix/"},
		{"a/b/c", "a/b/c/"},
		{"a/b/c/", "a/b/c/"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := &Store{}
			if err := WithPrefix(tt.input)(s); err != nil {
				t.Fatalf("WithPrefix() error = %v", err)
			}
			if s.prefix != tt.want {
				t.Errorf("prefix = %q, want %q", s.prefix, tt.want)
			}
		})
	}
}

func TestStore_objectKey(t *testing.T) {
	s := &Store{prefix: "data/v1/"}
	if got := s.objectKey("/logs/app.log.zmh"); got != "data/v1/logs/app.log.zmh" {
		t.Errorf("objectKey() = %q, want %q", got, "data/v1/logs/app.log.zmh")
	}
}

func TestStore_Close(t *testing.T) {
	s := &Store{}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, f.err
}

func TestUploader_PutsOnceOnClose(t *testing.T) {
	fake := &fakePutter{}
	u := &uploader{ctx: context.Background(), client: fake, bucket: "b", key: "k.zmh"}

	u.Write([]byte("enc"))
	u.Write([]byte("oded"))
	if err := u.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := u.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	if len(fake.inputs) != 1 {
		t.Fatalf("PutObject called %d times, want 1", len(fake.inputs))
	}
	in := fake.inputs[0]
	if aws.ToString(in.Bucket) != "b" || aws.ToString(in.Key) != "k.zmh" {
		t.Errorf("PutObject target = %s/%s, want b/k.zmh", aws.ToString(in.Bucket), aws.ToString(in.Key))
	}
	if string(fake.bodies[0]) != "encoded" {
		t.Errorf("uploaded body = %q, want %q", fake.bodies[0], "encoded")
	}
}

func TestUploader_PropagatesError(t *testing.T) {
	boom := errors.New("denied")
	u := &uploader{ctx: context.Background(), client: &fakePutter{err: boom}, bucket: "b", key: "k"}
	if err := u.Close(); !errors.Is(err, boom) {
		t.Errorf("Close() error = %v, want %v", err, boom)
	}
}
