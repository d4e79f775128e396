package snapshot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

var created = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleTree() *vdom.Node {
	return vdom.Div(vdom.Class("page"),
		vdom.H1(vdom.InnerText("Title")),
		vdom.Text("a"), vdom.Text("b"),
		vdom.Fragment(vdom.Span(vdom.InnerText("x"))),
	)
}

// fakeS3 keeps objects in memory.
type fakeS3 struct {
	objects map[string]*s3.PutObjectInput
	data    map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string]*s3.PutObjectInput{}, data: map[string][]byte{}}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = in
	f.data[key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	put, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(bytes.NewReader(f.data[key])),
		ContentType: put.ContentType,
		Metadata:    put.Metadata,
	}, nil
}

func TestStores(t *testing.T) {
	disk, err := NewDiskStore(t.TempDir(), 1<<20)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	fake := newFakeS3()
	stores := map[string]Store{
		"disk": disk,
		"s3":   NewS3Store(fake, "bucket", "pages/", 1<<20),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			obj, err := Markup("home/index.html", sampleTree())
			if err != nil {
				t.Fatalf("Markup: %v", err)
			}
			obj.CreatedAt = created

			if err := store.Put(ctx, obj); err != nil {
				t.Fatalf("Put: %v", err)
			}
			got, err := store.Get(ctx, "home/index.html")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if diff := cmp.Diff(obj, got); diff != "" {
				t.Errorf("object mismatch (-want +got):\n%s", diff)
			}

			if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(missing) error = %v, want %v", err, ErrNotFound)
			}
			big := &Object{Key: "big", Data: make([]byte, 1<<20+1)}
			if err := store.Put(ctx, big); !errors.Is(err, ErrTooLarge) {
				t.Errorf("Put(big) error = %v, want %v", err, ErrTooLarge)
			}
		})
	}

	if _, ok := fake.objects["bucket/pages/home/index.html"]; !ok {
		t.Error("S3Store did not apply the key prefix")
	}
}

func TestDiskStoreRejectsBadKeys(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	for _, key := range []string{"", "/", "x.meta.json"} {
		if err := store.Put(context.Background(), &Object{Key: key}); err == nil {
			t.Errorf("Put(%q) succeeded", key)
		}
	}
}

func TestRestore(t *testing.T) {
	tree := sampleTree()
	root := reconcile.NewRoot(dom.NewElement("div", dom.NamespaceHTML))
	if err := root.Render(tree); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := dom.SerializeChildren(root.Container())

	t.Run("container", func(t *testing.T) {
		nodes, err := Restore(Container("c", root.Container(), 4))
		if err != nil {
			t.Fatalf("Restore: %v", err)
		}
		if len(nodes) != root.Container().ChildCount() {
			t.Errorf("restored %d nodes, want %d", len(nodes), root.Container().ChildCount())
		}
		var b strings.Builder
		for _, n := range nodes {
			b.WriteString(dom.Serialize(n))
		}
		if b.String() != want {
			t.Errorf("restored markup\n got: %s\nwant: %s", b.String(), want)
		}
	})

	t.Run("markup", func(t *testing.T) {
		obj, err := Markup("m", tree)
		if err != nil {
			t.Fatalf("Markup: %v", err)
		}
		nodes, err := Restore(obj)
		if err != nil {
			t.Fatalf("Restore: %v", err)
		}
		var b strings.Builder
		for _, n := range nodes {
			b.WriteString(dom.Serialize(n))
		}
		if b.String() != want {
			t.Errorf("restored markup\n got: %s\nwant: %s", b.String(), want)
		}
	})
}
