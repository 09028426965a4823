package piazza

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"piazza-herald/internal/model"
)

type fakeNetwork struct {
	posts     []model.Post
	lastLimit int
	err       error
}

func (f *fakeNetwork) GetPost(ctx context.Context, id string) (model.Post, error) {
	if f.err != nil {
		return model.Post{}, f.err
	}
	for _, p := range f.posts {
		if fmt.Sprintf("%d", p.Number) == id {
			return p, nil
		}
	}
	return model.Post{}, errors.New("no such post")
}

func (f *fakeNetwork) RecentPosts(ctx context.Context, limit int) ([]model.Post, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.posts) {
		return f.posts[:limit], nil
	}
	return f.posts, nil
}

func testNow() time.Time {
	return time.Date(2020, 9, 19, 3, 0, 0, 0, time.UTC)
}

func datedPost(nr int, created string) model.Post {
	return model.Post{Number: nr, Created: created}
}

func TestPostByIDValidation(t *testing.T) {
	net := &fakeNetwork{posts: []model.Post{datedPost(1, "2020-09-01T00:00:00Z"), datedPost(42, "2020-09-19T01:00:00Z")}}
	f := newFetcher(net, 50, 1)
	ctx := context.Background()

	for _, id := range []string{"abc", "", "12.5", "1"} {
		if _, err := f.PostByID(ctx, id); !errors.Is(err, ErrInvalidPostID) {
			t.Errorf("PostByID(%q) err = %v, want ErrInvalidPostID", id, err)
		}
	}

	post, err := f.PostByID(ctx, "42")
	if err != nil {
		t.Fatalf("PostByID(42): %v", err)
	}
	if post.Number != 42 {
		t.Fatalf("got post %d, want 42", post.Number)
	}
}

// ID 1 is rejected even though the backend has a post with that number.
func TestPostByIDReservedSentinel(t *testing.T) {
	net := &fakeNetwork{posts: []model.Post{datedPost(1, "2020-09-01T00:00:00Z")}}
	f := newFetcher(net, 50, 1)
	if _, err := f.PostByID(context.Background(), "1"); !errors.Is(err, ErrInvalidPostID) {
		t.Fatalf("err = %v, want ErrInvalidPostID", err)
	}
}

func TestPostByIDBackendMiss(t *testing.T) {
	net := &fakeNetwork{}
	f := newFetcher(net, 50, 1)
	if _, err := f.PostByID(context.Background(), "7"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPostsCreatedWithinLimitValidation(t *testing.T) {
	f := newFetcher(&fakeNetwork{}, 50, 1)
	for _, limit := range []int{0, -3} {
		if _, err := f.PostsCreatedWithin(context.Background(), 1, limit); !errors.Is(err, ErrFetchLimitInvalid) {
			t.Errorf("limit %d: err = %v, want ErrFetchLimitInvalid", limit, err)
		}
	}
}

func TestPostsCreatedWithinClampsLimit(t *testing.T) {
	net := &fakeNetwork{}
	f := newFetcher(net, 50, 1)
	f.now = testNow

	if _, err := f.PostsCreatedWithin(context.Background(), 1, 500); err != nil {
		t.Fatal(err)
	}
	if net.lastLimit != 50 {
		t.Fatalf("backend limit = %d, want clamp to 50", net.lastLimit)
	}
}

func TestPostsCreatedWithinDateWindow(t *testing.T) {
	net := &fakeNetwork{posts: []model.Post{
		datedPost(5, "2020-09-19T23:59:59Z"), // today, time of day ignored
		datedPost(4, "2020-09-18T00:00:01Z"), // yesterday
		datedPost(3, "2020-09-17T12:00:00Z"), // two days ago
		datedPost(2, "2020-08-01T00:00:00Z"), // long gone
		{Number: 9, Created: ""},             // malformed, skipped
	}}
	f := newFetcher(net, 50, 1)
	f.now = testNow

	posts, err := f.PostsCreatedWithin(context.Background(), 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	var got []int
	for _, p := range posts {
		got = append(got, p.Number)
	}
	if len(got) != 2 || got[0] != 5 || got[1] != 4 {
		t.Fatalf("got posts %v, want [5 4] in fetch order", got)
	}

	// widen the window
	posts, err = f.PostsCreatedWithin(context.Background(), 2, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 3 {
		t.Fatalf("days=2: got %d posts, want 3", len(posts))
	}
}

func TestPostsCreatedWithinZeroDays(t *testing.T) {
	net := &fakeNetwork{posts: []model.Post{
		datedPost(5, "2020-09-19T01:00:00Z"),
		datedPost(4, "2020-09-18T23:00:00Z"),
	}}
	f := newFetcher(net, 50, 1)
	f.now = testNow

	posts, err := f.PostsCreatedWithin(context.Background(), 0, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 1 || posts[0].Number != 5 {
		t.Fatalf("days=0: got %v, want only today's post", posts)
	}
}

func TestPinnedFilter(t *testing.T) {
	net := &fakeNetwork{posts: []model.Post{
		{Number: 1, BucketName: model.BucketPinned},
		{Number: 2, BucketName: "Today"},
		{Number: 3, BucketName: model.BucketPinned},
		{Number: 4},
	}}
	f := newFetcher(net, 50, 1)

	posts, err := f.Pinned(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 2 || posts[0].Number != 1 || posts[1].Number != 3 {
		t.Fatalf("got %v, want pinned posts 1 and 3", posts)
	}
	if _, err := f.Pinned(context.Background(), 0); !errors.Is(err, ErrFetchLimitInvalid) {
		t.Fatalf("limit 0: err = %v, want ErrFetchLimitInvalid", err)
	}
}
