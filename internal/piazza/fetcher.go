package piazza

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"piazza-herald/internal/model"
)

// reservedPostID never resolves to a real post on the platform.
const reservedPostID = "1"

// network is the slice of Network used by the fetcher; it keeps tests off
// a live login session.
type network interface {
	GetPost(ctx context.Context, id string) (model.Post, error)
	RecentPosts(ctx context.Context, limit int) ([]model.Post, error)
}

// Fetcher retrieves posts from one network and applies the date-range and
// count policies. The backend has no "posts since" query, so recency is
// implemented by over-fetching a bounded window and filtering client-side.
type Fetcher struct {
	net      network
	fetchMax int
	fetchMin int

	// now is stubbed in tests
	now func() time.Time
}

// NewFetcher wraps a network handle. fetchMax/fetchMin bound the listing
// limit passed to the backend (defaults 50 and 1).
func NewFetcher(net *Network, fetchMax, fetchMin int) *Fetcher {
	return newFetcher(net, fetchMax, fetchMin)
}

func newFetcher(net network, fetchMax, fetchMin int) *Fetcher {
	if fetchMax <= 0 {
		fetchMax = 50
	}
	if fetchMin <= 0 {
		fetchMin = 1
	}
	return &Fetcher{net: net, fetchMax: fetchMax, fetchMin: fetchMin, now: time.Now}
}

// PostByID looks up a single post. Non-numeric IDs and the reserved ID "1"
// yield ErrInvalidPostID; a backend miss yields ErrNotFound.
func (f *Fetcher) PostByID(ctx context.Context, id string) (model.Post, error) {
	if _, err := strconv.Atoi(id); err != nil {
		return model.Post{}, fmt.Errorf("%w: %q", ErrInvalidPostID, id)
	}
	if id == reservedPostID {
		return model.Post{}, fmt.Errorf("%w: %q", ErrInvalidPostID, id)
	}
	post, err := f.net.GetPost(ctx, id)
	if err != nil {
		return model.Post{}, fmt.Errorf("%w: %q: %v", ErrNotFound, id, err)
	}
	return post, nil
}

// PostsCreatedWithin returns the posts among the `limit` most recent ones
// whose creation date falls within `days` calendar days of today (UTC).
// Time of day is ignored entirely. Fetch order is preserved.
func (f *Fetcher) PostsCreatedWithin(ctx context.Context, days, limit int) ([]model.Post, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrFetchLimitInvalid, limit)
	}
	if limit > f.fetchMax {
		limit = f.fetchMax
	}
	if limit < f.fetchMin {
		limit = f.fetchMin
	}
	posts, err := f.net.RecentPosts(ctx, limit)
	if err != nil {
		return nil, err
	}
	today := midnightUTC(f.now())
	out := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		created, ok := createdDate(p)
		if !ok {
			slog.Warn("piazza: post has unusable created date", "nr", p.Number, "created", p.Created)
			continue
		}
		if int(today.Sub(created).Hours()/24) <= days {
			out = append(out, p)
		}
	}
	return out, nil
}

// Pinned returns the pinned posts among the `limit` most recent ones.
// Pinned posts float to the front of the feed, so a small limit suffices.
func (f *Fetcher) Pinned(ctx context.Context, limit int) ([]model.Post, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrFetchLimitInvalid, limit)
	}
	posts, err := f.net.RecentPosts(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if p.Pinned() {
			out = append(out, p)
		}
	}
	return out, nil
}

// createdDate parses the date-significant prefix of a created timestamp,
// e.g. "2020-09-19" from "2020-09-19T22:41:52Z".
func createdDate(p model.Post) (time.Time, bool) {
	if len(p.Created) < 10 {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", p.Created[:10], time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func midnightUTC(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}
