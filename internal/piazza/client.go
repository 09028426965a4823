package piazza

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"piazza-herald/internal/model"
)

// Client speaks Piazza's internal content API: a single JSON endpoint at
// POST /logic/api?method=<m> with {"method": m, "params": {...}} bodies and
// {"result": ..., "error": ...} envelopes. Authentication is a session
// cookie obtained by the user.login method.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the given base URL (e.g.
// "https://piazza.com"). The underlying http.Client carries a cookie jar
// for the login session.
func NewClient(baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://piazza.com"
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second, Jar: jar},
	}
}

// envelope is the common response wrapper of the logic API.
type envelope struct {
	Result json.RawMessage `json:"result"`
	Error  any             `json:"error"`
}

// call posts one RPC and decodes its result into out (when out != nil).
func (c *Client) call(ctx context.Context, method string, params any, out any) error {
	body, err := json.Marshal(map[string]any{"method": method, "params": params})
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/logic/api?%s", c.baseURL, url.Values{"method": {method}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("piazza: %s status %d", method, resp.StatusCode)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return err
	}
	if env.Error != nil {
		return fmt.Errorf("piazza: %s: %v", method, env.Error)
	}
	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return err
		}
	}
	return nil
}

// Login authenticates and stores the session cookie on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	params := map[string]string{"email": email, "pass": password}
	if err := c.call(ctx, "user.login", params, nil); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

// Network scopes API calls to one class forum.
func (c *Client) Network(id string) *Network {
	return &Network{client: c, id: id}
}

// Network is a handle on a single Piazza class forum.
type Network struct {
	client *Client
	id     string
}

// ID returns the network identifier.
func (n *Network) ID() string { return n.id }

// GetPost looks up a single post by its number.
func (n *Network) GetPost(ctx context.Context, id string) (model.Post, error) {
	var post model.Post
	params := map[string]string{"cid": id, "nid": n.id}
	if err := n.client.call(ctx, "content.get", params, &post); err != nil {
		return model.Post{}, err
	}
	return post, nil
}

// feedItem is the subset of a class feed entry needed to resolve posts.
type feedItem struct {
	ID     string `json:"id"`
	Number int    `json:"nr"`
}

type feedResult struct {
	Feed []feedItem `json:"feed"`
}

// RecentPosts lists up to limit most-recent posts in feed order. The feed
// only carries snippets, so each entry is resolved with content.get under
// bounded concurrency; entries that fail to resolve are logged and skipped.
func (n *Network) RecentPosts(ctx context.Context, limit int) ([]model.Post, error) {
	params := map[string]any{"nid": n.id, "limit": limit, "offset": 0}
	var fr feedResult
	if err := n.client.call(ctx, "network.get_my_feed", params, &fr); err != nil {
		return nil, err
	}
	return n.resolveFeed(ctx, fr.Feed)
}

// resolveFeed fetches full posts for feed entries, preserving feed order.
func (n *Network) resolveFeed(ctx context.Context, items []feedItem) ([]model.Post, error) {
	if len(items) == 0 {
		return nil, nil
	}
	const maxWorkers = 8
	type result struct {
		idx  int
		post model.Post
		err  error
	}
	out := make([]result, len(items))
	sem := make(chan struct{}, maxWorkers)
	done := make(chan result, len(items))
	for i, it := range items {
		i, it := i, it
		sem <- struct{}{}
		go func() {
			defer func() { <-sem }()
			ictx, cancel := context.WithTimeout(ctx, 8*time.Second)
			defer cancel()
			p, err := n.GetPost(ictx, fmt.Sprintf("%d", it.Number))
			done <- result{idx: i, post: p, err: err}
		}()
	}
	for range items {
		r := <-done
		if r.err != nil {
			slog.Warn("piazza: feed entry resolve failed", "nr", items[r.idx].Number, "error", r.err)
			continue
		}
		out[r.idx] = r
	}
	posts := make([]model.Post, 0, len(items))
	for _, r := range out {
		if r.post.ID != "" || r.post.Number != 0 {
			posts = append(posts, r.post)
		}
	}
	return posts, nil
}
