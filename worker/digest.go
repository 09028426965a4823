package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"piazza-herald/internal/ai"
	"piazza-herald/internal/archive"
	"piazza-herald/internal/digest"
	"piazza-herald/internal/model"
)

// PostSource yields the posts a digest run works from.
type PostSource interface {
	PostsCreatedWithin(ctx context.Context, days, limit int) ([]model.Post, error)
}

// DeliveryLog remembers which days have already been delivered.
type DeliveryLog interface {
	IsDelivered(ctx context.Context, course, day string) (bool, error)
	MarkDelivered(ctx context.Context, course, day string) error
}

// Sender delivers a finished digest to the chat.
type Sender interface {
	SendDigest(ctx context.Context, text string) error
}

// DigestWorker sends the daily digest at a fixed UTC hour. The schedule is
// cron-backed, so the next fire time is recomputed from the wall clock and
// a restart inside the day cannot shift it.
type DigestWorker struct {
	Source  PostSource
	Builder *digest.Builder
	Log     DeliveryLog
	Sender  Sender

	Summarizer ai.Summarizer // optional
	Course     string
	Language   string
	ArchiveDir string // empty disables archiving

	Hour       int // UTC hour of delivery
	Days       int // calendar-day window
	FetchLimit int
	DisplayCap int

	now func() time.Time
}

func (w *DigestWorker) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))
	spec := fmt.Sprintf("0 %d * * *", w.Hour)
	_, err := c.AddFunc(spec, func() {
		if err := w.RunOnce(ctx); err != nil {
			slog.Error("digest worker: cycle skipped", "course", w.Course, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("digest schedule %q: %w", spec, err)
	}
	slog.Info("digest worker: scheduled", "course", w.Course, "spec", spec)
	c.Start()
	<-ctx.Done()
	stop := c.Stop()
	<-stop.Done()
	return nil
}

// RunOnce performs one digest cycle: skip if today's digest already went
// out, otherwise fetch, build, send, archive, and mark the day delivered.
// Failures abort the cycle; the next tick starts fresh.
func (w *DigestWorker) RunOnce(ctx context.Context) error {
	day := w.clock()().UTC().Format("2006-01-02")
	if w.Log != nil {
		delivered, err := w.Log.IsDelivered(ctx, w.Course, day)
		if err != nil {
			return fmt.Errorf("delivery check: %w", err)
		}
		if delivered {
			slog.Info("digest worker: already delivered", "course", w.Course, "day", day)
			return nil
		}
	}

	posts, err := w.Source.PostsCreatedWithin(ctx, w.Days, w.FetchLimit)
	if err != nil {
		return fmt.Errorf("fetch posts: %w", err)
	}
	text := w.Builder.DailyDigest(posts, w.DisplayCap)

	summary := ""
	if w.Summarizer != nil && len(posts) > 0 {
		if s, err := w.Summarizer.SummarizeDigest(ctx, w.Course, posts, w.Language); err == nil && s != "" {
			summary = s
			text += "\nToday's takeaway: " + s + "\n"
		}
	}

	if err := w.Sender.SendDigest(ctx, text); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	slog.Info("digest worker: digest sent", "course", w.Course, "day", day, "posts", len(posts))

	if w.ArchiveDir != "" {
		if path, err := archive.WriteDaily(w.ArchiveDir, w.Course, summary, text, w.clock()()); err != nil {
			slog.Warn("digest worker: archive write failed", "error", err)
		} else {
			slog.Info("digest worker: archived", "path", path)
		}
	}

	if w.Log != nil {
		if err := w.Log.MarkDelivered(ctx, w.Course, day); err != nil {
			slog.Warn("digest worker: mark delivered failed", "course", w.Course, "day", day, "error", err)
		}
	}
	return nil
}

func (w *DigestWorker) clock() func() time.Time {
	if w.now != nil {
		return w.now
	}
	return time.Now
}
