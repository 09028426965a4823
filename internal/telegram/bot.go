package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"
	"golang.org/x/time/rate"

	"piazza-herald/internal/config"
	"piazza-herald/internal/digest"
	"piazza-herald/internal/model"
	"piazza-herald/internal/piazza"
)

// pinnedFetchLimit bounds the feed window scanned for pinned posts, which
// the API always returns first.
const pinnedFetchLimit = 15

const handlerTimeout = 15 * time.Second

// Bot is the chat transport: it serves the /read and /pinned commands and
// delivers scheduled digests to the configured chat.
type Bot struct {
	bot      *tele.Bot
	chatID   int64
	fetcher  *piazza.Fetcher
	builder  *digest.Builder
	cooldown time.Duration

	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
}

// New creates the bot and registers its command handlers.
func New(cfg config.TelegramConfig, fetcher *piazza.Fetcher, builder *digest.Builder) (*Bot, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	cooldown, err := time.ParseDuration(cfg.Cooldown)
	if err != nil {
		return nil, fmt.Errorf("invalid telegram cooldown: %w", err)
	}
	tb, err := tele.NewBot(tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, err
	}
	b := &Bot{
		bot:      tb,
		chatID:   cfg.ChatID,
		fetcher:  fetcher,
		builder:  builder,
		cooldown: cooldown,
		limiters: map[int64]*rate.Limiter{},
	}
	tb.Handle("/read", b.handleRead)
	tb.Handle("/pinned", b.handlePinned)
	return b, nil
}

// Start runs the long-polling loop until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	go b.bot.Start()
	slog.Info("telegram: bot started", "chat_id", b.chatID)
	<-ctx.Done()
	b.bot.Stop()
	return nil
}

// SendDigest delivers a digest message to the configured chat.
func (b *Bot) SendDigest(ctx context.Context, text string) error {
	_, err := b.bot.Send(tele.ChatID(b.chatID), text, tele.NoPreview)
	return err
}

func (b *Bot) handleRead(c tele.Context) error {
	if !b.allow(c.Sender().ID) {
		return c.Send(fmt.Sprintf("Command on cooldown, please wait %v.", b.cooldown))
	}
	id := strings.TrimSpace(c.Message().Payload)
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()
	post, err := b.fetcher.PostByID(ctx, id)
	if err != nil {
		slog.Info("telegram: read rejected", "id", id, "error", err)
		return c.Send(fmt.Sprintf("%s not a valid Piazza post ID. Please try again.", id))
	}
	return c.Send(renderView(b.builder.PostDetail(post)), tele.NoPreview)
}

func (b *Bot) handlePinned(c tele.Context) error {
	if !b.allow(c.Sender().ID) {
		return c.Send(fmt.Sprintf("Command on cooldown, please wait %v.", b.cooldown))
	}
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()
	posts, err := b.fetcher.Pinned(ctx, pinnedFetchLimit)
	if err != nil {
		slog.Warn("telegram: pinned fetch failed", "error", err)
		return c.Send("Couldn't reach Piazza right now. Please try again later.")
	}
	return c.Send(b.builder.PinnedListing(posts), tele.NoPreview)
}

// allow enforces the per-user cooldown.
func (b *Bot) allow(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	lim, ok := b.limiters[userID]
	if !ok {
		lim = rate.NewLimiter(rate.Every(b.cooldown), 1)
		b.limiters[userID] = lim
	}
	return lim.Allow()
}

// renderView flattens a post view into a plain-text chat message. Telegram
// has no embed type, so fields become labeled sections.
func renderView(v model.PostView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n%s\n", v.Description, v.Title, v.URL)
	for _, f := range v.Fields {
		fmt.Fprintf(&sb, "\n%s:\n%s\n", f.Name, f.Value)
	}
	fmt.Fprintf(&sb, "\n%s", v.Footer)
	return sb.String()
}
