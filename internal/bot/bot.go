// Package bot is the Telegram transport. It owns no booking logic:
// messages are parsed into commands, handed to the engine, and the
// results rendered back as text.
package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"floorten/internal/booking"
)

type telegramClient interface {
	Send(tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	SelfUser() tgbotapi.User
}

type realTelegramClient struct {
	api *tgbotapi.BotAPI
}

func (c *realTelegramClient) Send(msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	return c.api.Send(msg)
}

func (c *realTelegramClient) GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return c.api.GetUpdatesChan(cfg)
}

func (c *realTelegramClient) SelfUser() tgbotapi.User {
	return c.api.Self
}

// Bot polls Telegram updates and answers booking commands. Outbound
// sends go through a shared limiter to stay under the Telegram API
// rate cap.
type Bot struct {
	tg       telegramClient
	engine   *booking.Engine
	managers map[int64]struct{}
	limiter  *rate.Limiter
	logger   *zerolog.Logger
	now      func() time.Time
}

// New connects to Telegram with the given token.
func New(token string, debug bool, engine *booking.Engine, managers []int64, logger *zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	api.Debug = debug
	return newBot(&realTelegramClient{api: api}, engine, managers, logger)
}

// NewWithClient injects a telegram client, for tests.
func NewWithClient(tg telegramClient, engine *booking.Engine, managers []int64, logger *zerolog.Logger) (*Bot, error) {
	return newBot(tg, engine, managers, logger)
}

func newBot(tg telegramClient, engine *booking.Engine, managers []int64, logger *zerolog.Logger) (*Bot, error) {
	if tg == nil {
		return nil, fmt.Errorf("telegram client is nil")
	}
	if engine == nil {
		return nil, fmt.Errorf("booking engine is nil")
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	mgrs := make(map[int64]struct{})
	for _, id := range managers {
		mgrs[id] = struct{}{}
	}
	return &Bot{
		tg:       tg,
		engine:   engine,
		managers: mgrs,
		limiter:  rate.NewLimiter(rate.Limit(20), 5),
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Start polls updates until the context is cancelled.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.tg.GetUpdatesChan(u)
	b.logger.Info().Str("username", b.tg.SelfUser().UserName).Msg("bot authorized")

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			requestID := uuid.New().String()
			l := b.logger.With().Str("request_id", requestID).Logger()
			updateCtx := l.WithContext(ctx)
			b.handleUpdate(updateCtx, &update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update *tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	l := zerolog.Ctx(ctx)
	l.Debug().
		Int64("user_id", update.Message.From.ID).
		Str("text", update.Message.Text).
		Msg("handling message")
	b.handleMessage(ctx, update.Message)
}

func (b *Bot) isManager(userID int64) bool {
	_, ok := b.managers[userID]
	return ok
}

// ownerID is what the engine stores; Telegram user IDs are numeric but
// the engine treats owners as opaque strings.
func ownerID(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.limiter.Wait(ctx); err != nil {
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.tg.Send(msg); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", chatID).Msg("send failed")
	}
}
