package bot

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"floorten/internal/booking"
	"floorten/internal/models"
	"floorten/internal/parser"
	"floorten/internal/presenter"
	"floorten/internal/report"
)

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if strings.EqualFold(text, "export schedule") {
		b.handleExport(ctx, msg)
		return
	}

	cmd, err := parser.Parse(text, b.now())
	if err != nil {
		b.reply(ctx, msg.Chat.ID, presenter.ErrorMessage(err))
		return
	}

	owner := ownerID(msg.From.ID)
	switch c := cmd.(type) {
	case parser.BookCommand:
		b.handleBook(ctx, msg.Chat.ID, owner, c)
	case parser.RecurringBookCommand:
		b.handleRecurringBook(ctx, msg.Chat.ID, owner, c)
	case parser.CancelCommand:
		b.handleCancel(ctx, msg.Chat.ID, owner, c)
	case parser.CancelPromptCommand:
		b.reply(ctx, msg.Chat.ID, presenter.CancelPrompt(b.engine.ListUserBookings(owner, b.now())))
	case parser.ListRoomsCommand:
		b.reply(ctx, msg.Chat.ID, presenter.RoomList(b.engine.Rooms()))
	case parser.ListAvailableCommand:
		b.handleListAvailable(ctx, msg.Chat.ID, c)
	case parser.MyBookingsCommand:
		b.reply(ctx, msg.Chat.ID, presenter.UserBookings(b.engine.ListUserBookings(owner, b.now())))
	case parser.BookHelpCommand:
		b.reply(ctx, msg.Chat.ID, presenter.BookHelp())
	default:
		b.reply(ctx, msg.Chat.ID, presenter.Help())
	}
}

func (b *Bot) handleBook(ctx context.Context, chatID int64, owner string, c parser.BookCommand) {
	bk, err := b.engine.Book(ctx, booking.Request{
		RoomID:      c.RoomID,
		Start:       c.Start,
		Duration:    c.Duration,
		EventName:   c.EventName,
		MeetingType: c.MeetingType,
		ContactName: c.ContactName,
		OwnerID:     owner,
	})
	if err != nil {
		var ce *booking.ConflictError
		if errors.As(err, &ce) {
			s := b.engine.SuggestAlternatives(c.RoomID, c.Start, c.Duration)
			b.reply(ctx, chatID, presenter.Alternatives(b.roomName(c.RoomID), s))
			return
		}
		b.reply(ctx, chatID, presenter.ErrorMessage(err))
		return
	}
	b.reply(ctx, chatID, presenter.Confirmation(b.roomName(c.RoomID), *bk))
}

func (b *Bot) handleRecurringBook(ctx context.Context, chatID int64, owner string, c parser.RecurringBookCommand) {
	res, err := b.engine.BookRecurring(ctx, booking.RecurringRequest{
		RoomID:      c.RoomID,
		Recurrence:  c.Recurrence,
		EventName:   c.EventName,
		MeetingType: c.MeetingType,
		ContactName: c.ContactName,
		OwnerID:     owner,
	})
	if err != nil {
		b.reply(ctx, chatID, presenter.ErrorMessage(err))
		return
	}
	b.reply(ctx, chatID, presenter.RecurringSummary(b.roomName(c.RoomID), res))
}

// handleCancel resolves positional numbers against the same list the
// prompt showed, then cancels each booking individually.
func (b *Bot) handleCancel(ctx context.Context, chatID int64, owner string, c parser.CancelCommand) {
	list := b.engine.ListUserBookings(owner, b.now())
	if len(list) == 0 {
		b.reply(ctx, chatID, presenter.CancelPrompt(nil))
		return
	}

	nums := c.Numbers
	if c.All {
		nums = make([]int, len(list))
		for i := range list {
			nums[i] = i + 1
		}
	}

	var invalid []int
	for _, n := range nums {
		if n < 1 || n > len(list) {
			invalid = append(invalid, n)
		}
	}
	if len(invalid) > 0 {
		b.reply(ctx, chatID, presenter.InvalidNumbers(invalid))
		return
	}

	var cancelled []booking.UserBooking
	for _, n := range nums {
		ub := list[n-1]
		if err := b.engine.Cancel(ctx, ub.RoomID, ub.Booking.StartTime, owner); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("room", ub.RoomID).Msg("cancel failed")
			continue
		}
		cancelled = append(cancelled, ub)
	}
	b.reply(ctx, chatID, presenter.Cancelled(cancelled))
}

func (b *Bot) handleListAvailable(ctx context.Context, chatID int64, c parser.ListAvailableCommand) {
	if c.At != nil {
		iv := models.NewInterval(*c.At, time.Hour)
		b.reply(ctx, chatID, presenter.AvailableRoomsAt(iv, b.engine.AvailableRooms(iv)))
		return
	}

	var rooms []presenter.RoomSlots
	for _, room := range b.engine.Rooms() {
		rooms = append(rooms, presenter.RoomSlots{
			Room:  room,
			Slots: b.engine.AvailableSlots(room.RoomID, c.Day),
		})
	}
	b.reply(ctx, chatID, presenter.DayAvailability(c.Day, rooms))
}

func (b *Bot) handleExport(ctx context.Context, msg *tgbotapi.Message) {
	if !b.isManager(msg.From.ID) {
		b.reply(ctx, msg.Chat.ID, presenter.Help())
		return
	}

	f, err := report.ScheduleWorkbook(b.engine.Rooms())
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("schedule export failed")
		b.reply(ctx, msg.Chat.ID, "Sorry, the export failed. Please try again.")
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("schedule export failed")
		b.reply(ctx, msg.Chat.ID, "Sorry, the export failed. Please try again.")
		return
	}

	if err := b.limiter.Wait(ctx); err != nil {
		return
	}
	doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FileBytes{
		Name:  "schedule.xlsx",
		Bytes: buf.Bytes(),
	})
	if _, err := b.tg.Send(doc); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("send export failed")
	}
}

func (b *Bot) roomName(roomID string) string {
	id := models.NormalizeRoomID(roomID)
	for _, r := range b.engine.Rooms() {
		if r.RoomID == id {
			return r.Name
		}
	}
	return roomID
}
