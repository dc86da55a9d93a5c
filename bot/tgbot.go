package bot

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"strconv"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"

	"tebogen/bot/chat"
	"tebogen/bot/chat/telegram"
	"tebogen/internal/lib/sl"
)

// TgBot is the Telegram transport for a generated bot: it turns updates
// into engine calls and delivers the results back to the participant.
type TgBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string
	engine      *chat.Engine
	messenger   chat.Messenger
}

// NewTgBot creates a new Telegram bot instance.
func NewTgBot(botName, apiKey string, log *slog.Logger) (*TgBot, error) {
	bot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		botUsername: botName,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	bot.api = api
	bot.messenger = telegram.NewMessenger(api)

	return bot, nil
}

// SetEngine sets the conversation engine for the bot.
func (b *TgBot) SetEngine(engine *chat.Engine) {
	b.engine = engine
}

// Start begins polling for updates and handling them. Blocks.
func (b *TgBot) Start() error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		// If an error is returned by a handler, log it and continue going.
		Error: func(bot *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Println("an error occurred while handling update:", err.Error())
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewCommand("start", b.handleStart))
	dispatcher.AddHandler(handlers.NewMessage(message.Text, b.handleMessage))

	err := updater.StartPolling(b.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	b.log.Info("telegram bot started", slog.String("username", b.botUsername))

	// Idle, to keep updates coming in
	updater.Idle()

	return nil
}

// handleStart prompts the participant's current (or entry) question.
func (b *TgBot) handleStart(bot *tgbotapi.Bot, ctx *ext.Context) error {
	if b.engine == nil {
		b.log.Warn("engine not initialized")
		return nil
	}

	participantID := strconv.FormatInt(ctx.EffectiveUser.Id, 10)
	chatID := strconv.FormatInt(ctx.EffectiveChat.Id, 10)

	result, err := b.engine.Start(context.Background(), participantID)
	if err != nil {
		b.log.Error("failed to start conversation",
			slog.String("participant_id", participantID),
			sl.Err(err),
		)
		return b.messenger.SendText(chatID, "Something went wrong, please try again.")
	}

	return b.deliver(chatID, result)
}

// handleMessage feeds a text message into the engine.
func (b *TgBot) handleMessage(bot *tgbotapi.Bot, ctx *ext.Context) error {
	if b.engine == nil {
		b.log.Warn("engine not initialized")
		return nil
	}

	participantID := strconv.FormatInt(ctx.EffectiveUser.Id, 10)
	chatID := strconv.FormatInt(ctx.EffectiveChat.Id, 10)
	text := ctx.EffectiveMessage.Text

	result, err := b.engine.HandleMessage(context.Background(), participantID, text)
	if err != nil {
		b.log.Error("failed to handle message",
			slog.String("participant_id", participantID),
			sl.Err(err),
		)
		return b.messenger.SendText(chatID, "Something went wrong, please try again.")
	}

	return b.deliver(chatID, result)
}

// deliver sends an engine result back to the participant.
func (b *TgBot) deliver(chatID string, result chat.EngineResult) error {
	switch result.Kind {
	case chat.ResultAdvanced:
		if len(result.Choices) > 0 {
			return b.messenger.SendChoices(chatID, result.Prompt, result.Choices)
		}
		return b.messenger.SendText(chatID, result.Prompt)
	case chat.ResultValidationFailed:
		if len(result.Choices) > 0 {
			return b.messenger.SendChoices(chatID, "❌ "+result.Reason, result.Choices)
		}
		return b.messenger.SendText(chatID, "❌ "+result.Reason)
	case chat.ResultCompleted:
		text := result.Prompt
		if text == "" {
			text = "✅ All done, thank you!"
		}
		return b.messenger.SendText(chatID, text)
	case chat.ResultAlreadyCompleted:
		return b.messenger.SendText(chatID, "You have already completed this conversation. Thank you!")
	}
	return nil
}
