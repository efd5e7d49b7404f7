package bot

import (
	"context"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/flexprice/aggbot/internal/config"
	"github.com/flexprice/aggbot/internal/logger"
	"github.com/flexprice/aggbot/internal/sentry"
	"github.com/flexprice/aggbot/internal/types"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sourcegraph/conc"
	"go.uber.org/fx"
)

// MaxMessageLength is the longest text Telegram accepts in one message
const MaxMessageLength = 4096

const (
	ReplyDocumentName    = "aggregate.json"
	ReplyDocumentCaption = "The result is too long for a message, see the attached file"
)

// Sender delivers replies to a chat
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot long-polls for updates and answers each message in its own goroutine
type Bot struct {
	api     *tgbotapi.BotAPI
	sender  Sender
	handler *Handler
	cfg     config.BotConfig
	sentry  *sentry.Service
	logger  *logger.Logger

	cancel  context.CancelFunc
	poller  conc.WaitGroup
	replies conc.WaitGroup
}

func NewBot(cfg *config.Configuration, handler *Handler, sentryService *sentry.Service, logger *logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPIWithClient(cfg.Bot.Token, tgbotapi.APIEndpoint, newHTTPClient(cfg.Bot))
	if err != nil {
		return nil, err
	}
	api.Debug = cfg.Bot.Debug

	b := newBot(api, cfg.Bot, handler, sentryService, logger)
	b.api = api
	return b, nil
}

func newBot(sender Sender, cfg config.BotConfig, handler *Handler, sentryService *sentry.Service, logger *logger.Logger) *Bot {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	return &Bot{
		sender:  sender,
		handler: handler,
		cfg:     cfg,
		sentry:  sentryService,
		logger:  logger,
	}
}

// newHTTPClient retries transient Telegram API failures. Requests may not
// outlive the long poll timeout plus a margin.
func newHTTPClient(cfg config.BotConfig) *http.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.Logger = nil

	std := client.StandardClient()
	std.Timeout = time.Duration(cfg.PollTimeout)*time.Second + 10*time.Second
	return std
}

// RegisterHooks starts polling with the app and drains in flight replies on stop
func RegisterHooks(lc fx.Lifecycle, b *Bot) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			b.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			b.logger.Info("Stopping bot...")
			return b.Stop(ctx)
		},
	})
}

// Start begins long polling in the background
func (b *Bot) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.PollTimeout
	updates := b.api.GetUpdatesChan(u)

	b.logger.Infow("bot started", "username", b.api.Self.UserName)

	b.poller.Go(func() {
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				// replies already started finish even after Stop
				b.replies.Go(func() {
					b.HandleUpdate(context.Background(), update)
				})
			}
		}
	})
}

// Stop stops polling and waits for in flight replies or ctx
func (b *Bot) Stop(ctx context.Context) error {
	if b.cancel != nil {
		b.cancel()
	}
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}

	done := make(chan struct{})
	go func() {
		b.poller.Wait()
		b.replies.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HandleUpdate replies to one text message. Other updates and messages
// without text are ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return
	}

	ctx = types.WithRequestID(ctx)
	ctx = context.WithValue(ctx, types.CtxChatID, msg.Chat.ID)
	ctx, cancel := context.WithTimeout(ctx, b.cfg.RequestTimeout)
	defer cancel()

	tx, ctx := b.sentry.StartTransaction(ctx, "bot.update")
	if tx != nil {
		tx.SetData("request_id", types.GetRequestID(ctx))
	}

	var text string
	if msg.IsCommand() && msg.Command() == startCommand {
		name := ""
		if msg.From != nil {
			name = msg.From.FirstName
		}
		text = Greeting(name)
	} else {
		text = b.handler.HandleText(ctx, msg.Text)
	}

	err := b.reply(msg, text)
	if err != nil {
		b.sentry.CaptureException(err)
		b.logger.Errorw("failed to send reply",
			"request_id", types.GetRequestID(ctx),
			"chat_id", msg.Chat.ID,
			"reply_length", len(text),
			"error", err,
		)
		if _, fallbackErr := b.sender.Send(newReply(msg, ReplyStoreFailure)); fallbackErr != nil {
			b.logger.Errorw("failed to send fallback reply",
				"request_id", types.GetRequestID(ctx),
				"chat_id", msg.Chat.ID,
				"error", fallbackErr,
			)
		}
	}
	sentry.FinishSpan(tx, err)
}

// reply sends text as a message, or as a JSON document when it does not fit
// into one message
func (b *Bot) reply(msg *tgbotapi.Message, text string) error {
	if utf8.RuneCountInString(text) <= MaxMessageLength {
		_, err := b.sender.Send(newReply(msg, text))
		return err
	}

	doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FileBytes{
		Name:  ReplyDocumentName,
		Bytes: []byte(text),
	})
	doc.Caption = ReplyDocumentCaption
	doc.ReplyToMessageID = msg.MessageID
	_, err := b.sender.Send(doc)
	return err
}

func newReply(msg *tgbotapi.Message, text string) tgbotapi.MessageConfig {
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ReplyToMessageID = msg.MessageID
	return reply
}
