package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"auction_market/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// OpsBot шлёт оповещения команде в телеграм-чат. Единственный потребитель —
// обработчик ошибок очереди: алерт уходит, когда задача исчерпала ретраи.
type OpsBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewOpsBot(token string, chatID int64) (*OpsBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &OpsBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// AlertTaskFailed сообщает об окончательно проваленной фоновой задаче.
func (b *OpsBot) AlertTaskFailed(ctx context.Context, taskType string, payload []byte, taskErr error) {
	text := fmt.Sprintf(
		"⚠️ <b>Task failed</b>\n\n"+
			"<b>Type:</b> %s\n"+
			"<b>Payload:</b> <code>%s</code>\n"+
			"<b>Error:</b> %v",
		taskType, payload, taskErr,
	)

	msg := tu.Message(tu.ID(b.chatID), text).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		logger(ctx).Error("failed to send alert", "error", err)
	}
}
