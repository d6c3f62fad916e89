package notifier

import (
	"context"
)

// Mailer — исходящая почта. Реальной доставки нет: письма пишутся в лог,
// доставка остаётся за внешним релеем.
type Mailer struct {
	from string
}

func NewMailer(from string) *Mailer {
	return &Mailer{from: from}
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	logger(ctx).Info("email sent",
		"from", m.from,
		"to", to,
		"subject", subject,
		"body", body,
	)

	return nil
}
