// Package notify delivers stock alerts to kitchen operators by mail.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	appinv "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

var _ appinv.StockAlertNotifier = (*MailStockAlertNotifier)(nil)

// sender is satisfied by *gomail.Dialer
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

var alertBody = template.Must(template.New("alert").Parse(`<p><strong>{{.Subject}}</strong></p>
<table>
<tr><td>Item</td><td>{{.ItemName}}</td></tr>
{{- if .Category}}
<tr><td>Category</td><td>{{.Category}}</td></tr>
{{- end}}
<tr><td>On hand</td><td>{{.Quantity}} {{.Unit}}</td></tr>
{{- if .MinThreshold}}
<tr><td>Minimum</td><td>{{.MinThreshold}} {{.Unit}}</td></tr>
{{- end}}
{{- if .EventID}}
<tr><td>Event</td><td>{{.EventID}}</td></tr>
{{- end}}
</table>
`))

type alertView struct {
	appinv.StockAlert
	Subject string
}

// MailStockAlertNotifier sends each stock alert as an HTML mail over SMTP.
type MailStockAlertNotifier struct {
	sender sender
	from   string
	to     []string
	logger *zap.Logger
}

// NewMailStockAlertNotifier creates a notifier from the mail settings.
func NewMailStockAlertNotifier(cfg config.MailConfig, logger *zap.Logger) (*MailStockAlertNotifier, error) {
	if cfg.Host == "" || cfg.From == "" || len(cfg.To) == 0 {
		return nil, errors.New("mail host, sender and at least one recipient are required")
	}
	return newMailNotifier(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.From, cfg.To, logger), nil
}

func newMailNotifier(s sender, from string, to []string, logger *zap.Logger) *MailStockAlertNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MailStockAlertNotifier{sender: s, from: from, to: to, logger: logger}
}

// SendAlert renders and sends one alert. SMTP dialing is synchronous; the
// context is only checked before dialing.
func (n *MailStockAlertNotifier) SendAlert(ctx context.Context, alert appinv.StockAlert) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := alert.Subject()
	var body bytes.Buffer
	if err := alertBody.Execute(&body, alertView{StockAlert: alert, Subject: subject}); err != nil {
		return fmt.Errorf("render stock alert: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", n.to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	if err := n.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send stock alert mail: %w", err)
	}
	n.logger.Debug("stock alert mailed",
		zap.String("inventory_item_id", alert.InventoryItemID),
		zap.Strings("to", n.to),
	)
	return nil
}
