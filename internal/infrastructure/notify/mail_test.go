package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	appinv "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/inventory"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func TestNewMailStockAlertNotifier(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.MailConfig
		wantErr bool
	}{
		{"complete", config.MailConfig{Host: "smtp.local", Port: 587, From: "kitchen@example.com", To: []string{"chef@example.com"}}, false},
		{"no host", config.MailConfig{From: "kitchen@example.com", To: []string{"chef@example.com"}}, true},
		{"no recipients", config.MailConfig{Host: "smtp.local", From: "kitchen@example.com"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewMailStockAlertNotifier(tt.cfg, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, n.sender)
		})
	}
}

func TestMailStockAlertNotifier_SendAlert(t *testing.T) {
	tests := []struct {
		name        string
		alert       appinv.StockAlert
		wantSubject string
		wantBody    []string
		notInBody   []string
	}{
		{
			name: "low stock",
			alert: appinv.StockAlert{
				InventoryItemID: "item-1", ItemName: "Basmati Rice", Category: "grains",
				Quantity: "4", MinThreshold: "10", Unit: "kg", AlertType: appinv.AlertTypeLowStock,
			},
			wantSubject: "Low stock: Basmati Rice at 4 kg (min 10)",
			wantBody:    []string{"Basmati Rice", "grains", "10 kg"},
			notInBody:   []string{"Event"},
		},
		{
			name: "deficit for an event",
			alert: appinv.StockAlert{
				InventoryItemID: "item-2", ItemName: "Paneer", Quantity: "-3.5", Unit: "kg",
				EventID: "wedding-42", AlertType: appinv.AlertTypeDeficit,
			},
			wantSubject: "Stock deficit: Paneer at -3.5 kg",
			wantBody:    []string{"wedding-42", "-3.5 kg"},
			notInBody:   []string{"Minimum"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSender{}
			n := newMailNotifier(fake, "kitchen@example.com", []string{"chef@example.com", "owner@example.com"}, nil)

			require.NoError(t, n.SendAlert(context.Background(), tt.alert))
			require.Len(t, fake.sent, 1)

			msg := fake.sent[0]
			assert.Equal(t, []string{tt.wantSubject}, msg.GetHeader("Subject"))
			assert.Equal(t, []string{"chef@example.com", "owner@example.com"}, msg.GetHeader("To"))

			var raw bytes.Buffer
			_, err := msg.WriteTo(&raw)
			require.NoError(t, err)
			for _, s := range tt.wantBody {
				assert.Contains(t, raw.String(), s)
			}
			for _, s := range tt.notInBody {
				assert.NotContains(t, raw.String(), s)
			}
		})
	}
}

func TestMailStockAlertNotifier_Errors(t *testing.T) {
	alert := appinv.StockAlert{ItemName: "Ghee", AlertType: appinv.AlertTypeOutOfStock}

	n := newMailNotifier(&fakeSender{err: errors.New("connection refused")}, "k@example.com", []string{"c@example.com"}, nil)
	err := n.SendAlert(context.Background(), alert)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fake := &fakeSender{}
	n = newMailNotifier(fake, "k@example.com", []string{"c@example.com"}, nil)
	assert.ErrorIs(t, n.SendAlert(ctx, alert), context.Canceled)
	assert.Empty(t, fake.sent)
}
