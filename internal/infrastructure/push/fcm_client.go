package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jhoicas/Caja-api/internal/application/notification"
)

// Client envía notificaciones push mediante el endpoint legacy de FCM.
// Sin server key configurada el envío se convierte en un no-op.
type Client struct {
	endpoint  string
	serverKey string
	http      *http.Client
}

var _ notification.PushSender = (*Client)(nil)

// NewClient construye el cliente FCM.
func NewClient(endpoint, serverKey string) *Client {
	return &Client{
		endpoint:  endpoint,
		serverKey: serverKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

type fcmPayload struct {
	To           string          `json:"to"`
	Notification fcmNotification `json:"notification"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Send empuja el aviso al dispositivo identificado por token.
func (c *Client) Send(ctx context.Context, token, title, body string) error {
	if c.serverKey == "" {
		return nil
	}

	payload, err := json.Marshal(fcmPayload{
		To:           token,
		Notification: fcmNotification{Title: title, Body: body},
	})
	if err != nil {
		return fmt.Errorf("serializando payload FCM: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creando request FCM: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("enviando push FCM: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("FCM respondió %d", resp.StatusCode)
	}
	return nil
}
