package dto

// NotificationResponse aviso persistido.
type NotificationResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// SaveTokenRequest registro del token FCM del dispositivo.
type SaveTokenRequest struct {
	Token string `json:"token"`
}

// SendNotificationRequest aviso a persistir y enviar por push.
type SendNotificationRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
