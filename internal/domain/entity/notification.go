package entity

import "time"

// Notification es un aviso persistido que el frontend muestra en su bandeja.
type Notification struct {
	ID        string
	Title     string
	Body      string
	IsRead    bool
	CreatedAt time.Time
}

// DeviceToken guarda el token FCM del dispositivo registrado.
// El punto de venta opera con un solo dispositivo, así que se conserva una única fila.
type DeviceToken struct {
	ID        int
	Token     string
	UpdatedAt time.Time
}
