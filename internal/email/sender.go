package email

import (
	"context"
	"errors"
)

// Acknowledgment es el acuse de recibo enviado a quien escribe por el formulario.
type Acknowledgment struct {
	ToEmail string
	Name    string
	Message string
}

// Sender define la interfaz para envio de correos de acuse de recibo.
type Sender interface {
	SendContactAcknowledgment(ctx context.Context, ack Acknowledgment) error
}

type disabledSender struct {
	reason string
}

// NewDisabledSender devuelve un Sender que siempre falla; se usa cuando no hay SMTP configurado.
func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendContactAcknowledgment(_ context.Context, _ Acknowledgment) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
