// Package mail envia e-mails via SMTP com gomail.
package mail

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

// ErrNotConfigured SMTP_HOST ou SMTP_FROM ausentes.
var ErrNotConfigured = errors.New("mail: SMTP não configurado")

// Attachment anexo em memória.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Message e-mail em HTML.
type Message struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Config parâmetros do servidor SMTP.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Sender envia mensagens pelo servidor configurado.
type Sender struct {
	cfg  Config
	dial func(...*gomail.Message) error
}

// NewSender cria o Sender.
func NewSender(cfg Config) *Sender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return &Sender{cfg: cfg, dial: d.DialAndSend}
}

// Send monta e envia msg. O contexto só é checado antes de conectar.
func (s *Sender) Send(ctx context.Context, msg Message) error {
	if s.cfg.Host == "" || s.cfg.From == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dial(s.build(msg)); err != nil {
		return fmt.Errorf("mail: enviar para %s: %w", msg.To, err)
	}
	return nil
}

func (s *Sender) build(msg Message) *gomail.Message {
	m := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	for _, a := range msg.Attachments {
		data := a.Data
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}))
		}
		m.Attach(a.Name, settings...)
	}
	return m
}
