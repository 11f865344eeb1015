package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/url"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/jhoicas/erp-comercial/internal/infrastructure/mail"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/metrics"
)

// UserInviteHandler processa TaskUserInvite.
type UserInviteHandler struct {
	sender    MailSender
	signupURL string
	store     string
	metrics   *metrics.Metrics
	log       zerolog.Logger
}

// NewUserInviteHandler cria o handler. signupURL é a página do front que
// recebe ?token= e chama POST /api/auth/convite.
func NewUserInviteHandler(sender MailSender, signupURL, storeName string, m *metrics.Metrics, log zerolog.Logger) *UserInviteHandler {
	return &UserInviteHandler{sender: sender, signupURL: signupURL, store: storeName, metrics: m, log: log}
}

// ProcessTask implementa asynq.Handler.
func (h *UserInviteHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	return h.metrics.Track(TaskUserInvite).End(h.process(ctx, t))
}

func (h *UserInviteHandler) process(ctx context.Context, t *asynq.Task) error {
	var p UserInvitePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil || p.Email == "" || p.Token == "" {
		h.log.Error().Str("task", TaskUserInvite).Msg("payload de convite inválido")
		return fmt.Errorf("payload inválido: %w", asynq.SkipRetry)
	}

	link, err := h.link(p.Token)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	body, err := h.body(p.Name, link)
	if err != nil {
		return err
	}

	err = h.sender.Send(ctx, mail.Message{
		To:      p.Email,
		Subject: "Convite para criar sua conta",
		HTML:    body,
	})
	if errors.Is(err, mail.ErrNotConfigured) {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if err != nil {
		return err
	}
	h.log.Info().Str("user_id", p.UserID).Str("to", p.Email).Msg("convite enviado")
	return nil
}

func (h *UserInviteHandler) link(token string) (string, error) {
	u, err := url.Parse(h.signupURL)
	if err != nil {
		return "", fmt.Errorf("INVITE_SIGNUP_URL inválida: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

var inviteTemplate = template.Must(template.New("convite").Parse(`<h2>Bem-vindo, {{.Name}}!</h2>
<p>Você foi convidado para acessar o sistema da {{.Store}}.</p>
<p>Para criar sua senha, clique no link abaixo:</p>
<p><a href="{{.Link}}">Criar minha senha</a></p>
<p>Este link expira em 7 dias.</p>
`))

func (h *UserInviteHandler) body(name, link string) (string, error) {
	var buf bytes.Buffer
	err := inviteTemplate.Execute(&buf, struct{ Name, Store, Link string }{name, h.store, link})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
