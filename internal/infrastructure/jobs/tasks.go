package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault fila única das tarefas do ERP.
	QueueDefault = "default"
	// TaskQuoteEmail envia o PDF de um orçamento por e-mail.
	TaskQuoteEmail = "orcamento:email"
	// TaskUserInvite envia o link de convite para o usuário criar a senha.
	TaskUserInvite = "usuario:convite"
)

// QuoteEmailPayload dados da tarefa TaskQuoteEmail.
type QuoteEmailPayload struct {
	QuoteID string `json:"quote_id"`
	To      string `json:"to"`
}

// NewQuoteEmailTask monta a tarefa.
func NewQuoteEmailTask(p QuoteEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQuoteEmail, data, asynq.MaxRetry(5)), nil
}

// UserInvitePayload dados da tarefa TaskUserInvite.
type UserInvitePayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

// NewUserInviteTask monta a tarefa.
func NewUserInviteTask(p UserInvitePayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskUserInvite, data, asynq.MaxRetry(5)), nil
}
