// Package notify turns account events into email jobs on the message queue.
package notify

import (
	"context"
	"time"

	"github.com/oksasatya/user-accounts/config"
	"github.com/oksasatya/user-accounts/internal/domain/entity"
	"github.com/oksasatya/user-accounts/pkg/mailer"
	"github.com/oksasatya/user-accounts/pkg/mailer/templates"
)

const publishTimeout = 3 * time.Second

// Publisher is satisfied by *helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmailNotifier queues templated emails. With MailSendEnabled off it does nothing.
type EmailNotifier struct {
	Pub    Publisher
	Config *config.Config
}

func NewEmailNotifier(pub Publisher, cfg *config.Config) *EmailNotifier {
	return &EmailNotifier{Pub: pub, Config: cfg}
}

func (n *EmailNotifier) UserCreated(ctx context.Context, u *entity.User) error {
	return n.publish(ctx, templates.UserCreated, u, u.CreatedAt)
}

func (n *EmailNotifier) PasswordChanged(ctx context.Context, u *entity.User) error {
	return n.publish(ctx, templates.PasswordChanged, u, u.UpdatedAt)
}

func (n *EmailNotifier) publish(ctx context.Context, kind string, u *entity.User, at time.Time) error {
	if n.Pub == nil || n.Config == nil || !n.Config.MailSendEnabled {
		return nil
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: kind,
		Data:     templates.NewData(kind, n.Config, u.Name, u.Email, templates.WithTime(at)),
	}
	c, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	return n.Pub.PublishJSON(c, job)
}
