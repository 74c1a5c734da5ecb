package templates

import (
	"time"

	"github.com/oksasatya/user-accounts/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04 MST")
	}
}

// NewData builds template data of the given kind for a recipient.
func NewData(kind string, cfg *config.Config, name, email string, opts ...Option) map[string]any {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           kind,
	}
	if cfg != nil {
		d.AppName = cfg.AppName
		d.CompanyName = cfg.CompanyName
		d.SupportURL = cfg.SupportURL
	}
	for _, opt := range opts {
		opt(&d)
	}
	return ToMap(d)
}
