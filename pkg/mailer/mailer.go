package mailer

import (
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/config"
)

// Mailer sends account-provisioning mail over SMTP. A nil *Mailer is valid
// and silently drops messages, so the server can run without SMTP configured.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// New builds a Mailer from the mail configuration. Returns nil when no SMTP
// host is configured.
func New(cfg *config.MailConfig, logger *zap.Logger) *Mailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// SendCredentials mails a freshly provisioned or reset password to a worker.
func (m *Mailer) SendCredentials(to, nome, tempPassword string) error {
	if m == nil {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Credenziali di accesso - Registro attività")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Ciao %s,\n\n"+
			"il tuo account per il registro attività è pronto.\n\n"+
			"Email: %s\nPassword temporanea: %s\n\n"+
			"Ti verrà chiesto di cambiarla al primo accesso.\n",
		nome, to, tempPassword,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending credentials mail: %w", err)
	}

	m.logger.Info("credentials mail sent", zap.String("to", to))
	return nil
}
