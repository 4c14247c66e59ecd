package mailer

import (
	"fmt"
	"net/smtp"

	"festival-registration-backend/internal/config"

	"github.com/sirupsen/logrus"
)

// SendLoginCode delivers a one-time sign-in code. When SMTP is not
// configured the code is logged instead so development logins still work.
func SendLoginCode(cfg *config.Config, recipient, code string) error {
	if cfg.SMTPHost == "" {
		logrus.WithFields(logrus.Fields{
			"email": recipient,
			"code":  code,
		}).Warn("SMTP not configured, login code not mailed")
		return nil
	}

	subject := "Your sign-in code"
	body := fmt.Sprintf("Your one-time sign-in code is %s.\nIt expires in 10 minutes.", code)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		cfg.SMTPFrom, recipient, subject, body,
	)

	addr := fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort)
	auth := smtp.PlainAuth("", cfg.SMTPFrom, cfg.SMTPPass, cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, cfg.SMTPFrom, []string{recipient}, []byte(msg)); err != nil {
		logrus.WithError(err).WithField("email", recipient).Warn("failed to send login code")
		return fmt.Errorf("send email: %w", err)
	}

	logrus.WithField("email", recipient).Info("login code sent")
	return nil
}
