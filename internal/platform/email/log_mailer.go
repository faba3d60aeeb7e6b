package email

import "log/slog"

var _ Mailer = (*LogMailer)(nil)

// LogMailer is the Mailer used when SMTP is not configured. It logs what
// would have been sent so local development still surfaces the links.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendPlain(to []string, subject, body string) error {
	slog.Info("SMTP not configured, logging email instead.",
		"to", to, "subject", subject, "body", body)
	return nil
}

func (m *LogMailer) SendHTML(to []string, subject, tmplName string, data map[string]string) error {
	slog.Info("SMTP not configured, logging email instead.",
		"to", to, "subject", subject, "template", tmplName, slog.Any("data", data))
	return nil
}
