package email

// Mailer is the outbound-email capability. Delivery is best-effort:
// callers must not fail their own transaction when a send errors.
type Mailer interface {
	SendPlain(to []string, subject, body string) error
	SendHTML(to []string, subject, tmplName string, data map[string]string) error
}
