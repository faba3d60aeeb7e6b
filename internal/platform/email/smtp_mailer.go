package email

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ferdiebergado/verikit/internal/config"
	"github.com/wneessen/go-mail"
)

var _ Mailer = (*SMTPMailer)(nil)

type templateMap map[string]*template.Template

// SMTPMailer delivers mail through an SMTP relay using go-mail.
type SMTPMailer struct {
	client    *mail.Client
	from      string
	fromName  string
	templates templateMap
}

func NewSMTPMailer(cfg *SMTPConfig, opts *config.Email) (*SMTPMailer, error) {
	clientOpts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}

	client, err := mail.NewClient(cfg.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("new mail client for host %q: %w", cfg.Host, err)
	}

	path := opts.Templates
	layoutFile := filepath.Join(path, opts.Layout)
	tmplMap, err := parsePages(path, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse pages at path %q and layout file %q: %w", path, layoutFile, err)
	}

	return &SMTPMailer{
		client:    client,
		from:      cfg.From,
		fromName:  cfg.FromName,
		templates: tmplMap,
	}, nil
}

func (m *SMTPMailer) send(to []string, subject, body string, contentType mail.ContentType) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("set from address %q: %w", m.from, err)
	}
	if err := msg.To(to...); err != nil {
		return fmt.Errorf("set recipients %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(contentType, body)

	if err := m.client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending email from %q to %q: %w", m.from, to, err)
	}

	slog.Info("Email sent.", "subject", subject)
	return nil
}

func (m *SMTPMailer) SendHTML(to []string, subject, tmplName string, data map[string]string) error {
	tmpl, ok := m.templates[tmplName]
	if !ok {
		return fmt.Errorf("template does not exist: %s", tmplName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute email template for subject %q: %w", subject, err)
	}

	if err := m.send(to, subject, buf.String(), mail.TypeTextHTML); err != nil {
		return fmt.Errorf("sending email to %q with subject %q: %w", to, subject, err)
	}

	return nil
}

func (m *SMTPMailer) SendPlain(to []string, subject, body string) error {
	return m.send(to, subject, body, mail.TypeTextPlain)
}

func parsePages(templateDir, layoutFile string) (templateMap, error) {
	tmplMap := make(templateMap)
	layoutTmpl, err := template.New("layout").ParseFiles(layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout file %q: %w", layoutFile, err)
	}

	err = fs.WalkDir(os.DirFS(templateDir), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk directory %q at path %q: %w", templateDir, path, err)
		}

		const suffix = ".html"
		if !d.IsDir() && strings.HasSuffix(path, suffix) && filepath.Base(path) != filepath.Base(layoutFile) {
			name := strings.TrimSuffix(path, suffix)
			page, err := layoutTmpl.Clone()
			if err != nil {
				return fmt.Errorf("clone layout template: %w", err)
			}
			tmplMap[name], err = page.ParseFiles(filepath.Join(templateDir, path))
			if err != nil {
				return fmt.Errorf("parse page template %q: %w", path, err)
			}
			slog.Debug("parsed page", "path", path, "name", name)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("load pages templates: %w", err)
	}

	return tmplMap, nil
}
