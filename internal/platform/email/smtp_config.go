package email

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ferdiebergado/verikit/internal/pkg/message"
)

const (
	envSMTPHost     = "SMTP_HOST"
	envSMTPPort     = "SMTP_PORT"
	envSMTPUser     = "SMTP_USER"
	envSMTPPass     = "SMTP_PASS"
	envSMTPFrom     = "SMTP_FROM_EMAIL"
	envSMTPFromName = "SMTP_FROM_NAME"
)

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
}

// NewSMTPConfig reads the SMTP settings from the environment. It returns an
// error when a required variable is absent so the caller can degrade to the
// logging mailer instead of failing startup.
func NewSMTPConfig() (*SMTPConfig, error) {
	smtpHost, err := getEnv(envSMTPHost)
	if err != nil {
		return nil, err
	}

	smtpPortStr, err := getEnv(envSMTPPort)
	if err != nil {
		return nil, err
	}

	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		return nil, fmt.Errorf("convert smtp port %q to int: %w", smtpPortStr, err)
	}

	smtpUser, err := getEnv(envSMTPUser)
	if err != nil {
		return nil, err
	}

	smtpPass, err := getEnv(envSMTPPass)
	if err != nil {
		return nil, err
	}

	smtpFrom, err := getEnv(envSMTPFrom)
	if err != nil {
		return nil, err
	}

	return &SMTPConfig{
		Host:     smtpHost,
		Port:     smtpPort,
		User:     smtpUser,
		Password: smtpPass,
		From:     smtpFrom,
		FromName: os.Getenv(envSMTPFromName),
	}, nil
}

func getEnv(envVar string) (string, error) {
	val, ok := os.LookupEnv(envVar)
	if !ok {
		return "", fmt.Errorf(message.EnvErrFmt, envVar)
	}
	return val, nil
}
