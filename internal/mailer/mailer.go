// Package mailer delivers the finished artifact as an email attachment.
// It is a one-shot collaborator: the pipeline produces the artifact, the
// mailer sends it once, and delivery retries are out of scope.
package mailer

import (
	"bytes"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"path/filepath"
	"time"
)

// Config holds the SMTP submission settings. Implicit TLS is assumed
// (port 465 style submission).
type Config struct {
	Host     string
	Port     int
	From     string
	Password string
}

// Mailer sends messages over SMTP with implicit TLS.
type Mailer struct {
	cfg Config
}

// New builds a mailer from config.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendArtifact emails the artifact bytes to the recipient as a CSV
// attachment named after the file's base name.
func (m *Mailer) SendArtifact(to, subject, bodyText, artifactPath string, artifact []byte) error {
	msg, err := buildMessage(m.cfg.From, to, subject, bodyText, filepath.Base(artifactPath), artifact)
	if err != nil {
		return fmt.Errorf("building message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("starting SMTP session: %w", err)
	}
	defer func() { _ = client.Close() }()

	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP auth failed: %w", err)
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("MAIL FROM rejected: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("RCPT TO rejected: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("opening DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finishing DATA: %w", err)
	}

	return client.Quit()
}

// buildMessage assembles a multipart MIME message with a text part and a
// CSV attachment.
func buildMessage(from, to, subject, bodyText, filename string, attachment []byte) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", mw.Boundary())
	fmt.Fprintf(&buf, "\r\n")

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=utf-8")
	textPart, err := mw.CreatePart(textHeader)
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(bodyText)); err != nil {
		return nil, err
	}

	attachHeader := textproto.MIMEHeader{}
	attachHeader.Set("Content-Type", "application/csv")
	attachHeader.Set("Content-Transfer-Encoding", "base64")
	attachHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	attachPart, err := mw.CreatePart(attachHeader)
	if err != nil {
		return nil, err
	}

	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(attachment)))
	base64.StdEncoding.Encode(encoded, attachment)
	// Wrap base64 output at 76 chars per RFC 2045.
	for len(encoded) > 0 {
		n := 76
		if n > len(encoded) {
			n = len(encoded)
		}
		if _, err := attachPart.Write(encoded[:n]); err != nil {
			return nil, err
		}
		if _, err := attachPart.Write([]byte("\r\n")); err != nil {
			return nil, err
		}
		encoded = encoded[n:]
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
