package contact

import (
	"context"
	"fmt"
	"net/smtp"
	"time"
)

// SimulatedSender pretends to deliver a message after a fixed delay. It
// makes no network call.
type SimulatedSender struct {
	Delay time.Duration
}

// Send waits Delay or until ctx is done.
func (s SimulatedSender) Send(ctx context.Context, _ Message) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// SMTPSender delivers messages with PLAIN auth.
type SMTPSender struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	// send is swapped in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// Send builds the notification email and hands it to the SMTP server. The
// call itself cannot be cancelled; ctx is checked before dialing.
func (s SMTPSender) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.User == "" || s.Pass == "" {
		return fmt.Errorf("SMTP credentials not configured")
	}
	send := s.send
	if send == nil {
		send = smtp.SendMail
	}
	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	if err := send(s.Host+":"+s.Port, auth, s.User, []string{s.To}, s.compose(m)); err != nil {
		return fmt.Errorf("smtp %s:%s: %w", s.Host, s.Port, err)
	}
	return nil
}

func (s SMTPSender) compose(m Message) []byte {
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Received: %s
Message:
%s

---
Sent from your portfolio contact form
`, m.Name, m.Email, m.ReceivedAt.Format(time.RFC1123), m.Body)

	return []byte("To: " + s.To + "\r\n" +
		"Subject: Portfolio Contact: " + sanitizeHeader(m.Name) + "\r\n" +
		"From: " + s.User + "\r\n" +
		"Reply-To: " + sanitizeHeader(m.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// sanitizeHeader strips CR and LF so user input cannot add headers.
func sanitizeHeader(v string) string {
	out := make([]rune, 0, len(v))
	for _, r := range v {
		if r == '\r' || r == '\n' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
