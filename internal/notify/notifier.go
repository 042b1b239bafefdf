// Package notify delivers check results over SMTP, falling back to the
// operator-visible output stream whenever delivery is not possible. The
// fallback is the correctness backstop: a check result must never vanish
// unseen.
package notify

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Config holds the mail transport settings. From defaults to Username at
// the configuration layer; any missing required field downgrades delivery
// to the console fallback.
type Config struct {
	Host           string
	Port           int
	Username       string
	Password       string
	From           string
	To             string
	ConnectTimeout time.Duration
}

var recipientSeparators = regexp.MustCompile(`[,;\s]+`)

// ParseRecipients splits a comma/semicolon/whitespace-separated address
// list into a de-duplicated slice preserving first-seen order.
func ParseRecipients(raw string) []string {
	parts := recipientSeparators.Split(raw, -1)
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Notifier sends subject/body messages. It never returns a transport
// failure to the caller; every message reaches at least the fallback writer.
type Notifier struct {
	cfg        Config
	recipients []string
	out        io.Writer
	logger     *zap.Logger

	// deliver is swapped out in tests to avoid a live SMTP server.
	deliver func(ctx context.Context, subject, body string) error
}

// New builds a notifier writing its fallback to out.
func New(cfg Config, out io.Writer, logger *zap.Logger) *Notifier {
	n := &Notifier{
		cfg:        cfg,
		recipients: ParseRecipients(cfg.To),
		out:        out,
		logger:     logger,
	}
	n.deliver = n.sendSMTP
	return n
}

func (n *Notifier) configured() bool {
	return n.cfg.Host != "" && n.cfg.Username != "" && n.cfg.Password != "" &&
		n.cfg.From != "" && len(n.recipients) > 0
}

// Send dispatches one message. An incomplete configuration is not an error;
// a transport failure is reported and recovered by printing the message.
func (n *Notifier) Send(ctx context.Context, subject, body string) error {
	n.logger.Info("Email config",
		zap.String("host", n.cfg.Host),
		zap.Int("port", n.cfg.Port),
		zap.String("user", n.cfg.Username),
		zap.String("from", n.cfg.From),
		zap.Strings("to", n.recipients),
	)

	if !n.configured() {
		n.logger.Warn("SMTP not fully configured; printing message instead of emailing")
		n.printFallback(subject, body)
		return nil
	}

	if err := n.deliver(ctx, subject, body); err != nil {
		n.logger.Error("Email send failed; printing message instead",
			zap.String("host", n.cfg.Host),
			zap.Int("port", n.cfg.Port),
			zap.Error(err),
		)
		n.printFallback(subject, body)
		return nil
	}

	n.logger.Info("Email sent successfully")
	return nil
}

// sendSMTP speaks to the configured server. Port 465 uses implicit TLS;
// every other port connects plaintext and upgrades via STARTTLS before
// authenticating.
func (n *Notifier) sendSMTP(ctx context.Context, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("set sender %q: %w", n.cfg.From, err)
	}
	if err := msg.To(n.recipients...); err != nil {
		return fmt.Errorf("set recipients: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.Username),
		mail.WithPassword(n.cfg.Password),
		mail.WithTimeout(n.cfg.ConnectTimeout),
	}
	if n.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client for %s:%d: %w", n.cfg.Host, n.cfg.Port, err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send via %s:%d: %w", n.cfg.Host, n.cfg.Port, err)
	}
	return nil
}

func (n *Notifier) printFallback(subject, body string) {
	fmt.Fprintf(n.out, "Subject: %s\n%s\n", subject, body)
}
