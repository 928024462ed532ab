package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/dmitrijs2005/docshare/internal/common"
	sc "github.com/dmitrijs2005/docshare/internal/server/config"
)

// SMTPNotifier delivers verification mail over plain SMTP with AUTH.
type SMTPNotifier struct {
	addr        string
	username    string
	password    string
	from        string
	frontendURL string
}

func NewSMTPNotifier(cfg *sc.Config) *SMTPNotifier {
	return &SMTPNotifier{
		addr:        cfg.SMTPAddr,
		username:    cfg.SMTPUsername,
		password:    cfg.SMTPPassword,
		from:        cfg.SMTPFrom,
		frontendURL: strings.TrimRight(cfg.FrontendURL, "/"),
	}
}

func (n *SMTPNotifier) SendVerificationEmail(ctx context.Context, email string, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", n.frontendURL, token)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.from)
	fmt.Fprintf(&b, "To: %s\r\n", email)
	b.WriteString("Subject: Email Verification\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("<html><body>")
	b.WriteString("<h2>Email Verification</h2>")
	b.WriteString("<p>Please click the following link to verify your email:</p>")
	fmt.Fprintf(&b, "<a href=%q>Verify Email</a>", link)
	b.WriteString("<p>If you didn't request this, please ignore this email.</p>")
	b.WriteString("</body></html>\r\n")

	host, _, err := net.SplitHostPort(n.addr)
	if err != nil {
		return fmt.Errorf("%w: bad smtp addr %q: %v", common.ErrorUpstreamUnavailable, n.addr, err)
	}

	auth := smtp.PlainAuth("", n.username, n.password, host)
	if err := smtp.SendMail(n.addr, auth, n.from, []string{email}, []byte(b.String())); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorUpstreamUnavailable, err)
	}

	return nil
}
