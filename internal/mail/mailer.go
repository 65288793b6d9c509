// Package mail sends confirmation e-mails over SMTP.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/krosec/sec-guard/internal/config"
	"github.com/krosec/sec-guard/internal/service"
)

type Mailer struct {
	addr string
	from string
	auth smtp.Auth
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &Mailer{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from: cfg.From,
		auth: auth,
	}
}

func (m *Mailer) SendClientApproval(_ context.Context, msg service.ClientApprovalMessage) error {
	body := strings.Join([]string{
		fmt.Sprintf("Dear %s,", msg.ClientName),
		"",
		fmt.Sprintf("Your security contract #%s has been approved and is now in force.", msg.ContractNumber),
		"",
		"Contract details:",
		fmt.Sprintf("  Contract number: %s", msg.ContractNumber),
		fmt.Sprintf("  Protected site: %s", msg.ObjectName),
		fmt.Sprintf("  Address: %s", msg.ObjectAddress),
		fmt.Sprintf("  Assigned guard: %s", msg.EmployeeName),
		fmt.Sprintf("  Guard hours: %s", msg.ShiftWindow),
		fmt.Sprintf("  Start date: %s", msg.StartDate),
		fmt.Sprintf("  End date: %s", msg.EndDate),
		"",
		"Protection will be provided according to the approved duty schedule.",
		"",
		"Kind regards,",
		"KROS Security",
	}, "\r\n")
	return m.send(msg.Email, "Your security contract has been approved", body)
}

func (m *Mailer) SendEmployeeAssignment(_ context.Context, msg service.EmployeeAssignmentMessage) error {
	body := strings.Join([]string{
		fmt.Sprintf("Dear %s,", msg.EmployeeName),
		"",
		"You have been assigned to a new guard duty.",
		"",
		"Assignment details:",
		fmt.Sprintf("  Contract number: %s", msg.ContractNumber),
		fmt.Sprintf("  Client: %s", msg.ClientName),
		fmt.Sprintf("  Site: %s", msg.ObjectName),
		fmt.Sprintf("  Address: %s", msg.ObjectAddress),
		fmt.Sprintf("  Shift hours: %s", msg.ShiftWindow),
		fmt.Sprintf("  Duty period: %s to %s", msg.StartDate, msg.EndDate),
		fmt.Sprintf("  Additional instructions: %s", msg.Notes),
		"",
		"Please review your duty schedule in the system and report for your",
		"first shift at the stated time.",
		"",
		"Kind regards,",
		"KROS Security",
	}, "\r\n")
	return m.send(msg.Email, "New guard duty assignment", body)
}

func (m *Mailer) send(to, subject, body string) error {
	headers := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
	}, "\r\n")
	payload := []byte(headers + "\r\n\r\n" + body + "\r\n")
	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, payload)
}
