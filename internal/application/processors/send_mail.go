package processors

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/sitehatch/market-backend/internal/application/events"
	"github.com/sitehatch/market-backend/internal/infra/db"
	"github.com/sitehatch/market-backend/internal/infra/mail"
	dbs "github.com/sitehatch/market-backend/pkg/db"
	shared "github.com/sitehatch/market-backend/pkg/interfaces"
)

// SendMail turns an OrderSubmitted outbox event into the order-confirmation
// mail: render the stored template, record the mail, hand it to SMTP.
type SendMail struct {
	server     *mail.MailServer
	uowFactory *dbs.UOWFactory
}

func NewSendMail(server *mail.MailServer, uowFactory *dbs.UOWFactory) *SendMail {
	return &SendMail{server: server, uowFactory: uowFactory}
}

func (c *SendMail) Handle(ctx context.Context, event events.OrderSubmitted) (shared.UoW, error) {
	mailData := mail.OrderReceivedData{
		CustomerName: event.CustomerName,
		TemplateName: event.TemplateName,
		Price:        event.Price,
		Currency:     event.Currency,
		Year:         strconv.Itoa(time.Now().Year()),
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}

	var mailTemplate string
	err = tx.QueryRow(ctx, "SELECT content FROM market.mail_templates WHERE type = $1", mailData.GetMailType()).Scan(&mailTemplate)
	if err != nil {
		return uow, err
	}

	htmlBody, err := renderHTML(mailTemplate, mailData)
	if err != nil {
		return uow, fmt.Errorf("error rendering html, %v", err)
	}

	recipients := []string{event.CustomerEmail}
	record := db.Mail{
		MailType:   string(mailData.GetMailType()),
		Recipients: strings.Join(recipients, ","),
		Subject:    mailData.GetSubject(),
		Content:    htmlBody,
		SentAt:     time.Now(),
	}
	_, err = tx.Exec(ctx, "INSERT INTO market.mails(type, recipients, subject, content, sent_at) VALUES ($1,$2,$3,$4,$5)",
		record.MailType, record.Recipients, record.Subject, record.Content, record.SentAt,
	)
	if err != nil {
		return uow, err
	}
	err = c.server.SendMail(recipients, record.Subject, record.Content)
	if err != nil {
		return uow, err
	}

	return uow, nil
}

func renderHTML(tmpl string, data mail.MailData) (string, error) {
	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
