package mail

type MailType string

const (
	OrderReceived MailType = "OrderReceived"
)

type MailData interface {
	GetMailType() MailType
	GetSubject() string
}

type OrderReceivedData struct {
	CustomerName string
	TemplateName string
	Price        string
	Currency     string
	Year         string
}

func (s OrderReceivedData) GetMailType() MailType {
	return OrderReceived
}

func (s OrderReceivedData) GetSubject() string {
	return "We received your custom order"
}
