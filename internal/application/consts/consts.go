package consts

type OutboxStatus int

const (
	NotProcessed OutboxStatus = iota
	Processing
	Processed
	InError
)

type DomainChoice string

const (
	DomainRegisteredForMe DomainChoice = "registered-for-me"
	DomainCustom          DomainChoice = "custom"
)

type ThemeChoice string

const (
	ThemeDefault ThemeChoice = "default"
	ThemeCustom  ThemeChoice = "custom"
)

type FileRole string

const (
	FileRoleLogo  FileRole = "logo"
	FileRoleMedia FileRole = "media"
	FileRoleOther FileRole = "other"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAdmin     Sender = "admin"
	SenderAssistant Sender = "assistant"
)

// OrderSchemaVersion is written into every custom_requests row. Readers must
// ignore unknown keys inside the extension payload of newer rows.
const OrderSchemaVersion = 1
