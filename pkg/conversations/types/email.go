package types

// EmailRecipient identifies a sender or receiver of an email message.
// Variables feed template substitution when performSubstitutions is set.
type EmailRecipient struct {
	Name      string            `json:"name,omitempty"`
	Address   string            `json:"address"`
	Variables map[string]string `json:"variables,omitempty"`
}

// EmailBody carries the HTML and/or plain text rendering of an email
type EmailBody struct {
	HTML string `json:"html,omitempty"`
	Text string `json:"text,omitempty"`
}

// EmailTracking toggles open and click tracking per message
type EmailTracking struct {
	Open  bool `json:"open"`
	Click bool `json:"click"`
}

// EmailAttachment references a file attached to an email
type EmailAttachment struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	URL    string `json:"URL"`
	Length int64  `json:"length,omitempty"`
}

// EmailInlineImage is an attachment referenced from the HTML body through
// its content ID
type EmailInlineImage struct {
	EmailAttachment
	ContentID string `json:"contentId"`
}

// EmailContent is the full composition payload for an email message
type EmailContent struct {
	ID                   string             `json:"id,omitempty"`
	To                   []EmailRecipient   `json:"to"`
	From                 *EmailRecipient    `json:"from"`
	Subject              string             `json:"subject"`
	Content              *EmailBody         `json:"content"`
	ReplyTo              string             `json:"replyTo,omitempty"`
	ReturnPath           string             `json:"returnPath,omitempty"`
	Headers              map[string]string  `json:"headers,omitempty"`
	Tracking             *EmailTracking     `json:"tracking,omitempty"`
	ReportURL            string             `json:"reportUrl,omitempty"`
	PerformSubstitutions *bool              `json:"performSubstitutions,omitempty"`
	Attachments          []EmailAttachment  `json:"attachments,omitempty"`
	InlineImages         []EmailInlineImage `json:"inlineImages,omitempty"`
}
