package dto

// EmailAttachment is a single optional attachment applied to every message
// of a send, base64-encoded by the client.
type EmailAttachment struct {
	Filename string `json:"filename" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Type     string `json:"type,omitempty"`
}

// SendEmailRequest is the bulk notification payload. Either Message or
// Messages must be set; when Messages is used it must be parallel to
// Recipients.
type SendEmailRequest struct {
	Recipients []string         `json:"recipients" binding:"required"`
	Subject    string           `json:"subject" binding:"required"`
	Message    string           `json:"message,omitempty"`
	Messages   []string         `json:"messages,omitempty"`
	Attachment *EmailAttachment `json:"attachment,omitempty"`
}

// SendEmailResponse lists the addresses that were accepted by the mail
// transport.
type SendEmailResponse struct {
	Message       string   `json:"message"`
	SuccessEmails []string `json:"successEmails"`
}
