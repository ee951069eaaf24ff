package attachments

type ListAttachmentsResponse struct {
	Attachments []*Attachment `json:"attachments"`
}
