// Package api holds the request and response shapes of the HTTP surface.
package api

// SendFilesRequest is the JSON payload of the multipart file submission,
// carried in the "json" form field next to the "attachments" file parts.
type SendFilesRequest struct {
	Recipients []string `validate:"required,min=1" json:"recipients"`
	Compressed bool     `json:"compressed"`
}

// SendTextRequest is the JSON body of a text or code submission.
type SendTextRequest struct {
	Recipients []string `validate:"required,min=1" json:"recipients"`
	Content    string   `validate:"required" json:"content"`
	Language   string   `json:"language"`
	Filename   string   `json:"filename"`
	Compressed bool     `json:"compressed"`
}

// SendResponse is returned on successful delivery.
type SendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
