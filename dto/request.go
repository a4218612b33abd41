package dto

import (
	"mime/multipart"
)

// ChallanUploadRequest represents the incoming multipart request
type ChallanUploadRequest struct {
	Files    []*multipart.FileHeader `form:"files[]"`
	Password string                  `form:"password"`
}

// Validate performs basic validation on the request
func (r *ChallanUploadRequest) Validate() error {
	if len(r.Files) == 0 {
		return ErrNoDocuments
	}
	return nil
}
