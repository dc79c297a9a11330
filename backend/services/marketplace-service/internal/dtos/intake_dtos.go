package dtos

// OwnerSubmitRequest is decoded from the multipart intake form.
type OwnerSubmitRequest struct {
	OwnerName       string `validate:"required,max=200"`
	OwnerEmail      string `validate:"required,email"`
	Title           string `validate:"required,max=200"`
	Description     string `validate:"required,max=5000"`
	Address         string `validate:"required,max=500"`
	BaseNightlyRate int    `validate:"required,min=1"`
	MaxGuests       int    `validate:"required,min=1,max=50"`
	Consent         bool   `validate:"required"`
}

type OwnerSubmitResponse struct {
	Success    bool   `json:"success"`
	PropertyID string `json:"property_id"`
	ProjectID  string `json:"project_id"`
}

// UploadedPhoto is one photo read from a multipart request.
type UploadedPhoto struct {
	Filename string
	Data     []byte
}
