package form

// DefaultEndpoint is the contact API gateway stage the page posts to.
const DefaultEndpoint = "https://d6z0x3xwol.execute-api.eu-north-1.amazonaws.com/prod/contact"

// Element identifiers the handler expects on the page.
const (
	FormID         = "contactForm"
	SubmitButtonID = "submitBtn"
	ResponseAreaID = "responseMessage"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldSubject   = "subject"
	FieldMessage   = "message"
)

// Button labels and fixed messages.
const (
	SubmitLabel         = "Send Message"
	SendingLabel        = "Sending..."
	NetworkErrorMessage = "Network error. Please try again."
	ErrorPrefix         = "Error: "
)

// FieldIDs lists the inputs read into a Payload, in payload order.
var FieldIDs = []string{FieldName, FieldEmail, FieldSubject, FieldMessage}

// Payload is the JSON document posted to the endpoint.
type Payload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Result is the endpoint's reply. Absent fields decode to their zero values,
// which selects the error branch.
type Result struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId,omitempty"`
}

// PayloadFrom reads the four inputs exactly as entered.
func PayloadFrom(fields Fields) Payload {
	return Payload{
		Name:    fields.Value(FieldName),
		Email:   fields.Value(FieldEmail),
		Subject: fields.Value(FieldSubject),
		Message: fields.Value(FieldMessage),
	}
}
