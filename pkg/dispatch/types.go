package dispatch

import (
	"bytes"
	"encoding/json"

	"github.com/quickwinfinance/duesflow/pkg/mailer"
)

// Request is a rendered email ready to go to one recipient. The metadata
// fields only feed the confirmation message and log lines.
type Request struct {
	Tags          mailer.Tags `json:"-"`
	To            string      `json:"to" validate:"required,email"`
	Subject       string      `json:"subject" validate:"required,notblank"`
	HTML          string      `json:"html" validate:"required,notblank"`
	ClientName    string      `json:"clientName,omitempty"`
	InvoiceNumber string      `json:"invoiceNumber,omitempty"`
	Amount        Text        `json:"amount,omitempty"`
	DueDate       string      `json:"dueDate,omitempty"`
}

// Result is the response envelope of every dispatch.
type Result struct {
	EmailID string `json:"emailId,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}

// Failure builds the envelope for a failed dispatch.
func Failure(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

// Text is a string that also accepts a bare JSON number.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}
