package schema

import (
	"encoding/json"
)

const (
	EmailKindSetPassword   = "set_password"
	EmailKindResetPassword = "reset_password"
)

// EmailNotification tells the worker which email to deliver. The
// worker reads the current token from the database, so the message
// carries no secrets.
type EmailNotification struct {
	Kind   string
	UserID int64
}

func (n *EmailNotification) Marshal() ([]byte, error) {
	return json.Marshal(n)
}

func (n *EmailNotification) Unmarshal(data []byte) error {
	return json.Unmarshal(data, n)
}
