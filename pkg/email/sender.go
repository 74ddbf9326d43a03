package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type SendEmailInput struct {
	To      string
	ToName  string
	Subject string
	Body    string
	Text    string
}

// Sender delivers one message. Implementations return once ctx is done
// even if the provider has not answered.
type Sender interface {
	Send(ctx context.Context, input SendEmailInput) error
}

// GenerateBodyFromTemplate renders the named html template from fsys into Body.
func (e *SendEmailInput) GenerateBodyFromTemplate(fsys fs.FS, name string, data interface{}) error {
	t, err := template.ParseFS(fsys, name)
	if err != nil {
		return fmt.Errorf("parse template failed: %w", err)
	}

	buf := new(bytes.Buffer)
	if err = t.Execute(buf, data); err != nil {
		return fmt.Errorf("email data injection failed: %w", err)
	}

	e.Body = buf.String()

	return nil
}

func (e *SendEmailInput) Validate() error {
	if e.To == "" {
		return errors.New("empty to")
	}

	if e.Subject == "" || (e.Body == "" && e.Text == "") {
		return errors.New("empty subject/body")
	}

	if !IsEmailValid(e.To) {
		return errors.New("invalid to email")
	}

	return nil
}

func IsEmailValid(address string) bool {
	return validate.Var(address, "required,email") == nil
}
