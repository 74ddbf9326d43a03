package task

import (
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

const (
	SendOTPEmailTaskName     = "email:send_otp"
	SendWelcomeEmailTaskName = "email:send_welcome"
	SendEmailQueueName       = "sendEmailQueue"

	maxRetry = 5
)

type SendOTPEmail struct {
	Email   string `json:"email"`
	Code    string `json:"code"`
	Purpose string `json:"purpose"`
}

type SendWelcomeEmail struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func NewSendOTPEmailTask(email string, code string, purpose string) (*asynq.Task, error) {
	return newTask(SendOTPEmailTaskName, SendOTPEmail{Email: email, Code: code, Purpose: purpose})
}

func NewSendWelcomeEmailTask(email string, name string, role string) (*asynq.Task, error) {
	return newTask(SendWelcomeEmailTaskName, SendWelcomeEmail{Email: email, Name: name, Role: role})
}

func newTask(name string, data interface{}) (*asynq.Task, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "json data marshal failed")
	}

	return asynq.NewTask(
		name,
		payload,
		asynq.MaxRetry(maxRetry),
		asynq.Queue(SendEmailQueueName),
	), nil
}
