package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"time"

	"useradmin/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/golang-module/carbon/v2"
)

type EmailSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender                string
	setPasswordTemplate   string
	setPasswordBaseUrl    url.URL
	passwordResetTemplate string
	passwordResetBaseUrl  url.URL
	now                   func() time.Time
}

func NewEmailSender(
	awsConfig aws.Config,
	sender string,
	setPasswordTemplate string,
	setPasswordBaseUrl url.URL,
	passwordResetTemplate string,
	passwordResetBaseUrl url.URL,
	now func() time.Time,
) *EmailSender {
	return &EmailSender{
		ses:                   ses.NewFromConfig(awsConfig),
		sender:                sender,
		setPasswordTemplate:   setPasswordTemplate,
		setPasswordBaseUrl:    setPasswordBaseUrl,
		passwordResetTemplate: passwordResetTemplate,
		passwordResetBaseUrl:  passwordResetBaseUrl,
		now:                   now,
	}
}

func (s *EmailSender) SendSetPasswordToken(ctx context.Context, u user.User) error {
	if !u.SetPasswordToken.IsPresent {
		return errors.New("user set password token is not defined")
	}

	templateParamsBytes, err := json.Marshal(
		setPasswordTemplateParams{
			Username:       u.Username,
			SetPasswordUrl: s.setPasswordBaseUrl.JoinPath(string(u.SetPasswordToken.Value)).String(),
			ValidFor:       s.validFor(u.SetPasswordTokenExpiry.Value),
		},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(u.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.setPasswordTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

func (s *EmailSender) SendPasswordResetToken(ctx context.Context, u user.User) error {
	if !u.ResetPasswordToken.IsPresent {
		return errors.New("user reset password token is not defined")
	}

	templateParamsBytes, err := json.Marshal(
		passwordResetTemplateParams{
			Username:         u.Username,
			PasswordResetUrl: s.passwordResetBaseUrl.JoinPath(string(u.ResetPasswordToken.Value)).String(),
			ValidFor:         s.validFor(u.ResetPasswordTokenExpiry.Value),
		},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(u.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.passwordResetTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

func (s *EmailSender) validFor(expiry time.Time) string {
	return carbon.Time2Carbon(expiry).DiffForHumans(carbon.Time2Carbon(s.now()))
}

type setPasswordTemplateParams struct {
	Username       string `json:"username"`
	SetPasswordUrl string `json:"setPasswordUrl"`
	ValidFor       string `json:"validFor"`
}

type passwordResetTemplateParams struct {
	Username         string `json:"username"`
	PasswordResetUrl string `json:"passwordResetUrl"`
	ValidFor         string `json:"validFor"`
}
