package command

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/adamitejs/service-auth/internal/model"
)

type validatable interface {
	Validate() error
}

// bind decodes args into p and validates it.
func bind(args Args, p validatable) error {
	if err := decode(args, p); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %s", model.ErrInvalidArgument, err.Error())
	}
	return nil
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p *loginPayload) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Email, validation.Required),
		validation.Field(&p.Password, validation.Required),
	)
}

type createUserPayload struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	BypassLogin bool   `json:"bypassLogin"`
}

func (p *createUserPayload) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

type tokenPayload struct {
	Token string `json:"token"`
}

func (p *tokenPayload) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Token, validation.Required),
	)
}

type userPayload struct {
	UserID string `json:"userId"`
}

func (p *userPayload) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.UserID, validation.Required),
	)
}

type setEmailPayload struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

func (p *setEmailPayload) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.UserID, validation.Required),
		validation.Field(&p.Email, validation.Required, validation.Length(3, 254), is.Email),
	)
}

type setPasswordPayload struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

func (p *setPasswordPayload) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.UserID, validation.Required),
		validation.Field(&p.Password, validation.Required),
	)
}

type setDisabledPayload struct {
	UserID   string `json:"userId"`
	Disabled *bool  `json:"disabled"`
}

func (p *setDisabledPayload) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.UserID, validation.Required),
		validation.Field(&p.Disabled, validation.NotNil),
	)
}
