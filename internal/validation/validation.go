// Package validation holds the field rules for every user supplied entity.
// Each Validate* function normalizes its input and returns either the clean
// value or an *errorz.ValidationError listing messages per field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/lshigami/Bulletin/internal/errorz"
)

const (
	SubjectMaxLen     = 200
	UsernameMaxLen    = 150
	PasswordMinLength = 8
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_@.+-]+$`)

type QuestionInput struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

type AnswerInput struct {
	Content string `json:"content" validate:"required"`
}

type SignupInput struct {
	Username  string `json:"username" validate:"required,max=150,username"`
	Email     string `json:"email" validate:"required,email"`
	Password1 string `json:"password1" validate:"required,min=8,notnumeric"`
	Password2 string `json:"password2" validate:"required,eqfield=Password1"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notnumeric", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.TrimFunc(s, func(r rune) bool { return r >= '0' && r <= '9' }) != ""
	})
	return v
}

func ValidateQuestion(in QuestionInput) (QuestionInput, error) {
	in.Subject = strings.TrimSpace(in.Subject)
	in.Content = strings.TrimSpace(in.Content)
	return in, check(in)
}

func ValidateAnswer(in AnswerInput) (AnswerInput, error) {
	in.Content = strings.TrimSpace(in.Content)
	return in, check(in)
}

// ValidateSignup does not trim passwords.
func ValidateSignup(in SignupInput) (SignupInput, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	return in, check(in)
}

func ValidateLogin(in LoginInput) (LoginInput, error) {
	in.Username = strings.TrimSpace(in.Username)
	return in, check(in)
}

func check(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	ve := &errorz.ValidationError{}
	for _, fe := range fieldErrs {
		ve.Add(fe.Field(), message(fe))
	}
	return ve
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).",
			fe.Param(), utf8.RuneCountInString(fe.Value().(string)))
	case "min":
		return fmt.Sprintf("This password is too short. It must contain at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "notnumeric":
		return "This password is entirely numeric."
	case "eqfield":
		return "The two password fields didn't match."
	}
	return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
}
