package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
)

// ValidationError collects field-level messages. Only the first message per
// field is kept.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, msg string) {
	if msg == "" {
		return
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// orNil avoids returning a typed nil inside the error interface.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var reservedUsernames = map[string]struct{}{
	"admin": {}, "administrator": {}, "root": {}, "user": {}, "guest": {},
	"test": {}, "api": {}, "www": {}, "mail": {}, "support": {},
}

var weakPasswords = map[string]struct{}{
	"password": {}, "123456": {}, "qwerty": {}, "abc123": {},
	"password123": {}, "admin": {}, "letmein": {},
}

// validate uses the "validate" struct tag so that gin's own binding step
// never runs the custom rules below.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("validate")

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"handle": func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		},
		"notreserved": func(fl validator.FieldLevel) bool {
			_, reserved := reservedUsernames[strings.ToLower(fl.Field().String())]
			return !reserved
		},
		"notcommon": func(fl validator.FieldLevel) bool {
			_, weak := weakPasswords[strings.ToLower(fl.Field().String())]
			return !weak
		},
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
		"difficulty": func(fl validator.FieldLevel) bool {
			_, ok := entities.NormalizeDifficulty(fl.Field().String())
			return ok
		},
		"optionletter": func(fl validator.FieldLevel) bool {
			return optionIndex(fl.Field().String()) >= 0
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %q validation: %v", tag, err))
		}
	}

	v.RegisterStructValidation(validateAnswerOption, QuestionRequest{})

	return v
}

// validateAnswerOption rejects a well-formed answer letter that points past
// the supplied options.
func validateAnswerOption(sl validator.StructLevel) {
	q := sl.Current().Interface().(QuestionRequest)

	idx := optionIndex(q.CorrectAnswer)
	if idx >= 0 && idx >= len(q.Options) {
		sl.ReportError(q.CorrectAnswer, "correctAnswer", "CorrectAnswer", "answeroption", "")
	}
}

func optionIndex(answer string) int {
	answer = strings.ToUpper(strings.TrimSpace(answer))
	for i, letter := range entities.OptionLetters {
		if letter == answer {
			return i
		}
	}
	return -1
}

// ValidateRegistration checks a sign-up form.
func ValidateRegistration(req RegisterRequest) error {
	return validateStruct(req)
}

// ValidateQuiz checks a quiz together with all of its questions.
func ValidateQuiz(req QuizRequest) error {
	return validateStruct(req)
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	verr := newValidationError()
	for _, fe := range fieldErrs {
		verr.add(fieldKey(fe.Namespace()), messageFor(fe))
	}
	return verr.orNil()
}

// fieldKey turns "QuizRequest.questions[0].options[2]" into
// "questions[0].options".
func fieldKey(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	}
	if strings.HasSuffix(namespace, "]") {
		if i := strings.LastIndexByte(namespace, '['); i > strings.LastIndexByte(namespace, '.') {
			namespace = namespace[:i]
		}
	}
	return namespace
}

var fieldLabels = map[string]string{
	"username":         "Username",
	"email":            "Email",
	"password":         "Password",
	"confirmPassword":  "Password confirmation",
	"title":            "Quiz title",
	"description":      "Description",
	"category":         "Category",
	"timeLimitMinutes": "Time limit",
	"questionText":     "Question text",
	"correctAnswer":    "Correct answer",
}

func messageFor(fe validator.FieldError) string {
	name := fe.Field()
	index := -1
	if i := strings.IndexByte(name, '['); i >= 0 {
		index, _ = strconv.Atoi(strings.TrimSuffix(name[i+1:], "]"))
		name = name[:i]
	}

	label, ok := fieldLabels[name]
	if !ok {
		label = name
	}

	switch name {
	case "questions":
		return "At least one question is required"
	case "timeLimitMinutes":
		return "Time limit must be between 1 and 300 minutes"
	case "options":
		if index >= 0 && index < len(entities.OptionLetters) {
			letter := entities.OptionLetters[index]
			if fe.Tag() == "max" {
				return fmt.Sprintf("Option %s is too long (maximum %s characters)", letter, fe.Param())
			}
			return fmt.Sprintf("Option %s is required", letter)
		}
		if fe.Tag() == "max" {
			return fmt.Sprintf("At most %s options are allowed", fe.Param())
		}
		return "At least 2 options are required"
	}

	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
	case "email":
		return "Invalid email format"
	case "handle":
		return "Username can only contain letters, numbers, underscore, and dash"
	case "notreserved":
		return "This username is reserved and cannot be used"
	case "notcommon":
		return "Password is too common. Please choose a stronger password"
	case "eqfield":
		return "Password and confirmation password do not match"
	case "difficulty":
		return "Difficulty must be Easy, Medium, or Hard"
	case "optionletter":
		return "Correct answer must be A, B, C, or D"
	case "answeroption":
		return fmt.Sprintf("Correct answer %v has no matching option", fe.Value())
	}
	return label + " is invalid"
}
