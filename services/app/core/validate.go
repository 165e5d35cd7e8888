package core

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf16"
)

var (
	ErrEmailRequired           = errors.New("Email é obrigatório")
	ErrEmailInvalid            = errors.New("Email inválido")
	ErrPasswordRequired        = errors.New("Senha é obrigatória")
	ErrPasswordTooShort        = errors.New("Senha deve ter pelo menos 6 caracteres")
	ErrNameRequired            = errors.New("Nome é obrigatório")
	ErrNameTooShort            = errors.New("Nome deve ter pelo menos 2 caracteres")
	ErrConfirmPasswordRequired = errors.New("Confirmação de senha é obrigatória")
	ErrPasswordMismatch        = errors.New("As senhas não coincidem")

	ErrTitleRequired       = errors.New("Título é obrigatório")
	ErrDescriptionRequired = errors.New("Descrição é obrigatória")
	ErrCategoryRequired    = errors.New("Categoria é obrigatória")
	ErrPriorityInvalid     = errors.New("Prioridade inválida")
	ErrStatusInvalid       = errors.New("Status inválido")
)

const (
	minPasswordLen = 6
	minNameLen     = 2
)

// notSpace excludes everything a browser counts as white space, which is
// wider than RE2's ASCII-only \s.
const notSpace = `[^\s\x{0B}\x{A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}@]`

var emailRe = regexp.MustCompile(`^` + notSpace + `+@` + notSpace + `+\.` + notSpace + `+$`)

// textLength counts UTF-16 code units, so minimum lengths match what the
// browser form enforces.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		l := utf16.RuneLen(r)
		if l < 0 {
			l = 1
		}
		n += l
	}
	return n
}

// FieldErrors maps a form field to its message. Only failing fields are present.
type FieldErrors map[string]string

func (fe FieldErrors) add(field string, err error) {
	if err != nil {
		fe[field] = err.Error()
	}
}

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, field := range formFieldOrder {
		if msg, ok := fe[field]; ok {
			parts = append(parts, field+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

var formFieldOrder = []string{
	"name", "email", "password", "confirmPassword",
	"title", "description", "category", "priority", "status",
}

func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if !emailRe.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if textLength(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}

func ValidateName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	if textLength(name) < minNameLen {
		return ErrNameTooShort
	}
	return nil
}

func ValidateConfirmPassword(password, confirm string) error {
	if confirm == "" {
		return ErrConfirmPasswordRequired
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

func ValidateLoginForm(data LoginData) FieldErrors {
	errs := FieldErrors{}
	errs.add("email", ValidateEmail(data.Email))
	errs.add("password", ValidatePassword(data.Password))
	return errs
}

func ValidateRegisterForm(data RegisterData) FieldErrors {
	errs := FieldErrors{}
	errs.add("name", ValidateName(data.Name))
	errs.add("email", ValidateEmail(data.Email))
	errs.add("password", ValidatePassword(data.Password))
	errs.add("confirmPassword", ValidateConfirmPassword(data.Password, data.ConfirmPassword))
	return errs
}

// TaskForm is the create/edit task form. When UseCustomCategory is set the
// user typed a new category instead of picking an existing one.
type TaskForm struct {
	Title             string
	Description       string
	Category          string
	CustomCategory    string
	UseCustomCategory bool
	Priority          TaskPriority
	Status            TaskStatus
}

func (f TaskForm) category() string {
	if f.UseCustomCategory {
		return f.CustomCategory
	}
	return f.Category
}

func ValidateTaskForm(f TaskForm) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Title) == "" {
		errs.add("title", ErrTitleRequired)
	}
	if strings.TrimSpace(f.Description) == "" {
		errs.add("description", ErrDescriptionRequired)
	}
	if strings.TrimSpace(f.category()) == "" {
		errs.add("category", ErrCategoryRequired)
	}
	if f.Priority != "" && !f.Priority.Valid() {
		errs.add("priority", ErrPriorityInvalid)
	}
	if f.Status != "" && !f.Status.Valid() {
		errs.add("status", ErrStatusInvalid)
	}
	return errs
}

// Request builds the payload sent for a validated form.
func (f TaskForm) Request() CreateTaskRequest {
	req := CreateTaskRequest{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Category:    strings.TrimSpace(f.category()),
		Priority:    f.Priority,
		Status:      f.Status,
	}
	if req.Priority == "" {
		req.Priority = PriorityMedium
	}
	if req.Status == "" {
		req.Status = StatusPending
	}
	return req
}

// ValidateTaskPatch applies the task form rules to the fields a patch sets.
func ValidateTaskPatch(p TaskPatch) FieldErrors {
	errs := FieldErrors{}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		errs.add("title", ErrTitleRequired)
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		errs.add("description", ErrDescriptionRequired)
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		errs.add("category", ErrCategoryRequired)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		errs.add("priority", ErrPriorityInvalid)
	}
	if p.Status != nil && !p.Status.Valid() {
		errs.add("status", ErrStatusInvalid)
	}
	return errs
}

// Trimmed returns p with surrounding whitespace removed from its text fields.
func (p TaskPatch) Trimmed() TaskPatch {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	p.Title = trim(p.Title)
	p.Description = trim(p.Description)
	p.Category = trim(p.Category)
	return p
}
