package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MaxLoginLength    = 254
	MinPasswordLength = 8

	// Минимально допустимое значение retentionDays
	RetentionDaysMin = 1
)

// Телефон в международном формате: плюс и все цифры слитно
var phoneRegex = regexp.MustCompile(`^\+[0-9]{7,15}$`)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateLogin проверяет учетную запись (email-логин)
func ValidateLogin(login string) error {
	login = strings.TrimSpace(login)
	if login == "" {
		return fmt.Errorf("login cannot be empty")
	}
	if len(login) > MaxLoginLength {
		return fmt.Errorf("login cannot exceed %d characters", MaxLoginLength)
	}
	if !emailRegex.MatchString(login) {
		return fmt.Errorf("login must be a valid email address")
	}
	return nil
}

// ValidatePassword проверяет пароль
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	return nil
}

// ValidatePhoneNumber проверяет номер телефона
func ValidatePhoneNumber(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("phone number cannot be empty")
	}
	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf("phone number must start with + followed by digits only")
	}
	return nil
}

// ValidateConfirmationCode проверяет код подтверждения из Telegram
func ValidateConfirmationCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("confirmation code cannot be empty")
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("confirmation code must contain digits only")
		}
	}
	return nil
}

// ValidateRetentionDays проверяет значение retentionDays
func ValidateRetentionDays(days int) error {
	if days < RetentionDaysMin {
		return fmt.Errorf("retentionDays must be at least %d", RetentionDaysMin)
	}
	return nil
}
