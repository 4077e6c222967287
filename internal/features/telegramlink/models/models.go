package models

import "time"

// Step — шаг мастера привязки Telegram-аккаунта.
type Step string

const (
	StepForm      Step = "form"      // ожидается номер телефона
	StepConfirm   Step = "confirm"   // код отправлен, ожидается подтверждение
	StepTwoFA     Step = "twofa"     // аккаунт защищён облачным паролем
	StepCompleted Step = "completed" // аккаунт привязан
)

// Статусы, которые мастер отдаёт наружу.
const (
	StatusCodeSent = "code_sent"
	StatusTwoFA    = "2fa_required"
	StatusOK       = "ok"
)

// WizardState — текущее положение мастера для конкретной сессии.
// Живёт в Redis между шагами и удаляется при завершении.
type WizardState struct {
	SessionName string    `json:"session_name"`
	Phone       string    `json:"phone"`
	CodeHash    string    `json:"code_hash"`
	Step        Step      `json:"step"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LinkedUser — данные Telegram-аккаунта после успешной привязки.
type LinkedUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LinkRecord — долговременная запись о привязанном аккаунте.
type LinkRecord struct {
	User        LinkedUser `json:"user"`
	Phone       string     `json:"phone"`
	SessionName string     `json:"session_name"`
	LinkedAt    time.Time  `json:"linked_at"`
}

type StartRequest struct {
	SessionName string `json:"session_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

type CompleteRequest struct {
	SessionName string `json:"session_name" binding:"required"`
	Code        string `json:"code" binding:"required"`
}

type TwoFARequest struct {
	SessionName string `json:"session_name" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// StepResponse — единый ответ всех шагов мастера.
// User заполняется только при status "ok".
type StepResponse struct {
	Status string      `json:"status"`
	User   *LinkedUser `json:"user,omitempty"`
}
