package models

// DefaultRetentionDays применяется, пока пользователь не сохранил своё значение.
const DefaultRetentionDays = 15

// Settings — пользовательские настройки дашборда.
type Settings struct {
	RetentionDays int `json:"retentionDays"`
}

// UpdateRequest принимает указатель, чтобы отличать отсутствие поля от нуля.
type UpdateRequest struct {
	RetentionDays *int `json:"retentionDays" binding:"required"`
}
