package dbmodels

import (
	"time"
)

// BaseModel - общие поля записей тенантской БД
type BaseModel struct {
	ID        string    `gorm:"primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntityRef - денормализованная ссылка на справочную запись,
// снимок на момент создания, история не зависит от правок справочника
type EntityRef struct {
	RefID string `gorm:"type:varchar(36)" json:"id"`
	Name  string `gorm:"type:varchar(255)" json:"name"`
	Key   int    `json:"key"`
}
