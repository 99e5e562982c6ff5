package dbmodels

import "fmt"

// User - справочник пользователей тенанта
type User struct {
	BaseModel
	FirstName string `gorm:"type:varchar(150)"`
	LastName  string `gorm:"type:varchar(150)"`
	Email     string `gorm:"type:varchar(255)"`
	Key       int    `gorm:"index"`
	IsActive  bool
	IsDeleted bool
}

func (r User) GetFullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}

func (r User) ToRef() EntityRef {
	return EntityRef{
		RefID: r.ID,
		Name:  r.GetFullName(),
		Key:   r.Key,
	}
}
