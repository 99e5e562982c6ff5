package dbmodels

// FileDamage - фотофиксация повреждения по заявлению
type FileDamage struct {
	BaseModel
	RequestID  string `gorm:"type:varchar(36);index"`
	BigPath    string `gorm:"type:varchar(512)"`
	MediumPath string `gorm:"type:varchar(512)"`
	SmallPath  string `gorm:"type:varchar(512)"`
	Notes      string
}
