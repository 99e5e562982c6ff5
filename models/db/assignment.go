package dbmodels

import (
	"asset-tools-backend/models"
)

// AssignmentTransaction - пакетная выдача активов одному пользователю в рамках одной группы
type AssignmentTransaction struct {
	BaseModel
	TransactionID string                   `gorm:"type:varchar(20);uniqueIndex"` // ASG-<ГГММДД>-<NNNN>
	Manager       EntityRef                `gorm:"embedded;embeddedPrefix:manager_"`
	Group         EntityRef                `gorm:"embedded;embeddedPrefix:group_"`
	AssignedTo    EntityRef                `gorm:"embedded;embeddedPrefix:assigned_to_"`
	Status        models.TransactionStatus `gorm:"type:varchar(50);index"`
	Requests      []AssignmentRequest      `gorm:"foreignKey:TransactionRecID"`
}

// AssignmentRequest - один актив внутри транзакции.
// Атрибуты актива фиксируются на момент создания запроса.
type AssignmentRequest struct {
	BaseModel
	TransactionRecID string                 `gorm:"type:varchar(36);index"`
	Transaction      *AssignmentTransaction `gorm:"foreignKey:TransactionRecID"`
	AssetID          string                 `gorm:"type:varchar(36);index"`
	AssetName        EntityRef              `gorm:"embedded;embeddedPrefix:asset_name_"`
	AssetBrand       EntityRef              `gorm:"embedded;embeddedPrefix:asset_brand_"`
	AssetModel       EntityRef              `gorm:"embedded;embeddedPrefix:asset_model_"`
	AssetGroup       EntityRef              `gorm:"embedded;embeddedPrefix:asset_group_"`
	AssignedTo       EntityRef              `gorm:"embedded;embeddedPrefix:assigned_to_"`
	Status           models.RequestStatus   `gorm:"type:varchar(50);index"`
}
