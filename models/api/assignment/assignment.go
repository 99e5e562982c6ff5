package assignmentapimodels

import (
	"time"

	"github.com/pkg/errors"

	dbmodels "asset-tools-backend/models/db"
)

// Снимок справочной записи, передаётся клиентом при создании транзакции
type EntityRefData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  int    `json:"key"`
}

func (r EntityRefData) Validate(field string) error {
	if r.ID == "" {
		return errors.Errorf("не указан идентификатор (%v)", field)
	}
	if r.Name == "" {
		return errors.Errorf("не указано наименование (%v)", field)
	}
	return nil
}

func (r EntityRefData) ToRef() dbmodels.EntityRef {
	return dbmodels.EntityRef{
		RefID: r.ID,
		Name:  r.Name,
		Key:   r.Key,
	}
}

// Одна позиция пакетного создания: актив + получатель
type CreateRequestData struct {
	Asset      string        `json:"asset"`
	AssetName  EntityRefData `json:"asset_name"`
	AssetBrand EntityRefData `json:"asset_brand"`
	AssetModel EntityRefData `json:"asset_model"`
	AssetGroup EntityRefData `json:"asset_group"`
	User       EntityRefData `json:"user"`
}

func (r CreateRequestData) Validate() error {
	if r.Asset == "" {
		return errors.New("не указан актив")
	}
	if err := r.AssetName.Validate("наименование актива"); err != nil {
		return err
	}
	if err := r.AssetGroup.Validate("группа актива"); err != nil {
		return err
	}
	if err := r.User.Validate("получатель"); err != nil {
		return err
	}
	return nil
}

type CreateTransactionData struct {
	Requests []CreateRequestData `json:"requests"`
}

func (r CreateTransactionData) Validate() error {
	if len(r.Requests) == 0 {
		return errors.New("пустой список позиций")
	}
	for _, item := range r.Requests {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Решение согласующего по одной задаче
type ApprovalDecisionData struct {
	ApprovalID string `json:"approval_id"`
	IsApproved *bool  `json:"is_approved"`
	Notes      string `json:"notes"`
}

func (r ApprovalDecisionData) Validate() error {
	if r.ApprovalID == "" {
		return errors.New("не указана задача согласования")
	}
	if r.IsApproved == nil {
		return errors.New("не указано решение")
	}
	return nil
}

type ApprovalDecisions struct {
	Decisions []ApprovalDecisionData `json:"decisions"`
}

func (r ApprovalDecisions) Validate() error {
	if len(r.Decisions) == 0 {
		return errors.New("пустой список решений")
	}
	for _, item := range r.Decisions {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type IdsData struct {
	IDs []string `json:"ids"`
}

func (r IdsData) Validate() error {
	if len(r.IDs) == 0 {
		return errors.New("пустой список идентификаторов")
	}
	return nil
}

type HandoverData struct {
	EmailConfirmed bool `json:"email_confirmed"`
}

type ReportData struct {
	Note string `json:"note"`
}

// Фотофиксация повреждения, три размера одного изображения
type DamageImageData struct {
	Big    []byte `json:"-"`
	Medium []byte `json:"-"`
	Small  []byte `json:"-"`
}

func (r DamageImageData) IsEmpty() bool {
	return len(r.Big) == 0 && len(r.Medium) == 0 && len(r.Small) == 0
}

type EntityRefView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  int    `json:"key"`
}

func RefConvert(ref dbmodels.EntityRef) EntityRefView {
	return EntityRefView{
		ID:   ref.RefID,
		Name: ref.Name,
		Key:  ref.Key,
	}
}

type TransactionView struct {
	ID            string        `json:"id"`
	TransactionID string        `json:"transaction_id"`
	Manager       EntityRefView `json:"manager"`
	Group         EntityRefView `json:"group"`
	AssignedTo    EntityRefView `json:"assigned_to"`
	Status        string        `json:"status"`
	StatusName    string        `json:"status_name"`
	RequestDate   time.Time     `json:"request_date"`
	LastUpdate    time.Time     `json:"last_update"`
}

func TransactionConvert(rec dbmodels.AssignmentTransaction) TransactionView {
	return TransactionView{
		ID:            rec.ID,
		TransactionID: rec.TransactionID,
		Manager:       RefConvert(rec.Manager),
		Group:         RefConvert(rec.Group),
		AssignedTo:    RefConvert(rec.AssignedTo),
		Status:        string(rec.Status),
		StatusName:    rec.Status.ToHuman(),
		RequestDate:   rec.CreatedAt,
		LastUpdate:    rec.UpdatedAt,
	}
}

type TransactionWithRequestsView struct {
	Transaction TransactionView `json:"transaction"`
	Requests    []RequestView   `json:"requests"`
}

type RequestView struct {
	ID          string        `json:"id"`
	Transaction string        `json:"transaction"`
	Asset       string        `json:"asset"`
	AssetName   EntityRefView `json:"asset_name"`
	AssetBrand  EntityRefView `json:"asset_brand"`
	AssetModel  EntityRefView `json:"asset_model"`
	AssetGroup  EntityRefView `json:"asset_group"`
	AssignedTo  EntityRefView `json:"assigned_to"`
	Status      string        `json:"status"`
	StatusName  string        `json:"status_name"`
	LastUpdate  time.Time     `json:"last_update"`
}

func RequestConvert(rec dbmodels.AssignmentRequest) RequestView {
	return RequestView{
		ID:          rec.ID,
		Transaction: rec.TransactionRecID,
		Asset:       rec.AssetID,
		AssetName:   RefConvert(rec.AssetName),
		AssetBrand:  RefConvert(rec.AssetBrand),
		AssetModel:  RefConvert(rec.AssetModel),
		AssetGroup:  RefConvert(rec.AssetGroup),
		AssignedTo:  RefConvert(rec.AssignedTo),
		Status:      string(rec.Status),
		StatusName:  rec.Status.ToHuman(),
		LastUpdate:  rec.UpdatedAt,
	}
}

type ApprovalView struct {
	ID            string        `json:"id"`
	RequestID     string        `json:"request_id"`
	TransactionID string        `json:"transaction_id"`
	Approver      EntityRefView `json:"approver"`
	Level         int           `json:"level"`
	Type          string        `json:"type"`
	Status        string        `json:"status"`
	StatusName    string        `json:"status_name"`
	IsApproved    *bool         `json:"is_approved"`
	ApprovedAt    *time.Time    `json:"approved_at"`
	Notes         string        `json:"notes"`
}

func ApprovalConvert(rec dbmodels.AssignmentApproval) ApprovalView {
	return ApprovalView{
		ID:            rec.ID,
		RequestID:     rec.RequestID,
		TransactionID: rec.TransactionID,
		Approver:      RefConvert(rec.Approver),
		Level:         rec.Level,
		Type:          string(rec.Type),
		Status:        string(rec.Status),
		StatusName:    rec.Status.ToHuman(),
		IsApproved:    rec.IsApproved,
		ApprovedAt:    rec.ApprovedAt,
		Notes:         rec.Notes,
	}
}

type TransactionLogView struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	TransactionID string    `json:"transaction_id"`
	RequestID     string    `json:"request_id"`
	Action        string    `json:"action"`
	UserID        string    `json:"user_id"`
	UserFullName  string    `json:"user_full_name"`
	Detail        string    `json:"detail"`
	CreatedAt     time.Time `json:"created_at"`
}

func TransactionLogConvert(rec dbmodels.TransactionLog) TransactionLogView {
	return TransactionLogView{
		ID:            rec.ID,
		Type:          rec.Type,
		TransactionID: rec.TransactionID,
		RequestID:     rec.RequestID,
		Action:        rec.Action,
		UserID:        rec.UserID,
		UserFullName:  rec.UserFullName,
		Detail:        rec.Detail,
		CreatedAt:     rec.CreatedAt,
	}
}
