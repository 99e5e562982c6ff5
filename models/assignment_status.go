package models

// Статусы транзакции выдачи
type TransactionStatus string

const (
	TRStatusWaitingApproval TransactionStatus = "Waiting for Approval"
	TRStatusWaitingHandover TransactionStatus = "Waiting for Handover"
	TRStatusAssigned        TransactionStatus = "Assigned"
	TRStatusUnassigned      TransactionStatus = "Unassigned"
	TRStatusRejected        TransactionStatus = "Rejected"
	TRStatusCancelled       TransactionStatus = "Cancelled"
)

var trStatusHumanName = map[TransactionStatus]string{
	TRStatusWaitingApproval: "Ожидает согласования",
	TRStatusWaitingHandover: "Ожидает передачи",
	TRStatusAssigned:        "Выдано",
	TRStatusUnassigned:      "Возвращено",
	TRStatusRejected:        "Отклонено",
	TRStatusCancelled:       "Отменено",
}

func (s TransactionStatus) ToHuman() string {
	if human, exist := trStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// AllowCancel - отмена допустима, пока транзакция не передана и не закрыта
func (s TransactionStatus) AllowCancel() bool {
	return s == TRStatusWaitingApproval || s == TRStatusWaitingHandover
}

// Статусы запроса на выдачу актива
type RequestStatus string

const (
	RQStatusWaitingApproval     RequestStatus = "Waiting for Approval"
	RQStatusApproved            RequestStatus = "Approved"
	RQStatusWaitingHandover     RequestStatus = "Waiting for Handover"
	RQStatusAssigned            RequestStatus = "Assigned"
	RQStatusUnassigned          RequestStatus = "Unassigned"
	RQStatusRejected            RequestStatus = "Rejected"
	RQStatusCancelled           RequestStatus = "Cancelled"
	RQStatusReportMissing       RequestStatus = "Report Missing"
	RQStatusReportMissingByUser RequestStatus = "Report Missing by User"
	RQStatusReportDamaged       RequestStatus = "Report Damaged"
	RQStatusReportDamagedByUser RequestStatus = "Report Damaged by User"
)

var rqStatusHumanName = map[RequestStatus]string{
	RQStatusWaitingApproval:     "Ожидает согласования",
	RQStatusApproved:            "Согласовано",
	RQStatusWaitingHandover:     "Ожидает передачи",
	RQStatusAssigned:            "Выдано",
	RQStatusUnassigned:          "Возвращено",
	RQStatusRejected:            "Отклонено",
	RQStatusCancelled:           "Отменено",
	RQStatusReportMissing:       "Заявлена утеря",
	RQStatusReportMissingByUser: "Заявлена утеря пользователем",
	RQStatusReportDamaged:       "Заявлено повреждение",
	RQStatusReportDamagedByUser: "Заявлено повреждение пользователем",
}

func (s RequestStatus) ToHuman() string {
	if human, exist := rqStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// InFlight - запрос ещё не достиг терминального для фазы согласования статуса
func (s RequestStatus) InFlight() bool {
	return s == RQStatusWaitingApproval
}

func (s RequestStatus) AllowCancel() bool {
	return s == RQStatusWaitingApproval || s == RQStatusApproved || s == RQStatusWaitingHandover
}

// Виды заявлений по выданному активу
type ReportKind string

const (
	ReportKindMissing ReportKind = "Missing"
	ReportKindDamaged ReportKind = "Damaged"
)

// RequestStatus возвращает статус запроса для заявления,
// selfReport - заявление подано самим держателем актива
func (k ReportKind) RequestStatus(selfReport bool) RequestStatus {
	switch k {
	case ReportKindMissing:
		if selfReport {
			return RQStatusReportMissingByUser
		}
		return RQStatusReportMissing
	case ReportKindDamaged:
		if selfReport {
			return RQStatusReportDamagedByUser
		}
		return RQStatusReportDamaged
	}
	return ""
}
