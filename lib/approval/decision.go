package approvalhandler

import (
	"asset-tools-backend/models"
	dbmodels "asset-tools-backend/models/db"
)

// advanceOutcome - продвижение лестницы согласования после одобрения
type advanceOutcome int

const (
	// уровень And ждёт решений оставшихся согласующих
	advanceWait advanceOutcome = iota
	// уровень завершён, активируется следующий
	advanceNextLevel
	// нерешённых уровней не осталось, запрос согласован
	advanceApproved
)

// isUndecided - по задаче ещё не принято решение
func isUndecided(status models.ApprovalStatus) bool {
	return status == models.ApprovalStatusPending || status == models.ApprovalStatusNeed
}

// decisionAllowed - решение принимает только назначенный согласующий
// и только по активной задаче, повторное решение недопустимо
func decisionAllowed(rec dbmodels.AssignmentApproval, userID string) bool {
	return rec.Status == models.ApprovalStatusNeed && rec.Approver.RefID == userID
}

// approveAdvance определяет продвижение лестницы после одобрения задачи rec.
// ladder - все задачи запроса после применения решения.
// And-уровень завершается когда не осталось активных задач уровня,
// Or-уровень завершается первым же решением.
func approveAdvance(rec dbmodels.AssignmentApproval, ladder []dbmodels.AssignmentApproval) (advanceOutcome, int) {
	if rec.Type == models.ApprovalTypeAnd {
		for _, item := range ladder {
			if item.Level == rec.Level && item.Status == models.ApprovalStatusNeed {
				return advanceWait, 0
			}
		}
	}
	next := nextUndecidedLevel(rec.Level, ladder)
	if next == 0 {
		return advanceApproved, 0
	}
	return advanceNextLevel, next
}

// nextUndecidedLevel возвращает ближайший уровень выше level
// с нерешёнными задачами, 0 если таких нет
func nextUndecidedLevel(level int, ladder []dbmodels.AssignmentApproval) int {
	next := 0
	for _, item := range ladder {
		if item.Level <= level || !isUndecided(item.Status) {
			continue
		}
		if next == 0 || item.Level < next {
			next = item.Level
		}
	}
	return next
}
