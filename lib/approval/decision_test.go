package approvalhandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"asset-tools-backend/models"
	dbmodels "asset-tools-backend/models/db"
)

func approvalRow(id string, level int, aType models.ApprovalType, status models.ApprovalStatus, approverID string) dbmodels.AssignmentApproval {
	rec := dbmodels.AssignmentApproval{
		RequestID:        "req-1",
		TransactionRecID: "tr-1",
		TransactionID:    "ASG-260901-0001",
		Level:            level,
		Type:             aType,
		Status:           status,
	}
	rec.ID = id
	rec.Approver = dbmodels.EntityRef{RefID: approverID, Name: "Согласующий " + approverID}
	return rec
}

func TestDecisionAllowed(t *testing.T) {
	t.Run(`активная задача решается назначенным согласующим`, func(t *testing.T) {
		rec := approvalRow("a1", 1, models.ApprovalTypeAnd, models.ApprovalStatusNeed, "u1")
		require.True(t, decisionAllowed(rec, "u1"))
	})
	t.Run(`чужой согласующий не принимает решение`, func(t *testing.T) {
		rec := approvalRow("a1", 1, models.ApprovalTypeAnd, models.ApprovalStatusNeed, "u1")
		require.False(t, decisionAllowed(rec, "u2"))
	})
	t.Run(`повторное решение по завершённой задаче отклоняется`, func(t *testing.T) {
		rec := approvalRow("a1", 1, models.ApprovalTypeOr, models.ApprovalStatusFinished, "u1")
		require.False(t, decisionAllowed(rec, "u1"))
	})
	t.Run(`задача неактивированного уровня не решается`, func(t *testing.T) {
		rec := approvalRow("b1", 2, models.ApprovalTypeOr, models.ApprovalStatusPending, "u3")
		require.False(t, decisionAllowed(rec, "u3"))
	})
	t.Run(`отменённая задача не решается`, func(t *testing.T) {
		rec := approvalRow("a1", 1, models.ApprovalTypeAnd, models.ApprovalStatusCancelled, "u1")
		require.False(t, decisionAllowed(rec, "u1"))
	})
}

func TestApproveAdvance(t *testing.T) {
	t.Run(`And-уровень ждёт оставшихся согласующих`, func(t *testing.T) {
		ladder := []dbmodels.AssignmentApproval{
			approvalRow("a1", 1, models.ApprovalTypeAnd, models.ApprovalStatusFinished, "u1"),
			approvalRow("a2", 1, models.ApprovalTypeAnd, models.ApprovalStatusNeed, "u2"),
			approvalRow("b1", 2, models.ApprovalTypeOr, models.ApprovalStatusPending, "u3"),
		}
		outcome, next := approveAdvance(ladder[0], ladder)
		require.Equal(t, advanceWait, outcome)
		require.Equal(t, 0, next)
	})
	t.Run(`Or-уровень завершается первым решением`, func(t *testing.T) {
		ladder := []dbmodels.AssignmentApproval{
			approvalRow("a1", 1, models.ApprovalTypeOr, models.ApprovalStatusFinished, "u1"),
			approvalRow("a2", 1, models.ApprovalTypeOr, models.ApprovalStatusNeed, "u2"),
			approvalRow("b1", 2, models.ApprovalTypeAnd, models.ApprovalStatusPending, "u3"),
		}
		outcome, next := approveAdvance(ladder[0], ladder)
		require.Equal(t, advanceNextLevel, outcome)
		require.Equal(t, 2, next)
	})
	t.Run(`последний уровень согласует запрос`, func(t *testing.T) {
		ladder := []dbmodels.AssignmentApproval{
			approvalRow("a1", 1, models.ApprovalTypeAnd, models.ApprovalStatusFinished, "u1"),
			approvalRow("a2", 1, models.ApprovalTypeAnd, models.ApprovalStatusFinished, "u2"),
		}
		outcome, next := approveAdvance(ladder[1], ladder)
		require.Equal(t, advanceApproved, outcome)
		require.Equal(t, 0, next)
	})
	t.Run(`активируется ближайший настроенный уровень`, func(t *testing.T) {
		ladder := []dbmodels.AssignmentApproval{
			approvalRow("a1", 2, models.ApprovalTypeOr, models.ApprovalStatusFinished, "u1"),
			approvalRow("b1", 5, models.ApprovalTypeOr, models.ApprovalStatusPending, "u2"),
			approvalRow("c1", 7, models.ApprovalTypeOr, models.ApprovalStatusPending, "u3"),
		}
		outcome, next := approveAdvance(ladder[0], ladder)
		require.Equal(t, advanceNextLevel, outcome)
		require.Equal(t, 5, next)
	})
	t.Run(`отменённые задачи не блокируют продвижение`, func(t *testing.T) {
		ladder := []dbmodels.AssignmentApproval{
			approvalRow("a1", 1, models.ApprovalTypeAnd, models.ApprovalStatusFinished, "u1"),
			approvalRow("b1", 2, models.ApprovalTypeOr, models.ApprovalStatusCancelled, "u2"),
		}
		outcome, next := approveAdvance(ladder[0], ladder)
		require.Equal(t, advanceApproved, outcome)
		require.Equal(t, 0, next)
	})
}

func TestApprovalFlow(t *testing.T) {
	newLadder := func() []dbmodels.AssignmentApproval {
		return []dbmodels.AssignmentApproval{
			approvalRow("a1", 1, models.ApprovalTypeAnd, models.ApprovalStatusNeed, "u1"),
			approvalRow("a2", 1, models.ApprovalTypeAnd, models.ApprovalStatusNeed, "u2"),
			approvalRow("b1", 2, models.ApprovalTypeOr, models.ApprovalStatusPending, "u3"),
			approvalRow("b2", 2, models.ApprovalTypeOr, models.ApprovalStatusPending, "u4"),
		}
	}

	t.Run(`двухуровневое согласование And затем Or`, func(t *testing.T) {
		ladder := newLadder()

		require.True(t, decisionAllowed(ladder[0], "u1"))
		ladder[0].Status = models.ApprovalStatusFinished
		outcome, _ := approveAdvance(ladder[0], ladder)
		require.Equal(t, advanceWait, outcome)

		require.True(t, decisionAllowed(ladder[1], "u2"))
		ladder[1].Status = models.ApprovalStatusFinished
		outcome, next := approveAdvance(ladder[1], ladder)
		require.Equal(t, advanceNextLevel, outcome)
		require.Equal(t, 2, next)
		ladder[2].Status = models.ApprovalStatusNeed
		ladder[3].Status = models.ApprovalStatusNeed

		// первый уровень решён окончательно
		require.False(t, decisionAllowed(ladder[0], "u1"))
		require.False(t, decisionAllowed(ladder[1], "u2"))

		require.True(t, decisionAllowed(ladder[2], "u3"))
		ladder[2].Status = models.ApprovalStatusFinished
		outcome, _ = approveAdvance(ladder[2], ladder)
		require.Equal(t, advanceApproved, outcome)
	})

	t.Run(`отклонение закрывает нерешённые задачи всех уровней`, func(t *testing.T) {
		ladder := newLadder()
		ladder[0].Status = models.ApprovalStatusFinished

		require.True(t, decisionAllowed(ladder[1], "u2"))
		for idx := range ladder {
			if isUndecided(ladder[idx].Status) {
				ladder[idx].Status = models.ApprovalStatusFinished
			}
		}
		for _, rec := range ladder {
			require.Equal(t, models.ApprovalStatusFinished, rec.Status)
			require.False(t, isUndecided(rec.Status))
		}
		require.False(t, decisionAllowed(ladder[2], "u3"))
		require.False(t, decisionAllowed(ladder[3], "u4"))
	})
}
