package approvalhandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"asset-tools-backend/models"
	dbmodels "asset-tools-backend/models/db"
)

func approverRole(userID string, level int, approvalType models.ApprovalType) dbmodels.UserTransactionRole {
	return dbmodels.UserTransactionRole{
		RoleType:      models.TransactionRoleApproval,
		ApprovalLevel: level,
		ApprovalType:  approvalType,
		User: dbmodels.EntityRef{
			RefID: userID,
			Name:  "Согласующий " + userID,
		},
		IsActive: true,
	}
}

func TestBuildLadder(t *testing.T) {
	transaction := dbmodels.AssignmentTransaction{
		BaseModel:     dbmodels.BaseModel{ID: "tr-1"},
		TransactionID: "ASG-260901-0001",
	}
	request := dbmodels.AssignmentRequest{
		BaseModel: dbmodels.BaseModel{ID: "rq-1"},
	}

	t.Run(`по одной задаче на согласующего на уровне`, func(t *testing.T) {
		approvers := []dbmodels.UserTransactionRole{
			approverRole("u1", 1, models.ApprovalTypeAnd),
			approverRole("u2", 1, models.ApprovalTypeAnd),
			approverRole("u3", 2, models.ApprovalTypeOr),
		}
		recs := buildLadder(transaction, request, approvers)
		require.Len(t, recs, 3)
		seen := map[string]int{}
		for _, rec := range recs {
			require.Equal(t, "rq-1", rec.RequestID)
			require.Equal(t, "tr-1", rec.TransactionRecID)
			require.Equal(t, "ASG-260901-0001", rec.TransactionID)
			seen[rec.Approver.RefID] = rec.Level
		}
		require.Equal(t, map[string]int{"u1": 1, "u2": 1, "u3": 2}, seen)
	})

	t.Run(`активируется только первый уровень`, func(t *testing.T) {
		approvers := []dbmodels.UserTransactionRole{
			approverRole("u1", 1, models.ApprovalTypeAnd),
			approverRole("u2", 2, models.ApprovalTypeAnd),
			approverRole("u3", 2, models.ApprovalTypeAnd),
			approverRole("u4", 3, models.ApprovalTypeOr),
		}
		recs := buildLadder(transaction, request, approvers)
		for _, rec := range recs {
			if rec.Level == 1 {
				require.Equal(t, models.ApprovalStatusNeed, rec.Status)
			} else {
				require.Equal(t, models.ApprovalStatusPending, rec.Status)
			}
		}
	})

	t.Run(`активируется нижний уровень, даже если нумерация не с единицы`, func(t *testing.T) {
		approvers := []dbmodels.UserTransactionRole{
			approverRole("u1", 2, models.ApprovalTypeAnd),
			approverRole("u2", 3, models.ApprovalTypeAnd),
		}
		recs := buildLadder(transaction, request, approvers)
		require.Equal(t, models.ApprovalStatusNeed, recs[0].Status)
		require.Equal(t, models.ApprovalStatusPending, recs[1].Status)
	})
}

func requestWithStatus(status models.RequestStatus) dbmodels.AssignmentRequest {
	return dbmodels.AssignmentRequest{Status: status}
}

func TestClassifyRequests(t *testing.T) {
	t.Run(`пустой набор не меняет транзакцию`, func(t *testing.T) {
		require.Equal(t, aggregateNone, classifyRequests(nil))
	})

	t.Run(`незавершённое согласование блокирует итог`, func(t *testing.T) {
		outcome := classifyRequests([]dbmodels.AssignmentRequest{
			requestWithStatus(models.RQStatusRejected),
			requestWithStatus(models.RQStatusWaitingApproval),
			requestWithStatus(models.RQStatusApproved),
		})
		require.Equal(t, aggregateWait, outcome)
	})

	t.Run(`все отменены`, func(t *testing.T) {
		outcome := classifyRequests([]dbmodels.AssignmentRequest{
			requestWithStatus(models.RQStatusCancelled),
			requestWithStatus(models.RQStatusCancelled),
		})
		require.Equal(t, aggregateCancelled, outcome)
	})

	t.Run(`все отклонены`, func(t *testing.T) {
		outcome := classifyRequests([]dbmodels.AssignmentRequest{
			requestWithStatus(models.RQStatusRejected),
			requestWithStatus(models.RQStatusRejected),
		})
		require.Equal(t, aggregateRejected, outcome)
	})

	t.Run(`отклонение с частичной отменой считается отклонением`, func(t *testing.T) {
		outcome := classifyRequests([]dbmodels.AssignmentRequest{
			requestWithStatus(models.RQStatusRejected),
			requestWithStatus(models.RQStatusCancelled),
		})
		require.Equal(t, aggregateRejected, outcome)
	})

	t.Run(`хотя бы один согласован - транзакция к передаче`, func(t *testing.T) {
		outcome := classifyRequests([]dbmodels.AssignmentRequest{
			requestWithStatus(models.RQStatusApproved),
			requestWithStatus(models.RQStatusRejected),
			requestWithStatus(models.RQStatusCancelled),
		})
		require.Equal(t, aggregateHandover, outcome)
	})

	t.Run(`повторная классификация устоявшегося набора не меняет итог`, func(t *testing.T) {
		set := []dbmodels.AssignmentRequest{
			requestWithStatus(models.RQStatusWaitingHandover),
			requestWithStatus(models.RQStatusRejected),
		}
		first := classifyRequests(set)
		second := classifyRequests(set)
		require.Equal(t, aggregateHandover, first)
		require.Equal(t, first, second)
	})
}
