package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransactionStatus(t *testing.T) {
	t.Run(`отмена допустима до передачи`, func(t *testing.T) {
		require.True(t, TRStatusWaitingApproval.AllowCancel())
		require.True(t, TRStatusWaitingHandover.AllowCancel())
		require.False(t, TRStatusAssigned.AllowCancel())
		require.False(t, TRStatusRejected.AllowCancel())
		require.False(t, TRStatusCancelled.AllowCancel())
		require.False(t, TRStatusUnassigned.AllowCancel())
	})
}

func TestRequestStatus(t *testing.T) {
	t.Run(`в полёте только ожидание согласования`, func(t *testing.T) {
		require.True(t, RQStatusWaitingApproval.InFlight())
		require.False(t, RQStatusApproved.InFlight())
		require.False(t, RQStatusRejected.InFlight())
		require.False(t, RQStatusWaitingHandover.InFlight())
	})

	t.Run(`человекочитаемое имя для неизвестного статуса`, func(t *testing.T) {
		require.Equal(t, "Ожидает согласования", RQStatusWaitingApproval.ToHuman())
		require.Equal(t, "Unknown", RequestStatus("Unknown").ToHuman())
	})
}

func TestReportKind(t *testing.T) {
	t.Run(`статус заявления зависит от заявителя`, func(t *testing.T) {
		require.Equal(t, RQStatusReportMissingByUser, ReportKindMissing.RequestStatus(true))
		require.Equal(t, RQStatusReportMissing, ReportKindMissing.RequestStatus(false))
		require.Equal(t, RQStatusReportDamagedByUser, ReportKindDamaged.RequestStatus(true))
		require.Equal(t, RQStatusReportDamaged, ReportKindDamaged.RequestStatus(false))
	})

	t.Run(`неизвестный вид заявления`, func(t *testing.T) {
		require.Equal(t, RequestStatus(""), ReportKind("Lost").RequestStatus(true))
	})
}
