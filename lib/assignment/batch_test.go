package assignmenthandler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"asset-tools-backend/models"
	assignmentapimodels "asset-tools-backend/models/api/assignment"
	dbmodels "asset-tools-backend/models/db"
)

func createItem(asset, groupID, userID string) assignmentapimodels.CreateRequestData {
	return assignmentapimodels.CreateRequestData{
		Asset:      asset,
		AssetName:  assignmentapimodels.EntityRefData{ID: asset + "-name", Name: "Актив " + asset},
		AssetGroup: assignmentapimodels.EntityRefData{ID: groupID, Name: "Группа " + groupID},
		User:       assignmentapimodels.EntityRefData{ID: userID, Name: "Пользователь " + userID},
	}
}

func TestGroupRequests(t *testing.T) {
	t.Run(`разбивка по паре группа-получатель`, func(t *testing.T) {
		groups := groupRequests([]assignmentapimodels.CreateRequestData{
			createItem("a1", "g1", "u1"),
			createItem("a2", "g1", "u2"),
			createItem("a3", "g1", "u1"),
			createItem("a4", "g2", "u1"),
		})
		require.Len(t, groups, 3)
		require.Equal(t, "g1", groups[0].Group.ID)
		require.Equal(t, "u1", groups[0].User.ID)
		require.Len(t, groups[0].Items, 2)
		require.Equal(t, "a1", groups[0].Items[0].Asset)
		require.Equal(t, "a3", groups[0].Items[1].Asset)
		require.Len(t, groups[1].Items, 1)
		require.Len(t, groups[2].Items, 1)
	})

	t.Run(`порядок групп повторяет порядок позиций`, func(t *testing.T) {
		groups := groupRequests([]assignmentapimodels.CreateRequestData{
			createItem("a1", "g2", "u2"),
			createItem("a2", "g1", "u1"),
		})
		require.Len(t, groups, 2)
		require.Equal(t, "g2", groups[0].Group.ID)
		require.Equal(t, "g1", groups[1].Group.ID)
	})
}

func TestTransactionID(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	prefix := transactionIDPrefix(now)

	t.Run(`формат префикса`, func(t *testing.T) {
		require.Equal(t, "ASG-260901-", prefix)
	})

	t.Run(`первый номер дня`, func(t *testing.T) {
		require.Equal(t, "ASG-260901-0001", nextTransactionID(prefix, ""))
	})

	t.Run(`инкремент последнего номера`, func(t *testing.T) {
		require.Equal(t, "ASG-260901-0042", nextTransactionID(prefix, "ASG-260901-0041"))
	})

	t.Run(`номер прошлого дня не продолжается`, func(t *testing.T) {
		require.Equal(t, "ASG-260901-0001", nextTransactionID(prefix, "ASG-260831-0941"))
	})

	t.Run(`монотонность без пропусков в пределах дня`, func(t *testing.T) {
		last := ""
		for i := 1; i <= 25; i++ {
			last = nextTransactionID(prefix, last)
			require.Equal(t, fmt.Sprintf("ASG-260901-%04d", i), last)
		}
	})
}

func TestAllRequestsEqualStatus(t *testing.T) {
	t.Run(`пустой набор не считается возвращённым`, func(t *testing.T) {
		require.False(t, allRequestsEqualStatus(nil, models.RQStatusUnassigned))
	})

	t.Run(`один запрос в другом статусе ломает признак`, func(t *testing.T) {
		list := []dbmodels.AssignmentRequest{
			{Status: models.RQStatusUnassigned},
			{Status: models.RQStatusAssigned},
		}
		require.False(t, allRequestsEqualStatus(list, models.RQStatusUnassigned))
	})

	t.Run(`все возвращены`, func(t *testing.T) {
		list := []dbmodels.AssignmentRequest{
			{Status: models.RQStatusUnassigned},
			{Status: models.RQStatusUnassigned},
		}
		require.True(t, allRequestsEqualStatus(list, models.RQStatusUnassigned))
	})
}
