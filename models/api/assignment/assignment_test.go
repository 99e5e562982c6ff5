package assignmentapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validItem() CreateRequestData {
	return CreateRequestData{
		Asset:      "asset-1",
		AssetName:  EntityRefData{ID: "n1", Name: "Ноутбук"},
		AssetGroup: EntityRefData{ID: "g1", Name: "Техника"},
		User:       EntityRefData{ID: "u1", Name: "Иванов Иван"},
	}
}

func TestCreateTransactionDataValidate(t *testing.T) {
	t.Run(`корректный пакет`, func(t *testing.T) {
		data := CreateTransactionData{Requests: []CreateRequestData{validItem()}}
		require.Nil(t, data.Validate())
	})

	t.Run(`пустой пакет`, func(t *testing.T) {
		data := CreateTransactionData{}
		require.NotNil(t, data.Validate())
	})

	t.Run(`позиция без актива`, func(t *testing.T) {
		item := validItem()
		item.Asset = ""
		data := CreateTransactionData{Requests: []CreateRequestData{item}}
		require.NotNil(t, data.Validate())
	})

	t.Run(`позиция без группы`, func(t *testing.T) {
		item := validItem()
		item.AssetGroup = EntityRefData{}
		data := CreateTransactionData{Requests: []CreateRequestData{item}}
		require.NotNil(t, data.Validate())
	})

	t.Run(`позиция без получателя`, func(t *testing.T) {
		item := validItem()
		item.User.ID = ""
		data := CreateTransactionData{Requests: []CreateRequestData{item}}
		require.NotNil(t, data.Validate())
	})
}

func TestApprovalDecisionsValidate(t *testing.T) {
	approved := true

	t.Run(`корректное решение`, func(t *testing.T) {
		data := ApprovalDecisions{Decisions: []ApprovalDecisionData{
			{ApprovalID: "ap-1", IsApproved: &approved},
		}}
		require.Nil(t, data.Validate())
	})

	t.Run(`пустой список решений`, func(t *testing.T) {
		require.NotNil(t, ApprovalDecisions{}.Validate())
	})

	t.Run(`решение без задачи`, func(t *testing.T) {
		data := ApprovalDecisions{Decisions: []ApprovalDecisionData{
			{IsApproved: &approved},
		}}
		require.NotNil(t, data.Validate())
	})

	t.Run(`решение без вердикта`, func(t *testing.T) {
		data := ApprovalDecisions{Decisions: []ApprovalDecisionData{
			{ApprovalID: "ap-1"},
		}}
		require.NotNil(t, data.Validate())
	})
}

func TestIdsDataValidate(t *testing.T) {
	require.NotNil(t, IdsData{}.Validate())
	require.Nil(t, IdsData{IDs: []string{"id-1"}}.Validate())
}

func TestDamageImageData(t *testing.T) {
	require.True(t, DamageImageData{}.IsEmpty())
	require.False(t, DamageImageData{Small: []byte{1}}.IsEmpty())
}

func TestEntityRefDataToRef(t *testing.T) {
	ref := EntityRefData{ID: "id-1", Name: "Имя", Key: 7}.ToRef()
	require.Equal(t, "id-1", ref.RefID)
	require.Equal(t, "Имя", ref.Name)
	require.Equal(t, 7, ref.Key)
}
