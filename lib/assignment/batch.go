package assignmenthandler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"asset-tools-backend/models"
	assignmentapimodels "asset-tools-backend/models/api/assignment"
	dbmodels "asset-tools-backend/models/db"
)

const transactionIDSeqDigits = 4

// Позиции одной транзакции: группа активов + получатель
type requestGroup struct {
	Group assignmentapimodels.EntityRefData
	User  assignmentapimodels.EntityRefData
	Items []assignmentapimodels.CreateRequestData
}

// groupRequests разбивает пакет позиций по парам (группа, получатель)
// с сохранением порядка следования во входном списке
func groupRequests(list []assignmentapimodels.CreateRequestData) []requestGroup {
	order := make([]string, 0, len(list))
	byKey := map[string]*requestGroup{}
	for _, item := range list {
		key := item.AssetGroup.ID + "/" + item.User.ID
		group, ok := byKey[key]
		if !ok {
			group = &requestGroup{
				Group: item.AssetGroup,
				User:  item.User,
			}
			byKey[key] = group
			order = append(order, key)
		}
		group.Items = append(group.Items, item)
	}
	result := make([]requestGroup, 0, len(order))
	for _, key := range order {
		result = append(result, *byKey[key])
	}
	return result
}

// transactionIDPrefix - префикс номера транзакции на дату, ASG-ГГММДД-
func transactionIDPrefix(now time.Time) string {
	return fmt.Sprintf("ASG-%s-", now.Format("060102"))
}

// nextTransactionID строит следующий номер по последнему выданному за день.
// Счётчик начинается с 0001 и сбрасывается при смене даты в префиксе.
func nextTransactionID(prefix, last string) string {
	seq := 0
	if strings.HasPrefix(last, prefix) {
		parsed, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
		if err == nil {
			seq = parsed
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, transactionIDSeqDigits, seq+1)
}

// allRequestsEqualStatus - все запросы набора в указанном статусе
func allRequestsEqualStatus(list []dbmodels.AssignmentRequest, status models.RequestStatus) bool {
	if len(list) == 0 {
		return false
	}
	for _, rec := range list {
		if rec.Status != status {
			return false
		}
	}
	return true
}
