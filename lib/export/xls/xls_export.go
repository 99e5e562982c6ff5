package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	dbmodels "asset-tools-backend/models/db"
)

type Provider interface {
	ExportTransactionLog(list []dbmodels.TransactionLog) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var logHeaders = []string{"Дата", "Номер транзакции", "Действие", "Пользователь", "Детали"}

func (i impl) ExportTransactionLog(list []dbmodels.TransactionLog) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, logHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeLogData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Журнал выдачи")
	return f.WriteToBuffer()
}

func writeLogData(f *excelize.File, sheet string, list []dbmodels.TransactionLog, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(logHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Дата"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006 15:04")); err != nil {
			return row, err
		}

		// "Номер транзакции"
		col++
		if err := writeColumn(f, sheet, col, row, item.TransactionID); err != nil {
			return row, err
		}

		// "Действие"
		col++
		if err := writeColumn(f, sheet, col, row, item.Action); err != nil {
			return row, err
		}

		// "Пользователь"
		col++
		if err := writeColumn(f, sheet, col, row, item.UserFullName); err != nil {
			return row, err
		}

		// "Детали"
		col++
		if err := writeColumn(f, sheet, col, row, item.Detail); err != nil {
			return row, err
		}
	}
	return row, nil
}
