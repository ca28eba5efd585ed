package service

import (
	"strconv"

	"match-service/internal/match/model"
)

// Заголовки итоговой таблицы — словарь исходных выгрузок 1С.
var OutputHeader = []string{
	"Код ТМЦ",
	"Название",
	"Артикул",
	"Размер",
	"Цвет",
	"Сопоставленная номенклатура",
	"КИЗ",
	"BOOK_ID",
	"Метод",
	"Уровень",
}

var methodLabels = map[model.Method]string{
	model.MethodExact:     "Точное",
	model.MethodCodeOnly:  "По артикулу",
	model.MethodFuzzy:     "Нечеткое",
	model.MethodUnmatched: "Не сопоставлено",
}

// FormatRows проецирует результаты каскада во внешнюю схему: порядок строк
// повторяет порядок строк заказа, отсутствующие значения — пустые строки,
// не null. Уровень (confidence) заполняется только у нечетких совпадений.
func FormatRows(rows []model.MatchResult) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		score := ""
		if r.Score != nil {
			score = strconv.FormatFloat(*r.Score, 'f', -1, 64)
		}
		out = append(out, []string{
			r.OrderID,
			r.OrderRawName,
			r.Code,
			r.Size,
			r.Color,
			r.Nomenclature,
			r.ExternalID,
			r.SecondaryID,
			methodLabels[r.Method],
			score,
		})
	}
	return out
}
