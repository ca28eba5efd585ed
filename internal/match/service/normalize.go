package service

import (
	"regexp"
	"strings"
)

// Разрешаем буквы (любой алфавит), цифры, пробелы, дефис и слэш;
// всё остальное → пробел. Дефис внутри класса экранирован.
var rxDropSpecial = regexp.MustCompile(`[^\p{L}\p{N}\s/\-]`)

// Normalize — каноническая форма названия для сравнения:
// нижний регистр, спецсимволы → пробел, схлопнутые пробелы.
// Тотальная функция: не падает, пустой вход → пустая строка.
// Применяется одинаково к заказам и к номенклатуре поставщика,
// иначе сравнение похожести несимметрично.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	out := strings.ToLower(s)
	out = rxDropSpecial.ReplaceAllString(out, " ")
	return collapseSpaces(out)
}

// Схлопывание пробелов
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
