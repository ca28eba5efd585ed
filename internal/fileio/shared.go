package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"match-service/internal/utils"
)

// ReadAnyRows — выбирает парсер по расширению и возвращает таблицу как AoA.
// Шапка здесь не интерпретируется: в выгрузках 1С она плавает, её позицию
// ищет DetectHeaderRow.
func ReadAnyRows(r io.Reader, filename string) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return readXLSX(r)
	case ".xls":
		return readXLS(r)
	case ".csv":
		return readCSV(r)
	default:
		return nil, fmt.Errorf("unsupported file: %s", filename)
	}
}

// DetectHeaderRow ищет строку заголовков в первых maxRows строках: строка
// подходит, когда содержит хотя бы половину ожидаемых имён колонок
// (подстрочное сравнение без регистра). Возвращает 1-based номер, 0 — не найдено.
func DetectHeaderRow(rows [][]string, terms []string, maxRows int) int {
	if maxRows <= 0 || maxRows > len(rows) {
		maxRows = len(rows)
	}
	need := len(terms) / 2
	if need == 0 {
		need = 1
	}
	for i := 0; i < maxRows; i++ {
		hits := 0
		for _, t := range terms {
			t = strings.ToLower(t)
			for _, cell := range rows[i] {
				if strings.Contains(strings.ToLower(cell), t) {
					hits++
					break
				}
			}
		}
		if hits >= need {
			return i + 1
		}
	}
	return 0
}

// pickHeader — берёт строку заголовков и подставляет Column N для пустых.
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	for i, v := range h {
		v = strings.TrimSpace(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// RowsToMaps — конвертирует AoA в []map по заголовкам (headerRow — 1-based),
// пропуская полностью пустые строки.
func RowsToMaps(rows [][]string, headerRow int) []map[string]string {
	if len(rows) == 0 {
		return nil
	}
	headers := pickHeader(rows, headerRow)
	var out []map[string]string
	for r := headerRow; r < len(rows); r++ {
		rec := rows[r]
		m := map[string]string{}
		for c := 0; c < len(headers); c++ {
			var v string
			if c < len(rec) {
				v = rec[c]
			}
			m[headers[c]] = v
		}
		empty := true
		for _, v := range m {
			if strings.TrimSpace(v) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}

var rxDecimalCell = regexp.MustCompile(`^\d+[.,]\d+$`)

// normalizeCell приводит числовые ячейки к каноническому виду: "48.0" → "48",
// "36,50" → "36.5". Целочисленный текст не трогаем — коды ТМЦ бывают с
// ведущими нулями.
func normalizeCell(s string) string {
	s = strings.TrimSpace(s)
	if !rxDecimalCell.MatchString(s) {
		return s
	}
	f, ok := utils.ParseFloatRU(s)
	if !ok {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
