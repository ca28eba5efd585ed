package handler

import (
	"fmt"
	"mime/multipart"
	"regexp"
	"strings"

	"match-service/internal/fileio"
	"match-service/internal/match/model"
)

// readRecords читает файл, находит шапку по ожидаемым колонкам и возвращает
// строки как map[колонка]значение.
func readRecords(fh *multipart.FileHeader, terms []string) ([]map[string]string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := fileio.ReadAnyRows(f, fh.Filename)
	if err != nil {
		return nil, err
	}
	hr := fileio.DetectHeaderRow(rows, terms, headerScanRows)
	if hr == 0 {
		return nil, fmt.Errorf("header row not found (expected columns like %s)", strings.Join(terms, ", "))
	}
	return fileio.RowsToMaps(rows, hr), nil
}

var rxNonAlnum = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// нормализуем имя колонки: нижний регистр, убираем служ.символы/множественные пробелы/ё→е
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "ё", "е").Replace(s) // NBSP/NNBSP
	s = rxNonAlnum.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveKey ищет реальный ключ в записи по желаемому имени: сперва как есть,
// затем по нормализованной форме, затем по вхождению (для составных заголовков
// вида "Код ТМЦ поставщика").
func resolveKey(rec map[string]string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	if _, ok := rec[want]; ok {
		return want
	}

	nWant := normHeaderKey(want)
	bestKey := ""
	bestScore := 0
	for k := range rec {
		nk := normHeaderKey(k)
		if nk == nWant {
			return k
		}
		score := 0
		if strings.Contains(nk, nWant) || strings.Contains(nWant, nk) {
			score = len(nWant)
		}
		if score > bestScore {
			bestScore, bestKey = score, k
		}
	}
	return bestKey
}

// Повторные шапки внутри данных (многостраничные выгрузки) отсеиваем по
// характерным словам.
func looksLikeHeaderMap(m map[string]string) bool {
	cnt := 0
	for _, v := range m {
		s := strings.ToLower(strings.TrimSpace(v))
		if strings.Contains(s, "назван") || strings.Contains(s, "номенклатур") ||
			strings.Contains(s, "код тмц") || strings.Contains(s, "киз") {
			cnt++
		}
	}
	return cnt >= 2
}

func toOrderLines(recs []map[string]string) []model.OrderLine {
	out := make([]model.OrderLine, 0, len(recs))
	for _, rec := range recs {
		if looksLikeHeaderMap(rec) {
			continue
		}
		id := strings.TrimSpace(rec[resolveKey(rec, "Код ТМЦ")])
		name := strings.TrimSpace(rec[resolveKey(rec, "Название")])
		if id == "" && name == "" {
			continue
		}
		out = append(out, model.OrderLine{ID: id, RawName: name})
	}
	return out
}

func toSupplierEntries(recs []map[string]string) []model.SupplierEntry {
	out := make([]model.SupplierEntry, 0, len(recs))
	for _, rec := range recs {
		if looksLikeHeaderMap(rec) {
			continue
		}
		nom := strings.TrimSpace(rec[resolveKey(rec, "Номенклатура")])
		if nom == "" {
			continue
		}
		out = append(out, model.SupplierEntry{
			Nomenclature: nom,
			ExternalID:   strings.TrimSpace(rec[resolveKey(rec, "КИЗ")]),
			SecondaryID:  strings.TrimSpace(rec[resolveKey(rec, "BOOK_ID")]),
		})
	}
	return out
}
