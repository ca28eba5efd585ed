package handler

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"match-service/internal/config"
	"match-service/internal/fileio"
	"match-service/internal/match/model"
	matchSvc "match-service/internal/match/service"
)

var allowedExt = map[string]bool{".xlsx": true, ".xls": true, ".csv": true}

// Ожидаемые колонки для поиска шапки (выгрузки 1С, шапка плавает по файлу).
var (
	orderHeaderTerms    = []string{"№", "Код ТМЦ", "Название", "Кол-во", "Цена", "Сумма"}
	supplierHeaderTerms = []string{"Номенклатура", "BOOK_ID", "КИЗ"}
)

const headerScanRows = 30

// MatchOrders — POST /api/processing/match-orders-tmc.
// Принимает несколько файлов одной формой: файлы заказов распознаются по
// "заказ" в имени, каталоги поставщика — по "код". Ответ по умолчанию —
// готовый matched_results.xlsx, с ?format=json — те же строки в JSON.
func MatchOrders(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		session := uuid.NewString()
		log := logger.With().Str("session", session).Logger()

		defer r.Body.Close()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}

		files := formFiles(r)
		if len(files) == 0 {
			http.Error(w, "no files provided", http.StatusBadRequest)
			return
		}

		var orders []model.OrderLine
		var suppliers []model.SupplierEntry

		for _, fh := range files {
			name := strings.ToLower(fh.Filename)
			if !allowedExt[filepath.Ext(name)] {
				http.Error(w, "unsupported file type: "+fh.Filename, http.StatusBadRequest)
				return
			}

			switch {
			case strings.Contains(name, "заказ"):
				rows, err := readOrderFile(fh)
				if err != nil {
					http.Error(w, "failed to read "+fh.Filename+": "+err.Error(), http.StatusBadRequest)
					return
				}
				orders = append(orders, rows...)
			case strings.Contains(name, "код"):
				rows, err := readSupplierFile(fh)
				if err != nil {
					http.Error(w, "failed to read "+fh.Filename+": "+err.Error(), http.StatusBadRequest)
					return
				}
				suppliers = append(suppliers, rows...)
			default:
				http.Error(w, "cannot classify file (expected 'заказ' or 'код' in name): "+fh.Filename, http.StatusBadRequest)
				return
			}
		}

		if len(orders) == 0 {
			http.Error(w, "no order files recognized", http.StatusBadRequest)
			return
		}
		if len(suppliers) == 0 {
			http.Error(w, "no supplier files recognized", http.StatusBadRequest)
			return
		}

		m := matchSvc.NewMatcher(nil, cfg.FuzzyThreshold)
		res, err := m.Match(orders, suppliers)
		if err != nil {
			http.Error(w, "match failed: "+err.Error(), http.StatusBadRequest)
			return
		}

		log.Info().
			Int("orders", res.Orders).
			Int("suppliers", res.Suppliers).
			Int("exact", res.Exact).
			Int("fuzzy", res.Fuzzy).
			Int("unmatched", res.Unmatched).
			Dur("elapsed", time.Since(start)).
			Msg("match done")

		if r.URL.Query().Get("format") == "json" {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Header().Set("Cache-Control", "no-store")
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				log.Error().Err(err).Msg("write json")
			}
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="matched_results.xlsx"`)
		w.Header().Set("Cache-Control", "no-store")
		if err := fileio.WriteXLSX(w, matchSvc.OutputHeader, matchSvc.FormatRows(res.Rows)); err != nil {
			log.Error().Err(err).Msg("write xlsx")
		}
	}
}

// formFiles собирает файлы из всех полей формы: клиенты шлют их и как
// "files", и отдельными полями.
func formFiles(r *http.Request) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	var out []*multipart.FileHeader
	for _, fhs := range r.MultipartForm.File {
		out = append(out, fhs...)
	}
	return out
}

func readOrderFile(fh *multipart.FileHeader) ([]model.OrderLine, error) {
	recs, err := readRecords(fh, orderHeaderTerms)
	if err != nil {
		return nil, err
	}
	return toOrderLines(recs), nil
}

func readSupplierFile(fh *multipart.FileHeader) ([]model.SupplierEntry, error) {
	recs, err := readRecords(fh, supplierHeaderTerms)
	if err != nil {
		return nil, err
	}
	return toSupplierEntries(recs), nil
}
