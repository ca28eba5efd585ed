package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"match-service/internal/config"
	"match-service/internal/match/model"
)

func testConfig() config.Config {
	return config.Config{MaxUploadMB: 16, FuzzyThreshold: 90}
}

func buildXLSX(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

type upload struct {
	name string
	data []byte
}

func multipartBody(t *testing.T, files []upload) (*bytes.Buffer, string) {
	t.Helper()
	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	for _, f := range files {
		fw, err := w.CreateFormFile("files", f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &b, w.FormDataContentType()
}

func testFiles(t *testing.T) []upload {
	t.Helper()
	orderXLSX := buildXLSX(t, [][]string{
		{"ООО Ромашка"}, // преамбула до шапки
		{"№", "Код ТМЦ", "Название", "Кол-во", "Цена", "Сумма"},
		{"1", "00045", "Шорты JL126-12/05-25, цвет синий, 48", "2", "10", "20"},
	})
	supplierXLSX := buildXLSX(t, [][]string{
		{"Номенклатура", "BOOK_ID", "КИЗ"},
		{"Шорты JL126-12/05-25 синий 48", "B-7", "KIZ-7"},
	})
	return []upload{
		{"заказ_февраль.xlsx", orderXLSX},
		{"коды_тмц.xlsx", supplierXLSX},
	}
}

func TestMatchOrdersJSON(t *testing.T) {
	body, ct := multipartBody(t, testFiles(t))

	req := httptest.NewRequest(http.MethodPost, "/api/processing/match-orders-tmc?format=json", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	MatchOrders(testConfig(), zerolog.Nop())(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res model.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "00045", res.Rows[0].OrderID)
	assert.Equal(t, model.MethodExact, res.Rows[0].Method)
	assert.Equal(t, "Шорты JL126-12/05-25 синий 48", res.Rows[0].Nomenclature)
	assert.Equal(t, "KIZ-7", res.Rows[0].ExternalID)
	assert.Equal(t, "B-7", res.Rows[0].SecondaryID)
	assert.Equal(t, 1, res.Exact)
}

func TestMatchOrdersXLSX(t *testing.T) {
	body, ct := multipartBody(t, testFiles(t))

	req := httptest.NewRequest(http.MethodPost, "/api/processing/match-orders-tmc", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	MatchOrders(testConfig(), zerolog.Nop())(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "matched_results.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2) // шапка + одна строка
	assert.Equal(t, "Код ТМЦ", rows[0][0])
	assert.Equal(t, "00045", rows[1][0])
}

func TestMatchOrdersNoFiles(t *testing.T) {
	body, ct := multipartBody(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/processing/match-orders-tmc", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	MatchOrders(testConfig(), zerolog.Nop())(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMatchOrdersUnclassifiableFile(t *testing.T) {
	body, ct := multipartBody(t, []upload{{"данные.xlsx", buildXLSX(t, [][]string{{"x"}})}})

	req := httptest.NewRequest(http.MethodPost, "/api/processing/match-orders-tmc", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	MatchOrders(testConfig(), zerolog.Nop())(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMatchOrdersUnsupportedExtension(t *testing.T) {
	body, ct := multipartBody(t, []upload{{"заказ.pdf", []byte("not a spreadsheet")}})

	req := httptest.NewRequest(http.MethodPost, "/api/processing/match-orders-tmc", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	MatchOrders(testConfig(), zerolog.Nop())(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
