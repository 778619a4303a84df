package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/AngelCh415/ADMARGIN_GO/internal/config"
	"github.com/AngelCh415/ADMARGIN_GO/internal/ingest"
	"github.com/AngelCh415/ADMARGIN_GO/internal/report"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := report.NewService(log)
	srv := httptest.NewServer(NewRouter(log, svc, config.Config{MaxUploadMB: 4}))
	t.Cleanup(srv.Close)
	return srv
}

// helper: workbook de prueba con las columnas dadas
func fixtureXLSX(t *testing.T, header []string, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for j, h := range header {
		cell, _ := excelize.CoordinatesToCellName(j+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, row := range rows {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func multipartBody(t *testing.T, xlsx []byte, economics string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "ads.xlsx")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write(xlsx)
	if economics != "" {
		mw.WriteField("economics", economics)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func goodHeader() []string {
	return []string{
		ingest.ColOptionID, ingest.ColProductName, ingest.ColAdType,
		ingest.ColAdSpend, ingest.ColUnitsSold14,
	}
}

const shoeEconomicsJSON = `[{
	"option_id": "A1", "product_name": "Shoe",
	"total_units_sold": 20, "sale_price": 5000, "cost": 2000,
	"commission_rate_pct": 10, "shipping_cost": 500
}]`

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != 200 {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestRunEndToEnd(t *testing.T) {
	srv := newTestServer(t)
	xlsx := fixtureXLSX(t, goodHeader(), [][]any{
		{"A1", "Shoe", "Search", 1000, 10},
	})
	body, ctype := multipartBody(t, xlsx, shoeEconomicsJSON)

	resp, err := http.Post(srv.URL+"/report/run", ctype, body)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, b)
	}

	var res report.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Detail) != 1 || len(res.Summary) != 1 {
		t.Fatalf("unexpected table sizes: %d detail, %d summary", len(res.Detail), len(res.Summary))
	}
	if !res.Summary[0].TotalProfit.Valid || !res.Summary[0].TotalProfit.Decimal.Equal(decimal.NewFromInt(39000)) {
		t.Fatalf("expected total profit 39000, got %+v", res.Summary[0].TotalProfit)
	}
}

func TestRunWithoutEconomicsIsUndefined(t *testing.T) {
	srv := newTestServer(t)
	xlsx := fixtureXLSX(t, goodHeader(), [][]any{{"A1", "Shoe", "Search", 1000, 10}})
	body, ctype := multipartBody(t, xlsx, "")

	resp, err := http.Post(srv.URL+"/report/run", ctype, body)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	var res report.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Summary[0].TotalProfit.Valid {
		t.Fatal("expected undefined total profit without economics")
	}
}

func TestRunMissingColumn(t *testing.T) {
	srv := newTestServer(t)
	header := []string{ingest.ColOptionID, ingest.ColProductName, ingest.ColAdType, ingest.ColUnitsSold14}
	xlsx := fixtureXLSX(t, header, [][]any{{"A1", "Shoe", "Search", 10}})
	body, ctype := multipartBody(t, xlsx, "")

	resp, err := http.Post(srv.URL+"/report/run", ctype, body)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(b), ingest.ColAdSpend) {
		t.Fatalf("error must name the missing column: %s", b)
	}
}

func TestRunRejectsNegativeEconomics(t *testing.T) {
	srv := newTestServer(t)
	xlsx := fixtureXLSX(t, goodHeader(), [][]any{{"A1", "Shoe", "Search", 1000, 10}})
	econ := `[{"option_id": "A1", "product_name": "Shoe", "sale_price": -5}]`
	body, ctype := multipartBody(t, xlsx, econ)

	resp, err := http.Post(srv.URL+"/report/run", ctype, body)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestRunMissingFilePart(t *testing.T) {
	srv := newTestServer(t)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("economics", "[]")
	mw.Close()

	resp, err := http.Post(srv.URL+"/report/run", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestProductsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	xlsx := fixtureXLSX(t, goodHeader(), [][]any{
		{"A1", "Shoe", "Search", 1000, 10},
		{"B2", "Hat", "Search", 50, 1},
		{"A1", "Shoe", "Display", 500, 5},
	})
	body, ctype := multipartBody(t, xlsx, "")

	resp, err := http.Post(srv.URL+"/report/products", ctype, body)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	var refs []report.ProductRef
	if err := json.NewDecoder(resp.Body).Decode(&refs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(refs) != 2 || refs[0].OptionID != "A1" || refs[1].OptionID != "B2" {
		t.Fatalf("unexpected products: %+v", refs)
	}
}

func TestExportEndpoint(t *testing.T) {
	srv := newTestServer(t)
	xlsx := fixtureXLSX(t, goodHeader(), [][]any{{"A1", "Shoe", "Search", 1000, 10}})
	body, ctype := multipartBody(t, xlsx, shoeEconomicsJSON)

	resp, err := http.Post(srv.URL+"/report/export", ctype, body)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Disposition"); !strings.Contains(got, "attachment") {
		t.Fatalf("expected attachment disposition, got %q", got)
	}

	out, _ := io.ReadAll(resp.Body)
	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("open exported workbook: %v", err)
	}
	defer f.Close()
	if names := f.GetSheetList(); len(names) != 2 {
		t.Fatalf("expected two sheets, got %v", names)
	}
}
