package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stockguard/damage_service/pkg/batch"
)

type stubImportService struct {
	result  batch.ImportResult
	gotCSV  string
	gotKind string
}

func (s *stubImportService) record(kind string, r io.Reader) (batch.ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return batch.ImportResult{}, err
	}
	s.gotKind = kind
	s.gotCSV = string(raw)
	return s.result, nil
}

func (s *stubImportService) ImportCustomers(r io.Reader, _ uint, _ string) (batch.ImportResult, error) {
	return s.record("customers", r)
}
func (s *stubImportService) ImportProducts(r io.Reader, _ uint, _ string) (batch.ImportResult, error) {
	return s.record("products", r)
}
func (s *stubImportService) ImportUsers(r io.Reader, _ uint, _ string) (batch.ImportResult, error) {
	return s.record("users", r)
}
func (s *stubImportService) ImportLocations(r io.Reader, _ uint, _ string) (batch.ImportResult, error) {
	return s.record("locations", r)
}

func newImportTestApp(svc *stubImportService) *fiber.App {
	app := fiber.New()
	app.Use(func(ctx *fiber.Ctx) error {
		ctx.Locals("userID", uint(1))
		return ctx.Next()
	})
	NewImportHandler(svc, stubUserService{}).SetupRoutes(app)
	return app
}

func postCSV(t *testing.T, app *fiber.App, path, csv string) (int, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "upload.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(fw, csv); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, string(raw)
}

func TestImportResponseEnvelope(t *testing.T) {
	svc := &stubImportService{
		result: batch.ImportResult{
			Created: 1,
			Errors: []batch.RowError{{
				Row:     3,
				Message: "name is required",
				Values:  map[string]string{"code": "BOLT", "name": ""},
			}},
		},
	}
	app := newImportTestApp(svc)

	csv := "code,name\nACME,Acme Corp\nBOLT,\n"
	status, body := postCSV(t, app, "/api/imports/customers", csv)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	want := `{"data":{"created":1,"errors":[{"row":3,"message":"name is required","values":{"code":"BOLT","name":""}}]}}`
	if body != want {
		t.Fatalf("body = %s\nwant  %s", body, want)
	}
	if svc.gotKind != "customers" {
		t.Errorf("routed to %q, want customers", svc.gotKind)
	}
	if svc.gotCSV != csv {
		t.Errorf("service saw %q, want the uploaded file verbatim", svc.gotCSV)
	}
}

func TestImportCleanFileReportsEmptyErrorList(t *testing.T) {
	svc := &stubImportService{
		result: batch.ImportResult{Created: 2, Errors: []batch.RowError{}},
	}
	app := newImportTestApp(svc)

	status, body := postCSV(t, app, "/api/imports/locations", "code,zone,aisle,rack\nA-01-01,A,01,01\n")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	// errors serializes as [], never null
	want := `{"data":{"created":2,"errors":[]}}`
	if body != want {
		t.Fatalf("body = %s\nwant  %s", body, want)
	}
}

func TestImportRejectsUnknownKind(t *testing.T) {
	svc := &stubImportService{}
	app := newImportTestApp(svc)

	status, body := postCSV(t, app, "/api/imports/widgets", "code,name\n")
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if body != `{"error":"unknown import kind: widgets"}` {
		t.Fatalf("body = %s", body)
	}
	if svc.gotKind != "" {
		t.Fatal("unknown kind must not reach the service")
	}
}

func TestImportRequiresFile(t *testing.T) {
	svc := &stubImportService{}
	app := newImportTestApp(svc)

	req := httptest.NewRequest("POST", "/api/imports/customers", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	if string(raw) != `{"error":"file is required"}` {
		t.Fatalf("body = %s", raw)
	}
}
