package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/didasmbalanya/Quotation-invoice-system/internal/models"
	"github.com/didasmbalanya/Quotation-invoice-system/internal/services"
)

// newTestRouter wires the handlers onto a fresh engine backed by an
// in-memory sqlite DB, mirroring the route table in internal/server.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Quotation{}, &models.Invoice{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := zap.NewNop()
	qh := NewQuotationHandler(services.NewQuotationService(db), log)
	ih := NewInvoiceHandler(services.NewInvoiceService(db), log)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/quotations", qh.Create)
	api.GET("/quotations", qh.List)
	api.GET("/quotations/:id", qh.Get)
	api.PATCH("/quotations/:id", qh.Update)
	api.DELETE("/quotations/:id", qh.Delete)
	api.GET("/quotations/:id/pdf", qh.PDF)
	api.POST("/invoices/:id", ih.CreateFromQuotation)
	api.GET("/invoices", ih.List)
	api.GET("/invoices/:id", ih.Get)
	api.GET("/invoices/:id/pdf", ih.PDF)
	return r, db
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func quotationBody(token string) string {
	return `{
		"uniqueQuotationId": "` + token + `",
		"clientName": "John Doe",
		"email": "john@example.com",
		"phone": "1234567890",
		"quotationDate": "2025-06-20T00:00:00Z",
		"items": [
			{"name": "Full day conference", "qty": 45, "days": 3, "unitPrice": 3500, "amount": 472500,
			 "subItems": ["AM/PM teas and snacks", "Buffet lunch with a soft drink"]},
			{"name": "Accommodation BB", "qty": 5, "days": 4, "unitPrice": 12000}
		]
	}`
}

func createQuotation(t *testing.T, r *gin.Engine) uint {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/quotations", quotationBody(uuid.NewString()))
	if w.Code != http.StatusCreated {
		t.Fatalf("create expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Quotation
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("missing id in response: %s", w.Body.String())
	}
	return created.ID
}

func TestQuotationCreateAndDuplicate(t *testing.T) {
	r, db := newTestRouter(t)

	token := uuid.NewString()
	w := doJSON(r, http.MethodPost, "/api/quotations", quotationBody(token))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Quotation
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.TotalAmount != 472500+240000 {
		t.Fatalf("total: got %v", created.TotalAmount)
	}
	if created.Status != models.StatusPending {
		t.Fatalf("status: got %q", created.Status)
	}

	// same token again: 400 and no second row
	dup := doJSON(r, http.MethodPost, "/api/quotations", quotationBody(token))
	if dup.Code != http.StatusBadRequest {
		t.Fatalf("duplicate expected 400 got %d", dup.Code)
	}
	var count int64
	db.Model(&models.Quotation{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestQuotationCreateValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/quotations", `{"email":"not-an-email"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	var resp struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "Validation error" {
		t.Fatalf("error: %q", resp.Error)
	}
	// every broken rule is itemized, not just the first
	for _, field := range []string{"uniqueQuotationId", "clientName", "email", "phone", "quotationDate", "items"} {
		if resp.Details[field] == "" {
			t.Errorf("missing violation for %s: %v", field, resp.Details)
		}
	}
}

func TestQuotationItemsStringAndArrayRoundTrip(t *testing.T) {
	r, _ := newTestRouter(t)

	structured := `{"uniqueQuotationId":"` + uuid.NewString() + `","clientName":"A","email":"a@b.co","phone":"1",
		"quotationDate":"2025-06-20T00:00:00Z","items":[{"name":"Pizza","qty":2,"price":10}]}`
	encoded := `{"uniqueQuotationId":"` + uuid.NewString() + `","clientName":"A","email":"a@b.co","phone":"1",
		"quotationDate":"2025-06-20T00:00:00Z","items":"[{\"name\":\"Pizza\",\"qty\":2,\"price\":10}]"}`

	var got [2]models.Quotation
	for i, body := range []string{structured, encoded} {
		w := doJSON(r, http.MethodPost, "/api/quotations", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("create %d expected 201 got %d body=%s", i, w.Code, w.Body.String())
		}
		if err := json.Unmarshal(w.Body.Bytes(), &got[i]); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}

	a, _ := json.Marshal(got[0].Items)
	b, _ := json.Marshal(got[1].Items)
	if string(a) != string(b) {
		t.Fatalf("items differ:\n%s\n%s", a, b)
	}
	if got[0].TotalAmount != 20 || got[1].TotalAmount != 20 {
		t.Fatalf("totals: %v %v", got[0].TotalAmount, got[1].TotalAmount)
	}
}

func TestQuotationGetAndList(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createQuotation(t, r)

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/api/quotations/%d", id), "")
	if w.Code != http.StatusOK {
		t.Fatalf("get expected 200 got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/quotations/999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing id expected 404 got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/quotations", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list expected 200 got %d", w.Code)
	}
	var list []models.Quotation
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 quotation, got %d", len(list))
	}
}

func TestQuotationUpdate(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createQuotation(t, r)

	// empty payload is rejected
	w := doJSON(r, http.MethodPatch, fmt.Sprintf("/api/quotations/%d", id), `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty patch expected 400 got %d body=%s", w.Code, w.Body.String())
	}

	// invalid status is rejected
	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/api/quotations/%d", id), `{"status":"maybe"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad status expected 400 got %d", w.Code)
	}

	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/api/quotations/%d", id), `{"status":"approved"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("patch expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Message          string           `json:"message"`
		UpdatedQuotation models.Quotation `json:"updatedQuotation"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message != "Quotation updated successfully" {
		t.Fatalf("message: %q", resp.Message)
	}
	if resp.UpdatedQuotation.Status != models.StatusApproved {
		t.Fatalf("status not updated: %q", resp.UpdatedQuotation.Status)
	}

	// visible on a subsequent read
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/quotations/%d", id), "")
	var q models.Quotation
	_ = json.Unmarshal(w.Body.Bytes(), &q)
	if q.Status != models.StatusApproved {
		t.Fatalf("get after patch: status %q", q.Status)
	}
}

func TestQuotationDeleteLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodDelete, "/api/quotations/42", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete missing expected 404 got %d", w.Code)
	}

	id := createQuotation(t, r)
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/quotations/%d", id), "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete expected 200 got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/quotations/%d", id), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete expected 404 got %d", w.Code)
	}

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/quotations/%d", id), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("repeat delete expected 404 got %d", w.Code)
	}
}

func TestQuotationDeleteBlockedWhileInvoiced(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createQuotation(t, r)

	w := doJSON(r, http.MethodPost, fmt.Sprintf("/api/invoices/%d", id), "")
	if w.Code != http.StatusCreated {
		t.Fatalf("invoice expected 201 got %d", w.Code)
	}

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/quotations/%d", id), "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestQuotationPDF(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createQuotation(t, r)

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/api/quotations/%d/pdf", id), "")
	if w.Code != http.StatusOK {
		t.Fatalf("pdf expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/pdf") {
		t.Fatalf("content-type: %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Fatalf("empty pdf body")
	}

	w = doJSON(r, http.MethodGet, "/api/quotations/999/pdf", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing quotation pdf expected 404 got %d", w.Code)
	}
}
