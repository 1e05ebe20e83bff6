package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"
	"time"

	"quotation-backend/config"
	"quotation-backend/models"
	"quotation-backend/repository"
	"quotation-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

type fakeMailer struct {
	sent []models.OutgoingEmail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, email models.OutgoingEmail) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	mailer    *fakeMailer
	uploadDir string
}

func newTestEnv(t *testing.T, requireAuth bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Quotation{}, &models.AdminUser{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Create(&models.AdminUser{Username: "admin", Password: "pw1"}).Error)

	env := &testEnv{db: db, mailer: &fakeMailer{}, uploadDir: t.TempDir()}

	smtpCfg := config.SMTPConfig{Username: "sender@example.com", NotifyTo: "info@example.com", CompanyName: "Aspire TekHub"}
	quotations := services.NewQuotationService(
		repository.NewQuotationRepository(db),
		services.NewUploadService(env.uploadDir, 1<<20),
		services.NewEmailService(env.mailer, smtpCfg),
	)
	auth := services.NewAuthService(repository.NewAdminRepository(db), "test-secret", 24*time.Hour)

	r := gin.New()
	r.GET("/", Root)
	r.GET("/healthz", HealthCheck(sqlDB))
	r.POST("/send-email", SendQuotationEmail(quotations))
	r.POST("/api/login", LoginHandler(auth))

	admin := r.Group("/")
	if requireAuth {
		admin.Use(AdminAuth(auth))
	}
	admin.GET("/users", GetAdminUsers(auth))
	admin.GET("/api/quotations", GetQuotations(quotations))
	admin.GET("/api/quotations/export", ExportQuotations(quotations))
	admin.GET("/api/quotations/:id/pdf", DownloadQuotationPDF(quotations))

	env.router = r
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) uploadDirEntries(t *testing.T) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(e.uploadDir)
	require.NoError(t, err)
	return entries
}

type testFile struct {
	name        string
	contentType string
	content     []byte
}

func pdfFile() *testFile {
	return &testFile{name: "summary.pdf", contentType: "application/pdf", content: samplePDF}
}

func submitRequest(t *testing.T, fields map[string]string, file *testFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="pdf"; filename="%s"`, file.name))
		h.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/send-email", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func validFields() map[string]string {
	return map[string]string{
		"name":         "Asha",
		"email":        "asha@example.com",
		"phone":        "12345",
		"tableDetails": `[{"title":"Basic","items":["Logo","Banner"]}]`,
		"grandTotal":   "123.5",
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func loginRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSendQuotationEmail_Success(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(submitRequest(t, validFields(), pdfFile()))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "✅ Email sent & quotation saved!", body["message"])
	assert.NotContains(t, body, "warning")

	var saved []models.Quotation
	require.NoError(t, env.db.Find(&saved).Error)
	require.Len(t, saved, 1)
	assert.Equal(t, "Asha", saved[0].Name)
	assert.Equal(t, "asha@example.com", saved[0].Email)
	assert.Equal(t, "12345", saved[0].Phone)
	assert.Equal(t, "Basic: Logo, Banner", saved[0].TableDetails)
	assert.Equal(t, "123.50", saved[0].GrandTotal.String())

	require.Len(t, env.mailer.sent, 2)
	assert.Equal(t, []string{"info@example.com"}, env.mailer.sent[0].To)
	assert.Equal(t, "Your Project Summary - Asha", env.mailer.sent[1].Subject)
	assert.Empty(t, env.uploadDirEntries(t))
}

func TestSendQuotationEmail_MissingFields(t *testing.T) {
	for _, field := range []string{"name", "email", "phone"} {
		t.Run(field, func(t *testing.T) {
			env := newTestEnv(t, false)
			fields := validFields()
			delete(fields, field)

			w := env.do(submitRequest(t, fields, pdfFile()))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Missing name, email, phone, or PDF file.", decodeBody(t, w)["message"])

			var count int64
			require.NoError(t, env.db.Model(&models.Quotation{}).Count(&count).Error)
			assert.Zero(t, count)
			assert.Empty(t, env.mailer.sent)
			assert.Empty(t, env.uploadDirEntries(t))
		})
	}
}

func TestSendQuotationEmail_MissingFile(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(submitRequest(t, validFields(), nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing name, email, phone, or PDF file.", decodeBody(t, w)["message"])
}

func TestSendQuotationEmail_NotPDF(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(submitRequest(t, validFields(), &testFile{name: "a.png", contentType: "image/png", content: []byte("png")}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Only PDF files allowed!", decodeBody(t, w)["message"])
	assert.Empty(t, env.uploadDirEntries(t))
}

func TestSendQuotationEmail_EmailFailure(t *testing.T) {
	env := newTestEnv(t, false)
	env.mailer.err = errors.New("smtp unavailable")

	w := env.do(submitRequest(t, validFields(), pdfFile()))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Failed to send email", body["message"])
	assert.Contains(t, body["error"], "smtp unavailable")
	assert.Empty(t, env.uploadDirEntries(t))
}

func TestSendQuotationEmail_DatabaseFailure(t *testing.T) {
	env := newTestEnv(t, false)
	require.NoError(t, env.db.Migrator().DropTable(&models.Quotation{}))

	w := env.do(submitRequest(t, validFields(), pdfFile()))
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "✅ Email sent!", body["message"])
	assert.NotEmpty(t, body["warning"])
	assert.Len(t, env.mailer.sent, 2)
	assert.Empty(t, env.uploadDirEntries(t))
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(loginRequest(`{"username":"admin","password":"pw1"}`))
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])

	w = env.do(loginRequest(`{"username":"admin","password":"nope"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, "Invalid username or password", body["message"])
	assert.NotContains(t, body, "token")

	w = env.do(loginRequest(`{not json`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_DatabaseError(t *testing.T) {
	env := newTestEnv(t, false)
	require.NoError(t, env.db.Migrator().DropTable(&models.AdminUser{}))

	w := env.do(loginRequest(`{"username":"admin","password":"pw1"}`))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "DB error", decodeBody(t, w)["message"])
}

func TestGetQuotations_NewestFirst(t *testing.T) {
	env := newTestEnv(t, false)
	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, env.db.Create(&models.Quotation{Name: name, Email: name + "@x.com", Phone: "1"}).Error)
	}

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/quotations", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0]["name"])
	assert.Equal(t, "first", list[2]["name"])
	assert.Equal(t, "0.00", list[0]["grand_total"])
}

func TestGetQuotations_Empty(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/quotations", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestGetAdminUsers(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(httptest.NewRequest(http.MethodGet, "/users", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var admins []models.AdminUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &admins))
	require.Len(t, admins, 1)
	assert.Equal(t, "admin", admins[0].Username)
}

func TestExportQuotations(t *testing.T) {
	env := newTestEnv(t, false)
	require.NoError(t, env.db.Create(&models.Quotation{Name: "Asha", Email: "a@x.com", Phone: "1", TableDetails: "Basic: Logo"}).Error)

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/quotations/export", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "quotations.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Quotations")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Asha", rows[1][0])
}

func TestDownloadQuotationPDF(t *testing.T) {
	env := newTestEnv(t, false)
	q := &models.Quotation{Name: "Asha Verma", Email: "a@x.com", Phone: "1"}
	require.NoError(t, env.db.Create(q).Error)

	w := env.do(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/quotations/%d/pdf", q.ID), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), fmt.Sprintf("quotation-%d-asha-verma.pdf", q.ID))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/quotations/9999/pdf", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/quotations/abc/pdf", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminAuth(t *testing.T) {
	env := newTestEnv(t, true)

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/quotations", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = env.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(loginRequest(`{"username":"admin","password":"pw1"}`))
	require.Equal(t, http.StatusOK, w.Code)
	token := decodeBody(t, w)["token"].(string)

	req = httptest.NewRequest(http.MethodGet, "/api/quotations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = env.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRootAndHealth(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "🚀 API is running...", w.Body.String())

	w = env.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthCheck_Unavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthz", HealthCheck(nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, w.Body.String())
}
