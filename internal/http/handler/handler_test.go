package handler_test

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/http/handler"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/service"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/storage/memory"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// pngHeader is enough for content sniffing to report image/png
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type testApp struct {
	router  http.Handler
	journal *memory.Journal
	records *memory.CustomerStore
	photos  *memory.PhotoStore
	queue   *memory.AuditQueue
	archive *memory.FileArchive
	service *service.CustomerService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	logger := zap.NewNop()
	journal := &memory.Journal{}
	app := &testApp{
		journal: journal,
		records: memory.NewCustomerStore(journal),
		photos:  memory.NewPhotoStore(journal),
		queue:   memory.NewAuditQueue(journal),
		archive: memory.NewFileArchive(journal),
	}
	now := func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC) }
	app.queue.Now = now

	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}

	audit := service.NewAuditLogService(app.queue, app.archive, now, logger)
	app.service = service.NewCustomerService(app.records, app.photos, audit, ids, logger)

	views, err := handler.NewViews("ABC Retail", logger)
	require.NoError(t, err)
	customers := handler.NewCustomerHandler(app.service, views, 1<<20, logger)
	logs := handler.NewLogHandler(audit, views, logger)

	r := chi.NewRouter()
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", customers.Index)
		r.Get("/create", customers.CreateForm)
		r.Post("/create", customers.Create)
		r.Post("/edit", customers.Edit)
		r.Get("/log", logs.Log)
		r.Post("/log/export", logs.ExportLog)
		r.Route("/{partitionKey}/{rowKey}", func(r chi.Router) {
			r.Get("/", customers.Details)
			r.Get("/edit", customers.EditForm)
			r.Get("/delete", customers.DeleteConfirm)
			r.Post("/delete", customers.Delete)
		})
	})
	app.router = r
	return app
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func multipartRequest(t *testing.T, target string, values url.Values, fileField string, file []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, vals := range values {
		for _, v := range vals {
			require.NoError(t, mw.WriteField(key, v))
		}
	}
	if file != nil {
		fw, err := mw.CreateFormFile(fileField, "photo.png")
		require.NoError(t, err)
		_, err = io.Copy(fw, bytes.NewReader(file))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Accept", "application/json")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func annLeeValues() url.Values {
	return url.Values{
		"firstName":   {"Ann"},
		"lastName":    {"Lee"},
		"email":       {"a@x.com"},
		"phoneNumber": {"555-1111"},
	}
}
