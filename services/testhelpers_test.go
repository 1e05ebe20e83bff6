package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"

	"quotation-backend/models"

	"github.com/stretchr/testify/require"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

// newFileHeader builds a multipart file header the way gin hands one to a handler.
func newFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="pdf"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["pdf"][0]
}

type fakeQuotationStore struct {
	mu         sync.Mutex
	quotations []models.Quotation
	createErr  error
}

func (s *fakeQuotationStore) CreateQuotation(_ context.Context, q *models.Quotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	q.ID = len(s.quotations) + 1
	s.quotations = append(s.quotations, *q)
	return nil
}

func (s *fakeQuotationStore) ListQuotations(_ context.Context) ([]models.Quotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Quotation, 0, len(s.quotations))
	for i := len(s.quotations) - 1; i >= 0; i-- {
		out = append(out, s.quotations[i])
	}
	return out, nil
}

func (s *fakeQuotationStore) GetQuotation(_ context.Context, id int) (*models.Quotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.quotations {
		if q.ID == id {
			q := q
			return &q, nil
		}
	}
	return nil, models.ErrNotFound
}
