package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frahmantamala/hr-management/internal/transport/middleware"
	"github.com/frahmantamala/hr-management/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Middleware Suite")
}

var _ = Describe("OpenAPIValidator", func() {
	var handler http.Handler

	BeforeEach(func() {
		doc, err := middleware.LoadOpenAPI(context.Background(), "../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())

		validate, err := middleware.OpenAPIValidator(doc, logger.Discard())
		Expect(err).NotTo(HaveOccurred())

		handler = validate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
	})

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	It("passes documented requests through", func() {
		rec := serve(http.MethodPost, "/api/v1/egresos", `{"employeeId":"e1","fechaEgreso":"2024-06-30","tipo":"renuncia"}`)
		Expect(rec.Code).To(Equal(http.StatusTeapot))
	})

	It("rejects bodies that break the schema", func() {
		rec := serve(http.MethodPost, "/api/v1/egresos", `{"employeeId":"e1","fechaEgreso":"2024-06-30","tipo":"abandono"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("VALIDATION_FAILED"))
	})

	It("rejects bad query parameters", func() {
		Expect(serve(http.MethodGet, "/api/v1/contracts?isActive=maybe", "").Code).To(Equal(http.StatusBadRequest))
		Expect(serve(http.MethodGet, "/api/v1/contracts?isActive=true", "").Code).To(Equal(http.StatusTeapot))
	})

	It("ignores paths the document does not describe", func() {
		Expect(serve(http.MethodGet, "/metrics", "").Code).To(Equal(http.StatusTeapot))
	})
})
