package project_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	projectDatamodel "github.com/mindgraphix/platform/internal/core/datamodel/project"
	"github.com/mindgraphix/platform/internal/project"
	projectPostgres "github.com/mindgraphix/platform/internal/project/postgres"
	"github.com/mindgraphix/platform/internal/transport"
)

var _ = Describe("Project Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *project.Handler
		router  *chi.Mux
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&projectDatamodel.Project{})
		Expect(err).NotTo(HaveOccurred())

		repo := projectPostgres.NewProjectRepository(db)
		service := project.NewService(repo, slogger)
		handler = project.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Get("/projects", handler.ListProjects)
		router.Get("/projects/{id}", handler.GetProject)
		router.Post("/projects", handler.CreateProject)
	})

	It("should create and then list projects", func() {
		body := `{"title":"Brand refresh","description":"Full identity redesign"}`
		req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusCreated))

		req = httptest.NewRequest(http.MethodGet, "/projects", nil)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusOK))

		var projects []project.Project
		Expect(json.Unmarshal(rec.Body.Bytes(), &projects)).To(Succeed())
		Expect(projects).To(HaveLen(1))
		Expect(projects[0].Title).To(Equal("Brand refresh"))
	})

	It("should return 404 for an unknown project id", func() {
		req := httptest.NewRequest(http.MethodGet, "/projects/99", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should return 400 for a non-numeric project id", func() {
		req := httptest.NewRequest(http.MethodGet, "/projects/abc", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should return 400 when the title is missing", func() {
		req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(`{"description":"no title"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})
})
