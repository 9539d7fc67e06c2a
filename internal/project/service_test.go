package project_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mindgraphix/platform/internal"
	projectDatamodel "github.com/mindgraphix/platform/internal/core/datamodel/project"
	"github.com/mindgraphix/platform/internal/project"
)

func TestProjectService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Project Service Suite")
}

// MockRepository implements project.RepositoryAPI for testing
type MockRepository struct {
	projects   []*projectDatamodel.Project
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{nextID: 1}
}

func (m *MockRepository) GetAll(skip, limit int) ([]*projectDatamodel.Project, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	if skip >= len(m.projects) {
		return nil, nil
	}
	end := skip + limit
	if end > len(m.projects) {
		end = len(m.projects)
	}
	return m.projects[skip:end], nil
}

func (m *MockRepository) GetByID(id int64) (*projectDatamodel.Project, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, p := range m.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) Create(p *projectDatamodel.Project) error {
	if m.shouldFail {
		return m.failError
	}
	p.ID = m.nextID
	m.nextID++
	m.projects = append(m.projects, p)
	return nil
}

var _ = Describe("ProjectService", func() {
	var (
		service  *project.Service
		mockRepo *MockRepository
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = project.NewService(mockRepo, slogger)
	})

	Describe("Create", func() {
		It("should persist a valid project", func() {
			p, err := service.Create(project.CreateProjectDTO{
				Title:       "Brand refresh",
				Description: "Full identity redesign",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(p.ID).To(BeNumerically(">", 0))
			Expect(p.Title).To(Equal("Brand refresh"))
		})

		It("should reject a project without a title", func() {
			_, err := service.Create(project.CreateProjectDTO{Description: "no title"})

			var vErr project.ValidationError
			Expect(errors.As(err, &vErr)).To(BeTrue())
		})
	})

	Describe("GetByID", func() {
		It("should return not-found for a missing project", func() {
			_, err := service.GetByID(42)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeProjectNotFound))
		})

		It("should return the stored project", func() {
			created, err := service.Create(project.CreateProjectDTO{Title: "Site relaunch"})
			Expect(err).NotTo(HaveOccurred())

			got, err := service.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Title).To(Equal("Site relaunch"))
		})
	})

	Describe("GetAll", func() {
		It("should apply skip and limit", func() {
			for _, title := range []string{"one", "two", "three"} {
				_, err := service.Create(project.CreateProjectDTO{Title: title})
				Expect(err).NotTo(HaveOccurred())
			}

			projects, err := service.GetAll(1, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(projects).To(HaveLen(1))
			Expect(projects[0].Title).To(Equal("two"))
		})
	})
})
