package postgres_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mindgraphix/platform/internal/catalog"
	catalogPostgres "github.com/mindgraphix/platform/internal/catalog/postgres"
	catalogDatamodel "github.com/mindgraphix/platform/internal/core/datamodel/catalog"
)

func TestCatalogPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Catalog Postgres Suite")
}

var _ = Describe("Offering Repository", func() {
	var (
		db   *gorm.DB
		repo catalog.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		// SQLite in-memory stands in for Postgres in tests
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&catalogDatamodel.Offering{})
		Expect(err).NotTo(HaveOccurred())

		repo = catalogPostgres.NewOfferingRepository(db)

		for _, o := range []*catalogDatamodel.Offering{
			{Name: "Logo design", Price: 499, Category: "branding"},
			{Name: "Web design", Price: 1999, Category: "web"},
			{Name: "Brand guide", Price: 899, Category: "branding"},
		} {
			Expect(repo.Create(o)).To(Succeed())
		}
	})

	It("should page through all offerings in id order", func() {
		page, err := repo.GetAll(1, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(page).To(HaveLen(2))
		Expect(page[0].Name).To(Equal("Web design"))
	})

	It("should filter by category", func() {
		offerings, err := repo.GetByCategory("branding", 0, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(offerings).To(HaveLen(2))
	})

	It("should return nil, nil for a missing id", func() {
		o, err := repo.GetByID(999)
		Expect(err).NotTo(HaveOccurred())
		Expect(o).To(BeNil())
	})
})
