package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = ginkgo.Describe("PermissionResolver", func() {
	var (
		service  *Service
		mockRepo *mockRepository
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockRepository()
		service = NewService(mockRepo, NewTokenGenerator(testSecurityConfig()), bcrypt.MinCost, nil)
	})

	ginkgo.Describe("ResolvePermissions", func() {
		ginkgo.It("should union and deduplicate permissions shared by two roles", func() {
			mockRepo.assignRole(1, "roleA", "view_x", "manage_x")
			mockRepo.assignRole(1, "roleB", "view_x")

			perms, err := service.ResolvePermissions(1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			names := make([]string, 0, len(perms))
			for _, p := range perms {
				names = append(names, p.Name)
			}
			gomega.Expect(names).To(gomega.ConsistOf("view_x", "manage_x"))
		})

		ginkgo.It("should not depend on role assignment order", func() {
			mockRepo.assignRole(1, "roleA", "view_x", "manage_x")
			mockRepo.assignRole(1, "roleB", "view_x")

			mockRepo.assignRole(2, "roleB", "view_x")
			mockRepo.assignRole(2, "roleA", "view_x", "manage_x")

			first, err := service.ResolvePermissions(1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			second, err := service.ResolvePermissions(2)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			firstNames := make([]string, 0, len(first))
			for _, p := range first {
				firstNames = append(firstNames, p.Name)
			}
			secondNames := make([]string, 0, len(second))
			for _, p := range second {
				secondNames = append(secondNames, p.Name)
			}
			gomega.Expect(firstNames).To(gomega.Equal(secondNames))
		})

		ginkgo.It("should return an empty set for a user with no roles", func() {
			perms, err := service.ResolvePermissions(1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(perms).To(gomega.BeEmpty())
		})

		ginkgo.It("should resolve a superuser's explicit roles only", func() {
			// No bypass here; a superuser with no roles gets nothing.
			perms, err := service.ResolvePermissions(2)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(perms).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("HasPermission", func() {
		ginkgo.It("should report permissions granted through any role", func() {
			mockRepo.assignRole(1, "editor", "manage_projects")

			ok, err := service.HasPermission(1, "manage_projects")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeTrue())

			ok, err = service.HasPermission(1, "manage_users")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("HasRole", func() {
		ginkgo.It("should only consider directly assigned roles", func() {
			mockRepo.assignRole(1, "editor", "manage_projects")

			ok, err := service.HasRole(1, "editor")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeTrue())

			ok, err = service.HasRole(1, "admin")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeFalse())
		})
	})
})

var _ = ginkgo.Describe("PermissionSpec", func() {
	granted := map[string]bool{"view_x": true, "manage_x": true}

	ginkgo.It("should match a single required permission", func() {
		gomega.Expect(Require("view_x").Satisfied(granted)).To(gomega.BeTrue())
		gomega.Expect(Require("view_y").Satisfied(granted)).To(gomega.BeFalse())
	})

	ginkgo.It("should match any-of when at least one is granted", func() {
		gomega.Expect(RequireAny("view_y", "manage_x").Satisfied(granted)).To(gomega.BeTrue())
		gomega.Expect(RequireAny("view_y", "manage_y").Satisfied(granted)).To(gomega.BeFalse())
	})

	ginkgo.It("should match all-of only when every one is granted", func() {
		gomega.Expect(RequireAll("view_x", "manage_x").Satisfied(granted)).To(gomega.BeTrue())
		gomega.Expect(RequireAll("view_x", "manage_y").Satisfied(granted)).To(gomega.BeFalse())
	})
})
