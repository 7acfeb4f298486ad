package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"userapp/internal/adapter/database/sqlite/repository"
	"userapp/internal/core/domain"
	"userapp/internal/core/port"
	"userapp/internal/core/query"
	"userapp/pkg/test"
	"userapp/pkg/test/factory"
)

type UserRepositorySuite struct {
	suite.Suite
	ctx  context.Context
	repo port.UserRepository
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

func (s *UserRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = repository.NewUserRepository(test.InitTestDB())
}

func (s *UserRepositorySuite) create(customData ...map[string]any) domain.User {
	g := NewWithT(s.T())

	created, err := s.repo.Create(s.ctx, factory.NewUser(customData...))
	g.Expect(err).NotTo(HaveOccurred())

	return created
}

func intPtr(v int) *int {
	return &v
}

func (s *UserRepositorySuite) TestCreateAndGetByID() {
	g := NewWithT(s.T())

	created := s.create(map[string]any{"Hobbies": []string{"chess", "reading"}})

	fetched, err := s.repo.GetByID(s.ctx, created.ID)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(fetched.Name).To(Equal(created.Name))
	g.Expect(fetched.Email).To(Equal(created.Email))
	g.Expect(fetched.Hobbies).To(Equal([]string{"chess", "reading"}))
	g.Expect(fetched.ProfileScore).To(Equal(created.ProfileScore))
}

func (s *UserRepositorySuite) TestCreatePreservesMissingAge() {
	g := NewWithT(s.T())

	created := s.create(map[string]any{"Age": (*int)(nil)})

	fetched, err := s.repo.GetByID(s.ctx, created.ID)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(fetched.Age).To(BeNil())
}

func (s *UserRepositorySuite) TestCreateDuplicateEmail() {
	g := NewWithT(s.T())

	s.create(map[string]any{"Email": "ann@example.com"})

	_, err := s.repo.Create(s.ctx, factory.NewUser(map[string]any{"Email": "ann@example.com"}))

	g.Expect(err).To(MatchError(domain.ErrEmailTaken))
}

func (s *UserRepositorySuite) TestGetByIDNotFound() {
	g := NewWithT(s.T())

	_, err := s.repo.GetByID(s.ctx, domain.NewID())

	g.Expect(err).To(MatchError(domain.ErrUserNotFound))
}

func (s *UserRepositorySuite) TestGetByEmail() {
	g := NewWithT(s.T())

	created := s.create(map[string]any{"Email": "ann@example.com"})

	fetched, err := s.repo.GetByEmail(s.ctx, "ann@example.com")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(fetched.ID).To(Equal(created.ID))
}

func (s *UserRepositorySuite) TestUpdate() {
	g := NewWithT(s.T())

	created := s.create()
	created.Name = "Renamed User"
	created.Hobbies = []string{"baking"}
	created.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(s.ctx, created)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(updated.Name).To(Equal("Renamed User"))
	g.Expect(updated.Hobbies).To(Equal([]string{"baking"}))
}

func (s *UserRepositorySuite) TestUpdateMissingRow() {
	g := NewWithT(s.T())

	ghost := factory.NewUser()

	_, err := s.repo.Update(s.ctx, ghost)

	g.Expect(err).To(MatchError(domain.ErrUserNotFound))
}

func (s *UserRepositorySuite) TestUpdateDuplicateEmail() {
	g := NewWithT(s.T())

	s.create(map[string]any{"Email": "first@example.com"})
	second := s.create(map[string]any{"Email": "second@example.com"})

	second.Email = "first@example.com"

	_, err := s.repo.Update(s.ctx, second)

	g.Expect(err).To(MatchError(domain.ErrEmailTaken))
}

func (s *UserRepositorySuite) TestDelete() {
	g := NewWithT(s.T())

	created := s.create()

	deleted, err := s.repo.Delete(s.ctx, created.ID)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(deleted.ID).To(Equal(created.ID))

	_, err = s.repo.GetByID(s.ctx, created.ID)
	g.Expect(err).To(MatchError(domain.ErrUserNotFound))
}

func (s *UserRepositorySuite) TestDeleteMissingRow() {
	g := NewWithT(s.T())

	_, err := s.repo.Delete(s.ctx, domain.NewID())

	g.Expect(err).To(MatchError(domain.ErrUserNotFound))
}

func (s *UserRepositorySuite) TestListCountsAndPaginates() {
	g := NewWithT(s.T())

	for i := 0; i < 7; i++ {
		s.create(map[string]any{"Email": fmt.Sprintf("user-%d@example.com", i)})
	}

	users, total, err := s.repo.List(s.ctx, nil, query.ParseSort("email", "asc"), query.Pagination{Page: 2, Limit: 3})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(total).To(Equal(int64(7)))
	g.Expect(users).To(HaveLen(3))
	g.Expect(users[0].Email).To(Equal("user-3@example.com"))
}

func (s *UserRepositorySuite) TestListWithPredicate() {
	g := NewWithT(s.T())

	s.create(map[string]any{"Email": "young@example.com", "Age": intPtr(16)})
	s.create(map[string]any{"Email": "adult@example.com", "Age": intPtr(35)})

	pred := query.BuildListPredicate(query.Filters{MinAge: intPtr(18)})

	users, total, err := s.repo.List(s.ctx, pred, query.ParseSort("", ""), query.Pagination{Page: 1, Limit: 10})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(total).To(Equal(int64(1)))
	g.Expect(users[0].Email).To(Equal("adult@example.com"))
}

func (s *UserRepositorySuite) TestSearchHonorsLimit() {
	g := NewWithT(s.T())

	for i := 0; i < 5; i++ {
		s.create(map[string]any{
			"Name":  "Shared Name",
			"Email": fmt.Sprintf("shared-%d@example.com", i),
		})
	}

	pred, err := query.BuildSearchPredicate("shared", "all")
	g.Expect(err).NotTo(HaveOccurred())

	users, err := s.repo.Search(s.ctx, pred, 3)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(users).To(HaveLen(3))
}

func (s *UserRepositorySuite) TestGetAll() {
	g := NewWithT(s.T())

	s.create(map[string]any{"Email": "a@example.com"})
	s.create(map[string]any{"Email": "b@example.com"})

	users, err := s.repo.GetAll(s.ctx)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(users).To(HaveLen(2))
}
