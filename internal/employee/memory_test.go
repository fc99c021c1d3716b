package employee

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type MemoryRepositorySuite struct {
	suite.Suite
	repo *MemoryRepository
	ctx  context.Context
}

func (s *MemoryRepositorySuite) SetupTest() {
	s.repo = NewMemoryRepository()
	s.ctx = context.Background()
}

func TestMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(MemoryRepositorySuite))
}

func (s *MemoryRepositorySuite) newRecord(email string) Employee {
	return Employee{
		Name:         "Test Person",
		Age:          30,
		Subjects:     []string{"Math"},
		Attendance:   88.5,
		Role:         RoleEmployee,
		Email:        email,
		PasswordHash: "x",
	}
}

func (s *MemoryRepositorySuite) TestCreateAndLookups() {
	created, err := s.repo.Create(s.ctx, s.newRecord("a@example.com"))
	s.Require().NoError(err)
	s.NotEmpty(created.ID)
	s.False(created.Date.IsZero())

	byID, err := s.repo.FindByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(byID)
	s.Equal(created.ID, byID.ID)

	byEmail, err := s.repo.FindByEmail(s.ctx, "a@example.com")
	s.Require().NoError(err)
	s.Require().NotNil(byEmail)
	s.Equal(created.ID, byEmail.ID)

	missing, err := s.repo.FindByID(s.ctx, "nope")
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *MemoryRepositorySuite) TestCreateRejectsDuplicateEmail() {
	_, err := s.repo.Create(s.ctx, s.newRecord("dup@example.com"))
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, s.newRecord("dup@example.com"))
	s.Require().ErrorIs(err, ErrEmailTaken)

	all, err := s.repo.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *MemoryRepositorySuite) TestUpdatePartialSemantics() {
	created, err := s.repo.Create(s.ctx, s.newRecord("u@example.com"))
	s.Require().NoError(err)

	name := "Renamed"
	updated, err := s.repo.UpdateByID(s.ctx, created.ID, Update{Name: &name})
	s.Require().NoError(err)
	s.Require().NotNil(updated)
	s.Equal("Renamed", updated.Name)
	s.Equal(created.Age, updated.Age)
	s.Equal(created.Email, updated.Email)
}

func (s *MemoryRepositorySuite) TestUpdateRejectsTakenEmail() {
	first, err := s.repo.Create(s.ctx, s.newRecord("first@example.com"))
	s.Require().NoError(err)
	second, err := s.repo.Create(s.ctx, s.newRecord("second@example.com"))
	s.Require().NoError(err)

	email := "first@example.com"
	_, err = s.repo.UpdateByID(s.ctx, second.ID, Update{Email: &email})
	s.Require().ErrorIs(err, ErrEmailTaken)

	unchanged, err := s.repo.FindByID(s.ctx, second.ID)
	s.Require().NoError(err)
	s.Equal("second@example.com", unchanged.Email)

	// keeping your own email is not a conflict
	own := "first@example.com"
	updated, err := s.repo.UpdateByID(s.ctx, first.ID, Update{Email: &own})
	s.Require().NoError(err)
	s.Equal("first@example.com", updated.Email)
}

func (s *MemoryRepositorySuite) TestUpdateUnknownIDIsAbsentNotError() {
	name := "X"
	updated, err := s.repo.UpdateByID(s.ctx, "missing", Update{Name: &name})
	s.Require().NoError(err)
	s.Nil(updated)
}

func (s *MemoryRepositorySuite) TestDeleteIsIdempotent() {
	created, err := s.repo.Create(s.ctx, s.newRecord("d@example.com"))
	s.Require().NoError(err)

	s.Require().NoError(s.repo.DeleteByID(s.ctx, created.ID))
	s.Require().NoError(s.repo.DeleteByID(s.ctx, created.ID))
	s.Require().NoError(s.repo.DeleteByID(s.ctx, "never-existed"))

	gone, err := s.repo.FindByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Nil(gone)
}

func (s *MemoryRepositorySuite) TestReturnedRecordsAreCopies() {
	created, err := s.repo.Create(s.ctx, s.newRecord("c@example.com"))
	s.Require().NoError(err)

	got, err := s.repo.FindByID(s.ctx, created.ID)
	s.Require().NoError(err)
	got.Name = "mutated"
	got.Subjects[0] = "mutated"

	fresh, err := s.repo.FindByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Test Person", fresh.Name)
	s.Equal([]string{"Math"}, fresh.Subjects)
}

func (s *MemoryRepositorySuite) TestInsertManySkipsDuplicates() {
	_, err := s.repo.Create(s.ctx, s.newRecord("taken@example.com"))
	s.Require().NoError(err)

	batch := []Employee{
		s.newRecord("taken@example.com"),
		s.newRecord("fresh@example.com"),
	}
	batch[1].Date = time.Now().UTC()
	s.Require().NoError(s.repo.InsertMany(s.ctx, batch))

	all, err := s.repo.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)
}
