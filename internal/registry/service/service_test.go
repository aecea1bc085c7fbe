package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	residentstore "conduct/internal/registry/store/resident"
	userstore "conduct/internal/registry/store/user"
	id "conduct/pkg/domain"
	dErrors "conduct/pkg/domain-errors"
)

type RegistryServiceSuite struct {
	suite.Suite
	service *Service
	ctx     context.Context
}

func (s *RegistryServiceSuite) SetupTest() {
	s.service = New(userstore.NewInMemory(), residentstore.NewInMemory())
	s.ctx = context.Background()
}

func TestRegistryServiceSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceSuite))
}

func (s *RegistryServiceSuite) TestUsers() {
	s.Run("creates and lists users", func() {
		created, err := s.service.CreateUser(s.ctx, "Dana Keller", "dana@dorm.example")
		s.Require().NoError(err)
		s.False(created.ID.IsNil())

		users, err := s.service.ListUsers(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(users, 1)
		s.Equal("dana@dorm.example", users[0].Email)
	})

	s.Run("derives a display name from the email when omitted", func() {
		created, err := s.service.CreateUser(s.ctx, "", "sam.porter@dorm.example")
		s.Require().NoError(err)
		s.Equal("Sam Porter", created.DisplayName)
	})

	s.Run("rejects duplicate email", func() {
		_, err := s.service.CreateUser(s.ctx, "Other", "dana@dorm.example")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("rejects invalid email", func() {
		_, err := s.service.CreateUser(s.ctx, "Nameless", "not-an-email")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("updates and deletes", func() {
		created, err := s.service.CreateUser(s.ctx, "Temp User", "temp@dorm.example")
		s.Require().NoError(err)

		updated, err := s.service.UpdateUser(s.ctx, created.ID, "Renamed User", "renamed@dorm.example")
		s.Require().NoError(err)
		s.Equal("Renamed User", updated.DisplayName)
		s.Equal(created.CreatedAt, updated.CreatedAt)

		s.Require().NoError(s.service.DeleteUser(s.ctx, created.ID))
		_, err = s.service.GetUser(s.ctx, created.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *RegistryServiceSuite) TestUserDirectory() {
	a, err := s.service.CreateUser(s.ctx, "A", "a@dorm.example")
	s.Require().NoError(err)
	b, err := s.service.CreateUser(s.ctx, "B", "b@dorm.example")
	s.Require().NoError(err)

	ids, err := s.service.ListUserIDs(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch(ids, []id.UserID{a.ID, b.ID})
}

func (s *RegistryServiceSuite) TestResidents() {
	s.Run("creates with trimmed fields", func() {
		created, err := s.service.CreateResident(s.ctx, "  Emre Aydin ", " 204 ")
		s.Require().NoError(err)
		s.Equal("Emre Aydin", created.Name)
		s.Equal("204", created.Room)
	})

	s.Run("rejects blank name", func() {
		_, err := s.service.CreateResident(s.ctx, "   ", "101")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("lists by room then name", func() {
		_, err := s.service.CreateResident(s.ctx, "Zeki Demir", "101")
		s.Require().NoError(err)
		_, err = s.service.CreateResident(s.ctx, "Ali Kaya", "101")
		s.Require().NoError(err)

		residents, err := s.service.ListResidents(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(residents, 3)
		s.Equal("Ali Kaya", residents[0].Name)
		s.Equal("Zeki Demir", residents[1].Name)
		s.Equal("204", residents[2].Room)
	})

	s.Run("updates preserve creation time", func() {
		created, err := s.service.CreateResident(s.ctx, "Move Me", "301")
		s.Require().NoError(err)

		updated, err := s.service.UpdateResident(s.ctx, created.ID, "Move Me", "302")
		s.Require().NoError(err)
		s.Equal("302", updated.Room)
		s.Equal(created.CreatedAt, updated.CreatedAt)
	})

	s.Run("delete then get reports not found", func() {
		created, err := s.service.CreateResident(s.ctx, "Leaving Soon", "401")
		s.Require().NoError(err)

		s.Require().NoError(s.service.DeleteResident(s.ctx, created.ID))
		_, err = s.service.GetResident(s.ctx, created.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
