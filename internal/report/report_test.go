package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"

	evalservice "conduct/internal/evaluation/service"
	evalstore "conduct/internal/evaluation/store/evaluation"
	regservice "conduct/internal/registry/service"
	residentstore "conduct/internal/registry/store/resident"
	userstore "conduct/internal/registry/store/user"
	id "conduct/pkg/domain"
	"conduct/pkg/requestcontext"
)

type ReportSuite struct {
	suite.Suite
	evaluations *evalservice.Service
	registry    *regservice.Service
	builder     *Builder
	ctx         context.Context
	userID      id.UserID
}

func (s *ReportSuite) SetupTest() {
	s.evaluations = evalservice.New(evalstore.NewInMemory())
	s.registry = regservice.New(userstore.NewInMemory(), residentstore.NewInMemory())
	s.builder = New(s.evaluations, s.registry)
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	user, err := s.registry.CreateUser(s.ctx, "Evaluator", "eval@dorm.example")
	s.Require().NoError(err)
	s.userID = user.ID
}

func TestReportSuite(t *testing.T) {
	suite.Run(t, new(ReportSuite))
}

func (s *ReportSuite) TestBuild() {
	resident, err := s.registry.CreateResident(s.ctx, "Emre Aydin", "204")
	s.Require().NoError(err)

	_, err = s.evaluations.UpsertSingle(s.ctx, resident.ID, "2026-03-01",
		map[string]bool{"bed": false, "phoneCaught": true}, "phone confiscated", s.userID)
	s.Require().NoError(err)

	raw, err := s.builder.Build(s.ctx, "2026-03-01", "2026-03-01")
	s.Require().NoError(err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	s.Require().NoError(err)
	defer f.Close()

	s.Run("data sheet has header and one row", func() {
		rows, err := f.GetRows(dataSheet)
		s.Require().NoError(err)
		s.Require().Len(rows, 2)

		header := rows[0]
		s.Equal("Resident", header[0])
		s.Equal("Deficiencies", header[len(header)-2])
		s.Equal("Notes", header[len(header)-1])

		row := rows[1]
		s.Equal("Emre Aydin", row[0])
		s.Equal("204", row[1])
		s.Equal("2026-03-01", row[2])
		s.Equal("2", row[len(row)-2])
		s.Equal("phone confiscated", row[len(row)-1])
	})

	s.Run("deficient criteria are marked", func() {
		// bed is the first criterion column (D), phoneCaught the last (L).
		bed, err := f.GetCellValue(dataSheet, "D2")
		s.Require().NoError(err)
		s.Equal("X", bed)

		desk, err := f.GetCellValue(dataSheet, "E2")
		s.Require().NoError(err)
		s.Equal("", desk)

		phone, err := f.GetCellValue(dataSheet, "L2")
		s.Require().NoError(err)
		s.Equal("X", phone)
	})

	s.Run("summary sheet totals the range", func() {
		assertCell(s.T(), f, summarySheet, "B1", "2026-03-01")
		assertCell(s.T(), f, summarySheet, "B3", "1")
		assertCell(s.T(), f, summarySheet, "B4", "2")
	})
}

func (s *ReportSuite) TestBuild_UnknownResidentFallsBackToID() {
	ghost, err := s.registry.CreateResident(s.ctx, "Ghost", "101")
	s.Require().NoError(err)
	_, err = s.evaluations.UpsertSingle(s.ctx, ghost.ID, "2026-03-01", nil, "", s.userID)
	s.Require().NoError(err)
	s.Require().NoError(s.registry.DeleteResident(s.ctx, ghost.ID))

	raw, err := s.builder.Build(s.ctx, "2026-03-01", "2026-03-01")
	s.Require().NoError(err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	s.Require().NoError(err)
	defer f.Close()

	name, err := f.GetCellValue(dataSheet, "A2")
	s.Require().NoError(err)
	s.Equal(ghost.ID.String(), name, "a resident removed from the roster still exports by id")
}

func assertCell(t *testing.T, f *excelize.File, sheet, cell, want string) {
	t.Helper()
	got, err := f.GetCellValue(sheet, cell)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
