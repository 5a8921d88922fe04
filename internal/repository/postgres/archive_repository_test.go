package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/domain/repository"
	"github.com/scooter-map/internal/repository/postgres/testhelpers"
)

// ArchiveRepositoryTestSuite тестирует архив прогонов на реальной БД
type ArchiveRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.ArchiveRepository
	ctx    context.Context
}

func (s *ArchiveRepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.testDB = testhelpers.SetupTestDB(s.T())
	s.repo = testhelpers.NewArchiveRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.Require().NoError(s.repo.EnsureSchema(s.ctx))
}

func (s *ArchiveRepositoryTestSuite) SetupTest() {
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
}

func (s *ArchiveRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *ArchiveRepositoryTestSuite) newRun(startedAt time.Time) domain.RunRecord {
	return domain.RunRecord{
		RunID:         uuid.NewString(),
		Window:        time.Date(2020, 9, 8, 19, 0, 0, 0, time.UTC),
		StartedAt:     startedAt,
		FinishedAt:    startedAt.Add(3 * time.Second),
		TotalVehicles: 6,
		Providers:     "bird,lime",
	}
}

func (s *ArchiveRepositoryTestSuite) TestSaveRunAndGetCounts() {
	run := s.newRun(time.Now().UTC().Truncate(time.Second))
	counts := []domain.AreaCountRecord{
		{RunID: run.RunID, Layer: domain.LayerWard, AreaID: "1", LocationKey: "WARD 1", Count: 2},
		{RunID: run.RunID, Layer: domain.LayerWard, AreaID: "2", LocationKey: "WARD 2", Count: 4},
		{RunID: run.RunID, Layer: domain.LayerZip, AreaID: "60601", LocationKey: "ZIP 60601", Count: 6},
	}

	s.Require().NoError(s.repo.SaveRun(s.ctx, run, counts))

	got, err := s.repo.GetCounts(s.ctx, run.RunID, domain.LayerWard)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("WARD 1", got[0].LocationKey)
	s.Equal(2, got[0].Count)
	s.Equal(4, got[1].Count)
	s.Equal(domain.LayerWard, got[1].Layer)
}

func (s *ArchiveRepositoryTestSuite) TestListRunsNewestFirst() {
	base := time.Now().UTC().Truncate(time.Second)
	older := s.newRun(base.Add(-time.Hour))
	newer := s.newRun(base)

	s.Require().NoError(s.repo.SaveRun(s.ctx, older, nil))
	s.Require().NoError(s.repo.SaveRun(s.ctx, newer, nil))

	runs, err := s.repo.ListRuns(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(runs, 2)
	s.Equal(newer.RunID, runs[0].RunID)
	s.Equal(older.RunID, runs[1].RunID)
	s.Equal(6, runs[0].TotalVehicles)
	s.True(newer.Window.Equal(runs[0].Window))

	runs, err = s.repo.ListRuns(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(runs, 1)
}

func TestArchiveRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ArchiveRepositoryTestSuite))
}
