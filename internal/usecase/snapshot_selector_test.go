package usecase_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/usecase"
)

func snapshot(key string, lastUpdated int64, bikes string) domain.Snapshot {
	s := domain.Snapshot{Provider: "lime", Key: key, LastUpdated: lastUpdated}
	if bikes != "" {
		s.Data = map[string]json.RawMessage{"bikes": json.RawMessage(bikes)}
	}
	return s
}

func TestSortByTime(t *testing.T) {
	in := []domain.Snapshot{
		snapshot("a", 5, ""),
		snapshot("b", 0, ""),
		snapshot("c", 12, ""),
		snapshot("d", 0, ""),
	}

	sorted := usecase.SortByTime(in)

	keys := make([]string, len(sorted))
	for i, s := range sorted {
		keys[i] = s.Key
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, keys)
	assert.Equal(t, "a", in[0].Key, "input must not be reordered")
}

func TestSnapshotSelector_Select(t *testing.T) {
	selector := usecase.NewSnapshotSelector("bikes")

	t.Run("earliest snapshot with vehicles wins", func(t *testing.T) {
		snaps := []domain.Snapshot{
			snapshot("t5", 5, `[{"bike_id":"b5","lat":41.9,"lon":-87.6}]`),
			snapshot("t0", 0, `[{"bike_id":"b0","lat":41.8,"lon":-87.7}]`),
			snapshot("t12", 12, `[{"bike_id":"b12","lat":41.7,"lon":-87.8}]`),
		}

		selected, err := selector.Select("lime", snaps)
		require.NoError(t, err)
		assert.Equal(t, "t0", selected.Key)
		require.Len(t, selected.Vehicles, 1)
		assert.Equal(t, "b0", selected.Vehicles[0].ID)
	})

	t.Run("snapshots without vehicles are skipped", func(t *testing.T) {
		snaps := []domain.Snapshot{
			snapshot("t5", 5, `[{"bike_id":"b5","lat":"41.9","lon":"-87.6","is_disabled":0}]`),
			snapshot("t0", 0, `[]`),
			snapshot("t1", 1, ""),
			snapshot("t12", 12, `[{"bike_id":"b12","lat":41.7,"lon":-87.8}]`),
		}

		selected, err := selector.Select("lime", snaps)
		require.NoError(t, err)
		assert.Equal(t, "t5", selected.Key)
		assert.Equal(t, int64(5), selected.CapturedAt.Unix())

		v := selected.Vehicles[0]
		assert.Equal(t, "41.9", v.Lat)
		assert.Equal(t, "-87.6", v.Lon)
		assert.NotContains(t, v.Attributes, "lat")
		assert.NotContains(t, v.Attributes, "lon")
		assert.Equal(t, json.Number("0"), v.Attributes["is_disabled"])
	})

	t.Run("only the latest snapshot has vehicles", func(t *testing.T) {
		snaps := []domain.Snapshot{
			snapshot("t5", 5, `[]`),
			snapshot("t0", 0, ""),
			snapshot("t12", 12, `[{"bike_id":"b12","lat":41.7,"lon":-87.8}]`),
		}

		selected, err := selector.Select("lime", snaps)
		require.NoError(t, err)
		assert.Equal(t, "t12", selected.Key)
		assert.Equal(t, int64(12), selected.CapturedAt.Unix())
		require.Len(t, selected.Vehicles, 1)
		assert.Equal(t, "b12", selected.Vehicles[0].ID)
	})

	t.Run("no usable snapshot", func(t *testing.T) {
		_, err := selector.Select("bird", []domain.Snapshot{snapshot("t0", 0, `[]`)})
		assert.ErrorIs(t, err, domain.ErrNoUsableSnapshot)

		_, err = selector.Select("bird", nil)
		assert.ErrorIs(t, err, domain.ErrNoUsableSnapshot)
	})

	t.Run("custom vehicles key and id fallback", func(t *testing.T) {
		s := domain.Snapshot{Key: "x", Data: map[string]json.RawMessage{
			"vehicles": json.RawMessage(`[{"vehicle_id":"v1","lat":1,"lon":2},{"id":7,"lat":1,"lon":2}]`),
		}}

		selected, err := usecase.NewSnapshotSelector("vehicles").Select("spin", []domain.Snapshot{s})
		require.NoError(t, err)
		assert.Equal(t, "v1", selected.Vehicles[0].ID)
		assert.Equal(t, "7", selected.Vehicles[1].ID)
	})
}
