package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUnknownGuild(t *testing.T) {
	m := NewMap()

	_, ok := m.Get("g1")
	assert.False(t, ok)
}

func TestSetStoresLatestValue(t *testing.T) {
	m := NewMap()

	m.Set("g1", Progress{TrackID: "a", Percent: 5})
	m.Set("g1", Progress{TrackID: "a", Percent: 10})

	p, ok := m.Get("g1")
	assert.True(t, ok)
	assert.Equal(t, Progress{TrackID: "a", Percent: 10}, p)
}

func TestEqualValueDoesNotNotify(t *testing.T) {
	m := NewMap()

	var notified []Progress
	m.OnChange("g1", func(p Progress) { notified = append(notified, p) })

	m.Set("g1", Progress{TrackID: "a", Percent: 5})
	m.Set("g1", Progress{TrackID: "a", Percent: 5})

	assert.Len(t, notified, 1)
}

func TestChangedValueNotifies(t *testing.T) {
	m := NewMap()

	var notified []Progress
	m.OnChange("g1", func(p Progress) { notified = append(notified, p) })

	m.Set("g1", Progress{TrackID: "a", Percent: 5})
	m.Set("g1", Progress{TrackID: "a", Percent: 6})
	m.Set("g1", Progress{TrackID: "b", Percent: 6})

	assert.Len(t, notified, 3)
}

func TestPerGuildValues(t *testing.T) {
	m := NewMap()

	m.Set("g1", Progress{TrackID: "a", Percent: 50})
	m.Set("g2", Progress{TrackID: "b", Percent: 10})

	p1, _ := m.Get("g1")
	p2, _ := m.Get("g2")
	assert.Equal(t, "a", p1.TrackID)
	assert.Equal(t, "b", p2.TrackID)
}
