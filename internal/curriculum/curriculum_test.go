package curriculum

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	recs  map[[2]uint]*Record
	saves int
	fail  error
}

func newMemStore() *memStore {
	return &memStore{recs: make(map[[2]uint]*Record)}
}

func (s *memStore) GetProgress(learnerID, courseID uint) (*Record, error) {
	rec, ok := s.recs[[2]uint{learnerID, courseID}]
	if !ok {
		return nil, ErrNoProgress
	}
	cp := *rec
	cp.CompletedItemIDs = append([]string(nil), rec.CompletedItemIDs...)
	return &cp, nil
}

func (s *memStore) SaveProgress(learnerID, courseID uint, rec *Record) (*Record, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.saves++
	s.recs[[2]uint{learnerID, courseID}] = rec
	return rec, nil
}

func threeItems() []Item {
	return []Item{
		{ID: "lesson-1", Type: ItemLesson, Title: "Intro"},
		{ID: "quiz-2", Type: ItemQuiz, Title: "Checkpoint"},
		{ID: "lesson-3", Type: ItemLesson, Title: "Wrap up"},
	}
}

func completed(ids ...string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func TestIsLockedFirstItemNeverLocked(t *testing.T) {
	items := threeItems()
	sets := []map[string]bool{
		completed(),
		completed("quiz-2"),
		completed("lesson-1", "quiz-2", "lesson-3"),
	}
	for _, set := range sets {
		assert.False(t, IsLocked(items, set, 0))
	}
}

func TestIsLockedRequiresAllPredecessors(t *testing.T) {
	items := threeItems()

	assert.True(t, IsLocked(items, completed(), 1))
	assert.True(t, IsLocked(items, completed(), 2))

	assert.False(t, IsLocked(items, completed("lesson-1"), 1))
	// completing out of order does not unlock later items
	assert.True(t, IsLocked(items, completed("quiz-2"), 2))
	assert.False(t, IsLocked(items, completed("lesson-1", "quiz-2"), 2))
}

func TestSelectInitialItem(t *testing.T) {
	items := threeItems()

	assert.Equal(t, 0, SelectInitialItem(items, completed()))
	assert.Equal(t, 1, SelectInitialItem(items, completed("lesson-1")))
	assert.Equal(t, 2, SelectInitialItem(items, completed("lesson-1", "quiz-2")))
	// full completion drops back to the start for review
	assert.Equal(t, 0, SelectInitialItem(items, completed("lesson-1", "quiz-2", "lesson-3")))
}

func TestAdvance(t *testing.T) {
	items := threeItems()

	next, done := Advance(0, items)
	assert.False(t, done)
	assert.Equal(t, 1, next)

	next, done = Advance(1, items)
	assert.False(t, done)
	assert.Equal(t, 2, next)

	_, done = Advance(2, items)
	assert.True(t, done)
}

func TestSelectItemRejectsLocked(t *testing.T) {
	items := threeItems()

	_, err := SelectItem(items, completed("lesson-1"), 2)
	assert.ErrorIs(t, err, ErrItemLocked)

	idx, err := SelectItem(items, completed("lesson-1"), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	// completed items stay reachable for review
	idx, err = SelectItem(items, completed("lesson-1"), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	_, err = SelectItem(items, completed(), 5)
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = SelectItem(items, completed(), -1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCompleteItemAdvancesRecord(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(threeItems(), store)

	rec, err := tracker.CompleteItem(7, 11, "lesson-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"lesson-1"}, rec.CompletedItemIDs)
	assert.Equal(t, StatusInProgress, rec.Status)
	assert.Equal(t, 33, rec.PercentComplete)

	// quiz-2 now unlocked, lesson-3 still locked
	set := rec.CompletedSet()
	assert.False(t, IsLocked(tracker.Items(), set, 1))
	assert.True(t, IsLocked(tracker.Items(), set, 2))
}

func TestCompleteItemIdempotent(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(threeItems(), store)

	first, err := tracker.CompleteItem(7, 11, "lesson-1")
	require.NoError(t, err)
	again, err := tracker.CompleteItem(7, 11, "lesson-1")
	require.NoError(t, err)

	assert.Equal(t, first, again)
	assert.Equal(t, 1, store.saves, "re-completion must not write")
}

func TestCompleteItemUnknownID(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(threeItems(), store)

	_, err := tracker.CompleteItem(7, 11, "lesson-99")
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Zero(t, store.saves)
}

func TestCompleteItemPropagatesStoreError(t *testing.T) {
	store := newMemStore()
	store.fail = errors.New("write refused")
	tracker := NewTracker(threeItems(), store)

	_, err := tracker.CompleteItem(7, 11, "lesson-1")
	assert.EqualError(t, err, "write refused")
}

func TestPercentMonotonicAndFullCourse(t *testing.T) {
	store := newMemStore()
	items := threeItems()
	tracker := NewTracker(items, store)

	last := 0
	var rec *Record
	for _, id := range []string{"lesson-1", "quiz-2", "lesson-3"} {
		var err error
		rec, err = tracker.CompleteItem(1, 1, id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rec.PercentComplete, last)
		last = rec.PercentComplete
	}

	assert.Equal(t, 100, rec.PercentComplete)
	assert.Equal(t, StatusCompleted, rec.Status)

	set := rec.CompletedSet()
	for i := range items {
		assert.False(t, IsLocked(items, set, i))
	}
	assert.Equal(t, 0, SelectInitialItem(items, set))
}

func TestRecomputeDropsStaleIDs(t *testing.T) {
	rec := &Record{CompletedItemIDs: []string{"lesson-1", "lesson-404"}}
	rec.Recompute(threeItems())

	assert.Equal(t, []string{"lesson-1"}, rec.CompletedItemIDs)
	assert.Equal(t, 33, rec.PercentComplete)
	assert.Equal(t, StatusInProgress, rec.Status)
}

func TestRecomputeEmptyCurriculum(t *testing.T) {
	rec := &Record{CompletedItemIDs: []string{"lesson-1"}}
	rec.Recompute(nil)

	assert.Empty(t, rec.CompletedItemIDs)
	assert.Zero(t, rec.PercentComplete)
	assert.Equal(t, StatusNotStarted, rec.Status)
}
