// Package curriculum implements sequential lock/unlock progression over a
// course's ordered list of lessons and quizzes. It is a pure library: all
// collaborators (item source, persistence) are passed in, and every function
// except Tracker.CompleteItem is side-effect free.
package curriculum

import "errors"

var (
	// ErrItemNotFound is returned when an item id is not part of the curriculum.
	ErrItemNotFound = errors.New("curriculum item not found")
	// ErrItemLocked is returned when navigation targets an item whose
	// predecessors are not all completed yet.
	ErrItemLocked = errors.New("curriculum item is locked")
	// ErrNoProgress is returned by stores when no record exists for the
	// learner/course pair.
	ErrNoProgress = errors.New("progress record not found")
)

type ItemType string

const (
	ItemLesson ItemType = "lesson"
	ItemQuiz   ItemType = "quiz"
)

// Item is one unit of a course's ordered curriculum. ID has the form
// "<type>-<refID>" and is stable across reorders.
type Item struct {
	ID    string   `json:"id"`
	Type  ItemType `json:"type"`
	Title string   `json:"title"`
}

type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
)

// Record is a learner's progress through one course.
type Record struct {
	CompletedItemIDs []string `json:"completedItemIds"`
	Status           Status   `json:"status"`
	PercentComplete  int      `json:"percentComplete"`
}

// CompletedSet returns the record's completed ids as a membership set.
func (r *Record) CompletedSet() map[string]bool {
	set := make(map[string]bool, len(r.CompletedItemIDs))
	for _, id := range r.CompletedItemIDs {
		set[id] = true
	}
	return set
}

// Recompute derives Status and PercentComplete from the completed set and the
// item list, dropping any completed id that no longer belongs to the course.
func (r *Record) Recompute(items []Item) {
	valid := make(map[string]bool, len(items))
	for _, it := range items {
		valid[it.ID] = true
	}
	kept := r.CompletedItemIDs[:0]
	for _, id := range r.CompletedItemIDs {
		if valid[id] {
			kept = append(kept, id)
		}
	}
	r.CompletedItemIDs = kept

	if len(items) == 0 {
		r.PercentComplete = 0
		r.Status = StatusNotStarted
		return
	}
	r.PercentComplete = 100 * len(kept) / len(items)
	switch {
	case len(kept) == 0:
		r.Status = StatusNotStarted
	case len(kept) == len(items):
		r.Status = StatusCompleted
	default:
		r.Status = StatusInProgress
	}
}

// IsLocked reports whether the item at index is still locked: index 0 never
// is, any later index is locked while some predecessor remains incomplete.
func IsLocked(items []Item, completed map[string]bool, index int) bool {
	if index <= 0 {
		return false
	}
	for i := 0; i < index; i++ {
		if !completed[items[i].ID] {
			return true
		}
	}
	return false
}

// SelectInitialItem returns the index the player should open: the first
// incomplete item ("resume where you left off"), or 0 when the course is
// fully completed (review mode).
func SelectInitialItem(items []Item, completed map[string]bool) int {
	for i, it := range items {
		if !completed[it.ID] {
			return i
		}
	}
	return 0
}

// Advance returns the index after current, or done=true when current was the
// last item. Immediately after completing the current item the next index is
// always unlocked, so no lock check is repeated here.
func Advance(current int, items []Item) (next int, done bool) {
	if current+1 >= len(items) {
		return 0, true
	}
	return current + 1, false
}

// SelectItem validates direct navigation to target. Completed items are
// always re-openable for review; anything else must be unlocked.
func SelectItem(items []Item, completed map[string]bool, target int) (int, error) {
	if target < 0 || target >= len(items) {
		return 0, ErrItemNotFound
	}
	if completed[items[target].ID] {
		return target, nil
	}
	if IsLocked(items, completed, target) {
		return 0, ErrItemLocked
	}
	return target, nil
}
