package curriculum

// Store persists progress records. Implementations back onto any document or
// relational store; errors are propagated to the caller unretried.
type Store interface {
	// GetProgress returns the learner's record for a course, or ErrNoProgress.
	GetProgress(learnerID, courseID uint) (*Record, error)
	// SaveProgress writes the record and returns the authoritative stored copy.
	SaveProgress(learnerID, courseID uint, rec *Record) (*Record, error)
}

// Tracker applies completion events for one course's curriculum against a
// Store. A single learner is the sole writer of their own record, so the
// tracker itself needs no locking; callers wanting protection against
// duplicate rapid clicks run CompleteItem inside a store transaction.
type Tracker struct {
	items []Item
	store Store
}

func NewTracker(items []Item, store Store) *Tracker {
	return &Tracker{items: items, store: store}
}

func (t *Tracker) Items() []Item { return t.items }

// CompleteItem records a completion event. It is idempotent: re-completing
// an already-completed item writes nothing and returns the current record.
// Unknown item ids fail with ErrItemNotFound.
func (t *Tracker) CompleteItem(learnerID, courseID uint, itemID string) (*Record, error) {
	if !t.contains(itemID) {
		return nil, ErrItemNotFound
	}

	rec, err := t.store.GetProgress(learnerID, courseID)
	if err == ErrNoProgress {
		rec = &Record{Status: StatusNotStarted}
	} else if err != nil {
		return nil, err
	}

	if rec.CompletedSet()[itemID] {
		return rec, nil
	}

	rec.CompletedItemIDs = append(rec.CompletedItemIDs, itemID)
	rec.Recompute(t.items)
	return t.store.SaveProgress(learnerID, courseID, rec)
}

func (t *Tracker) contains(itemID string) bool {
	for _, it := range t.items {
		if it.ID == itemID {
			return true
		}
	}
	return false
}
