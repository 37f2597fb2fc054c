package store

import (
	"context"
	"log"
	"time"
)

const journalWriteTimeout = 5 * time.Second

// Journal persists committed events so the store can be rebuilt after a
// restart. Load reports false when nothing has been journaled yet.
type Journal interface {
	Record(ctx context.Context, event Event) error
	Load(ctx context.Context) (Snapshot, bool, error)
}

// AttachJournal records every event committed to s. Write failures are
// logged and do not roll back the in-memory mutation.
func AttachJournal(s *Store, journal Journal) func() {
	return s.Subscribe(func(event Event) {
		ctx, cancel := context.WithTimeout(context.Background(), journalWriteTimeout)
		defer cancel()
		if err := journal.Record(ctx, event); err != nil {
			log.Printf("store: journal %s %s %s failed: %v", event.Kind, event.Entity, event.ID, err)
		}
	})
}

// Bootstrap restores s from journal when it holds data. Otherwise the
// journal is attached first and the demo data seeded when seed is set, so
// the seed itself is persisted.
func Bootstrap(ctx context.Context, s *Store, journal Journal, seed bool) (func(), error) {
	snap, ok, err := journal.Load(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		s.Restore(snap)
		log.Printf("store: restored %d activities, %d press releases, %d contacts, %d channels from journal",
			len(snap.Activities), len(snap.PressReleases), len(snap.Contacts), len(snap.Channels))
		return AttachJournal(s, journal), nil
	}

	detach := AttachJournal(s, journal)
	if seed {
		Seed(s)
		log.Printf("store: journal empty, seeded demo data")
	}
	return detach, nil
}
