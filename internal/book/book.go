package book

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/tartampluch/go-contacts/internal/config"
)

// Snapshot is the persistence slot the book synchronizes with. Load returns
// (nil, nil) when no snapshot has ever been saved.
type Snapshot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Book owns the authoritative, insertion-ordered contact list and a derived
// filtered view driven by the last search query. Every mutating operation
// synchronously recomputes the view and writes the full list back to the
// snapshot; search only recomputes the view.
//
// The Fyne event loop is the only mutator. The RWMutex exists for the vCard
// feed goroutine, which concurrently reads the list.
type Book struct {
	mu       sync.RWMutex
	contacts []Contact
	filtered []Contact

	clock Clock
	store Snapshot

	// OnStorageError is invoked (if set) when a snapshot write fails, so the
	// UI can surface a non-blocking warning. The in-memory mutation is never
	// rolled back: memory and disk may diverge until the next successful save.
	OnStorageError func(error)
}

// New creates an empty book bound to a snapshot slot.
func New(store Snapshot, clock Clock) *Book {
	return &Book{
		contacts: make([]Contact, 0),
		filtered: make([]Contact, 0),
		clock:    clock,
		store:    store,
	}
}

// Load reads the persisted snapshot once at startup. Records keep their
// stored ID and CreatedAt. Individual malformed records are skipped; a wholly
// unreadable payload leaves the book empty. Only a storage read failure is
// reported to the caller, and even then the book stays usable in memory.
func (b *Book) Load(ctx context.Context) error {
	data, err := b.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrSnapshotRead, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.contacts = decodeSnapshot(data)
	b.filtered = copyContacts(b.contacts)

	slog.Info(config.MsgBookLoaded,
		config.LogKeyComponent, config.CompBook,
		config.LogKeyCount, len(b.contacts))
	return nil
}

// decodeSnapshot unmarshals the slot payload record by record so one bad
// entry does not discard the rest of the collection.
func decodeSnapshot(data []byte) []Contact {
	contacts := make([]Contact, 0)
	if len(data) == 0 {
		return contacts
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		slog.Warn(config.ErrSnapshotDecode,
			config.LogKeyComponent, config.CompBook,
			config.LogKeyError, err)
		return contacts
	}

	for _, msg := range raw {
		var c Contact
		if err := json.Unmarshal(msg, &c); err != nil || c.ID == "" {
			slog.Warn(config.MsgSkippedRecord,
				config.LogKeyComponent, config.CompBook,
				config.LogKeyError, err)
			continue
		}
		contacts = append(contacts, c)
	}
	return contacts
}

// Add appends a new record built from validated, trimmed form data, resets
// the filtered view to the full list and persists. Returns the new record.
func (b *Book) Add(ctx context.Context, data FormData) Contact {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := NewContact(data, b.clock.Now())
	b.contacts = append(b.contacts, c)
	b.filtered = copyContacts(b.contacts)
	b.persistLocked(ctx)

	slog.Info(config.MsgContactAdded,
		config.LogKeyComponent, config.CompBook,
		config.LogKeyID, c.ID)
	return c
}

// Update merges non-empty form fields into the record with the given id.
// Like add, it resets any active search filter and persists. The second
// return value is false when the id is unknown, in which case nothing
// happened.
func (b *Book) Update(ctx context.Context, id string, data FormData) (Contact, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.contacts {
		if b.contacts[i].ID != id {
			continue
		}
		b.contacts[i].merge(data)
		b.filtered = copyContacts(b.contacts)
		b.persistLocked(ctx)

		slog.Info(config.MsgContactUpdated,
			config.LogKeyComponent, config.CompBook,
			config.LogKeyID, id)
		return b.contacts[i], true
	}
	return Contact{}, false
}

// Delete removes the record with the given id, preserving the order of the
// remaining records. Returns false (and does nothing) for an unknown id.
func (b *Book) Delete(ctx context.Context, id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.contacts {
		if b.contacts[i].ID != id {
			continue
		}
		b.contacts = append(b.contacts[:i], b.contacts[i+1:]...)
		b.filtered = copyContacts(b.contacts)
		b.persistLocked(ctx)

		slog.Info(config.MsgContactDeleted,
			config.LogKeyComponent, config.CompBook,
			config.LogKeyID, id)
		return true
	}
	return false
}

// Search recomputes the filtered view. An empty or whitespace-only query
// restores the full list. Matching is a case-insensitive substring test over
// first name, last name, username and email; the phone number is matched
// literally. The authoritative list is untouched and nothing is persisted.
func (b *Book) Search(query string) {
	raw := strings.TrimSpace(query)
	lowered := strings.ToLower(raw)

	b.mu.Lock()
	defer b.mu.Unlock()

	if raw == "" {
		b.filtered = copyContacts(b.contacts)
	} else {
		filtered := make([]Contact, 0, len(b.contacts))
		for _, c := range b.contacts {
			if c.matches(lowered, raw) {
				filtered = append(filtered, c)
			}
		}
		b.filtered = filtered
	}

	slog.Debug(config.MsgSearchApplied,
		config.LogKeyComponent, config.CompBook,
		config.LogKeyQuery, raw,
		config.LogKeyMatches, len(b.filtered))
}

// ImportForms adds every form that passes validation as a new record and
// persists once at the end. It returns how many records were added and how
// many were rejected.
func (b *Book) ImportForms(ctx context.Context, forms []FormData) (added, skipped int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, data := range forms {
		if err := Validate(data); err != nil {
			skipped++
			continue
		}
		b.contacts = append(b.contacts, NewContact(data, b.clock.Now()))
		added++
	}

	if added > 0 {
		b.filtered = copyContacts(b.contacts)
		b.persistLocked(ctx)
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompBook,
		config.LogKeyAdded, added,
		config.LogKeySkipped, skipped)
	return added, skipped
}

// Filtered returns a snapshot copy of the current filtered view for
// rendering.
func (b *Book) Filtered() []Contact {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return copyContacts(b.filtered)
}

// All returns a snapshot copy of the full collection in insertion order.
func (b *Book) All() []Contact {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return copyContacts(b.contacts)
}

// Count returns the size of the full collection, not the filtered view.
func (b *Book) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.contacts)
}

// persistLocked serializes the authoritative list (never the filtered view)
// into the snapshot slot. A failure is logged and forwarded to the
// notification hook; the in-memory state stands.
func (b *Book) persistLocked(ctx context.Context) {
	data, err := json.Marshal(b.contacts)
	if err == nil {
		err = b.store.Save(ctx, data)
	}
	if err == nil {
		return
	}

	slog.Warn(config.MsgPersistFailed,
		config.LogKeyComponent, config.CompBook,
		config.LogKeyError, err)
	if b.OnStorageError != nil {
		b.OnStorageError(fmt.Errorf("%s: %w", config.ErrSnapshotWrite, err))
	}
}

func copyContacts(src []Contact) []Contact {
	dst := make([]Contact, len(src))
	copy(dst, src)
	return dst
}
