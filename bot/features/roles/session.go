package roles

import (
	"fmt"
	"sync"
	"time"
)

// selectionTTL is how long a menu selection stays valid while the
// member decides whether to confirm.
const selectionTTL = 15 * time.Minute

// pendingSelection is a menu selection waiting for its confirm click.
type pendingSelection struct {
	roleIDs   []int64
	timestamp time.Time
}

// selectionStore keeps menu selections between the select event and
// the confirm click. The two arrive as separate interactions that
// share nothing but the message and the user, so entries are keyed by
// both.
type selectionStore struct {
	mu      sync.Mutex
	entries map[string]*pendingSelection
}

func newSelectionStore() *selectionStore {
	return &selectionStore{entries: make(map[string]*pendingSelection)}
}

func selectionKey(messageID, userID string) string {
	return fmt.Sprintf("%s:%s", messageID, userID)
}

// put stores a member's current selection for a panel message.
func (s *selectionStore) put(messageID, userID string, roleIDs []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[selectionKey(messageID, userID)] = &pendingSelection{
		roleIDs:   roleIDs,
		timestamp: time.Now(),
	}
}

// take removes and returns a member's stored selection. The second
// return reports whether one existed and was still fresh.
func (s *selectionStore) take(messageID, userID string) ([]int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := selectionKey(messageID, userID)
	entry, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	delete(s.entries, key)

	if time.Since(entry.timestamp) > selectionTTL {
		return nil, false
	}
	return entry.roleIDs, true
}

// cleanup removes selections older than the TTL.
func (s *selectionStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.entries {
		if now.Sub(entry.timestamp) > selectionTTL {
			delete(s.entries, key)
		}
	}
}
