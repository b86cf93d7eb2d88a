package syncqueue

import "sync"

// Aliases remembers which server id replaced a temporary id, so jobs queued against the temp id
// reach the right resource once the create has been reconciled.
type Aliases struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewAliases() *Aliases {
	return &Aliases{m: make(map[string]string)}
}

func (a *Aliases) Set(tempID, serverID string) {
	a.mu.Lock()
	a.m[tempID] = serverID
	a.mu.Unlock()
}

// Resolve follows the alias chain; unknown ids resolve to themselves.
func (a *Aliases) Resolve(id string) string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for i := 0; i < 8; i++ {
		next, ok := a.m[id]
		if !ok || next == id {
			return id
		}
		id = next
	}
	return id
}
