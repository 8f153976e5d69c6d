package player

import "sync"

// Manager hands out one Player per guild, creating it on first use. Each
// player owns its queue and timers exclusively.
type Manager struct {
	mu      sync.Mutex
	players map[string]*Player
}

func NewManager() *Manager {
	return &Manager{players: make(map[string]*Player)}
}

// Get returns the guild's player, calling build to create it the first time.
func (m *Manager) Get(guildID string, build func() *Player) *Player {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[guildID]
	if !ok {
		p = build()
		m.players[guildID] = p
	}
	return p
}
