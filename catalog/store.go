package catalog

import (
	"context"
	"slices"
	"sync"
)

// Store is the cache backing a Catalog. The server list and each server's
// tool list are independent entries: a miss on one never invalidates the
// other. Implementations must treat backend failures as cache misses so a
// broken cache degrades to re-fetching from the daemon.
type Store interface {
	// Servers returns the cached server list, reporting whether one is cached.
	Servers(ctx context.Context) ([]string, bool)
	SetServers(ctx context.Context, names []string)

	// Tools returns a server's cached tool schemas, reporting whether they are cached.
	Tools(ctx context.Context, server string) ([]Tool, bool)
	SetTools(ctx context.Context, server string, tools []Tool)

	// Reset drops all cached entries.
	Reset(ctx context.Context)
}

type inMemory struct {
	mu            sync.RWMutex
	servers       []string
	serversCached bool
	tools         map[string][]Tool
}

// NewMemoryStore returns an in-process Store.
func NewMemoryStore() Store {
	return &inMemory{}
}

func (m *inMemory) Servers(ctx context.Context) ([]string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.serversCached {
		return nil, false
	}
	return slices.Clone(m.servers), true
}

func (m *inMemory) SetServers(ctx context.Context, names []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.servers = slices.Clone(names)
	m.serversCached = true
}

func (m *inMemory) Tools(ctx context.Context, server string) ([]Tool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.tools == nil {
		return nil, false
	}
	tools, ok := m.tools[server]
	return tools, ok
}

func (m *inMemory) SetTools(ctx context.Context, server string, tools []Tool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tools == nil {
		// create on first use
		m.tools = make(map[string][]Tool)
	}
	m.tools[server] = tools
}

func (m *inMemory) Reset(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.servers = nil
	m.serversCached = false
	m.tools = nil
}
