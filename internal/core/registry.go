package core

import "sync"

// Registry maps client identifiers to their live connections.
type Registry struct {
	mu      sync.RWMutex
	clients map[ClientID]*Client
}

// NewRegistry returns an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[ClientID]*Client)}
}

// Register binds id to c, replacing any previous binding.
func (r *Registry) Register(id ClientID, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[id] = c
}

// Lookup returns the connection bound to id.
func (r *Registry) Lookup(id ClientID) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	return c, ok
}

// Unregister drops the binding for id. Unknown ids are ignored.
func (r *Registry) Unregister(id ClientID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

// Len returns the number of live connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
