package model

// Manager is a named user that can be assigned to cases
type Manager struct {
	Name       string
	Department string
	Password   string `masq:"secret"`
	Active     bool
}

// Copy returns a copy of the manager
func (m *Manager) Copy() *Manager {
	copied := *m
	return &copied
}
