package integrations

import (
	"fmt"
	"sync"
)

type RegistryInterface interface {
	Register(provider TextRecognizer) error
	Get(name string) (TextRecognizer, error)
	SetActive(name string) error
	GetActive() (TextRecognizer, error)
}

// Registry holds the available recognizers and the one currently in use.
type Registry struct {
	providers map[string]TextRecognizer
	active    string
	mu        sync.RWMutex
}

func NewRegistry() RegistryInterface {
	return &Registry{
		providers: make(map[string]TextRecognizer),
	}
}

func (r *Registry) Register(provider TextRecognizer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := provider.Name()
	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider %q is already registered", name)
	}
	r.providers[name] = provider
	return nil
}

func (r *Registry) Get(name string) (TextRecognizer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[name]
	if !exists {
		return nil, fmt.Errorf("provider %q not found", name)
	}
	return provider, nil
}

func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; !exists {
		return fmt.Errorf("cannot activate provider %q: not registered", name)
	}
	r.active = name
	return nil
}

func (r *Registry) GetActive() (TextRecognizer, error) {
	r.mu.RLock()
	activeName := r.active
	r.mu.RUnlock()

	if activeName == "" {
		return nil, fmt.Errorf("no active provider")
	}
	return r.Get(activeName)
}
