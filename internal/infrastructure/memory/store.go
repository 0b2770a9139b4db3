// Package memory implementa los repositorios sobre estructuras en memoria.
// Es el motor por defecto en desarrollo y tests; no persiste entre reinicios.
package memory

import (
	"sync"

	"github.com/kombaos/inventario-api/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
// mu protege los mapas; materialLocks serializa las escrituras de cada material (TxRunner).
type Store struct {
	mu         sync.RWMutex
	materials  map[string]*entity.Material
	materialIx []string // orden de inserción
	products   map[string]*entity.Product
	productIx  []string
	movements  []*entity.InventoryMovement // orden de inserción = orden del libro
	thresholds map[string]*entity.MaterialStockThreshold

	locksMu       sync.Mutex
	materialLocks map[string]*materialLock
}

// materialLock mutex de escritura con contador de usuarios; se descarta al llegar a cero.
type materialLock struct {
	mu   sync.Mutex
	refs int
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		materials:     make(map[string]*entity.Material),
		products:      make(map[string]*entity.Product),
		thresholds:    make(map[string]*entity.MaterialStockThreshold),
		materialLocks: make(map[string]*materialLock),
	}
}

// lockMaterial toma el mutex de escritura de un material (creado bajo demanda).
// La entrada vive solo mientras alguien la usa o espera por ella, así ids
// inexistentes o materiales borrados no dejan rastro en el mapa.
func (s *Store) lockMaterial(materialID string) *materialLock {
	s.locksMu.Lock()
	l, ok := s.materialLocks[materialID]
	if !ok {
		l = &materialLock{}
		s.materialLocks[materialID] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return l
}

// unlockMaterial libera el mutex y elimina la entrada si nadie más la usa.
func (s *Store) unlockMaterial(materialID string, l *materialLock) {
	l.mu.Unlock()
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(s.materialLocks, materialID)
	}
}

// pendingLocks cantidad de materiales con el mutex tomado o en espera.
func (s *Store) pendingLocks() int {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	return len(s.materialLocks)
}

func removeID(ix []string, id string) []string {
	for i, v := range ix {
		if v == id {
			return append(ix[:i], ix[i+1:]...)
		}
	}
	return ix
}

func copyMaterial(m *entity.Material) *entity.Material {
	c := *m
	if m.CostCents != nil {
		v := *m.CostCents
		c.CostCents = &v
	}
	if m.Currency != nil {
		v := *m.Currency
		c.Currency = &v
	}
	return &c
}

func copyMovement(m *entity.InventoryMovement) *entity.InventoryMovement {
	c := *m
	return &c
}
