package fakeapi

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// Resource names as they appear in the URL.
const (
	Areas                = "areas"
	Clientes             = "clientes"
	Tecnicos             = "tecnicos"
	TecnicoAreas         = "tecnico-areas"
	Usuarios             = "usuarios"
	Pedidos              = "pedidos"
	PedidoCandidatos     = "pedido-candidatos"
	PedidoDisponibilidad = "pedido-disponibilidad"
	Facturas             = "facturas"
)

// Resources lists every table the server exposes.
var Resources = []string{Areas, Clientes, Tecnicos, TecnicoAreas, Usuarios, Pedidos, PedidoCandidatos, PedidoDisponibilidad, Facturas}

var (
	ErrUnknownResource = errors.New("unknown resource")
	ErrRecordNotFound  = errors.New("record not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// Record is one JSON object of a table. Numbers decoded from requests are
// float64; ids assigned by the store are int64.
type Record map[string]any

// cascades lists the child tables removed with a parent, keyed by parent
// table, as child table and foreign key field.
var cascades = map[string][][2]string{
	Pedidos:  {{PedidoCandidatos, "pedidoId"}, {PedidoDisponibilidad, "pedidoId"}},
	Usuarios: {{Clientes, "usuarioId"}, {Tecnicos, "usuarioId"}},
	Tecnicos: {{TecnicoAreas, "tecnicoId"}, {Facturas, "tecnicoId"}},
	Areas:    {{TecnicoAreas, "areaId"}},
}

type credential struct {
	usuarioID int64
	hash      []byte
}

// Store is the in-memory state of the fake API. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	now    func() time.Time
	next   map[string]int64
	tables map[string]map[int64]Record
	creds  map[string]credential // by lower-cased email
}

func NewStore() *Store {
	s := &Store{
		now:    func() time.Time { return time.Now().UTC() },
		next:   make(map[string]int64),
		tables: make(map[string]map[int64]Record),
		creds:  make(map[string]credential),
	}
	for _, r := range Resources {
		s.tables[r] = make(map[int64]Record)
	}
	return s
}

func (s *Store) table(resource string) (map[int64]Record, error) {
	t, ok := s.tables[resource]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}
	return t, nil
}

// matches compares every filter value with the record field printed as text.
func matches(r Record, filter url.Values) bool {
	for k, vs := range filter {
		v, ok := r[k]
		if !ok || v == nil || len(vs) == 0 || fmt.Sprint(v) != vs[0] {
			return false
		}
	}
	return true
}

func clone(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// List returns the records matching filter ordered by id.
func (s *Store) List(resource string, filter url.Values) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.table(resource)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(t))
	for id, r := range t {
		if matches(r, filter) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, clone(t[id]))
	}
	return out, nil
}

func (s *Store) Get(resource string, id int64) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.table(resource)
	if err != nil {
		return nil, err
	}
	r, ok := t[id]
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", resource, id, ErrRecordNotFound)
	}
	return clone(r), nil
}

// Create stores r under a new id. Pedidos get fechaCreacion when missing.
func (s *Store) Create(resource string, r Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(resource, r)
}

func (s *Store) create(resource string, r Record) (Record, error) {
	t, err := s.table(resource)
	if err != nil {
		return nil, err
	}
	s.next[resource]++
	rec := clone(r)
	rec["id"] = s.next[resource]
	if resource == Pedidos && rec["fechaCreacion"] == nil {
		rec["fechaCreacion"] = s.now().Format(time.RFC3339)
	}
	t[s.next[resource]] = rec
	return clone(rec), nil
}

// Update merges the fields of patch into the record; the id never changes.
func (s *Store) Update(resource string, id int64, patch Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.table(resource)
	if err != nil {
		return nil, err
	}
	r, ok := t[id]
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", resource, id, ErrRecordNotFound)
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		r[k] = v
	}
	return clone(r), nil
}

// Delete removes the record and, recursively, the records that reference it.
func (s *Store) Delete(resource string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.table(resource)
	if err != nil {
		return err
	}
	if _, ok := t[id]; !ok {
		return fmt.Errorf("%s %d: %w", resource, id, ErrRecordNotFound)
	}
	s.delete(resource, id)
	return nil
}

func (s *Store) delete(resource string, id int64) {
	delete(s.tables[resource], id)
	if resource == Usuarios {
		for email, c := range s.creds {
			if c.usuarioID == id {
				delete(s.creds, email)
			}
		}
	}
	key := fmt.Sprint(id)
	for _, c := range cascades[resource] {
		child, field := c[0], c[1]
		for cid, r := range s.tables[child] {
			if fmt.Sprint(r[field]) == key {
				s.delete(child, cid)
			}
		}
	}
}

// Register creates the usuario with its cliente or tecnico record and
// remembers the password hash.
func (s *Store) Register(usuario Record, hash []byte) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(fmt.Sprint(usuario["email"]))
	if _, ok := s.creds[email]; ok {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
	}
	u, err := s.create(Usuarios, usuario)
	if err != nil {
		return nil, err
	}
	id := u["id"].(int64)
	switch u["rol"] {
	case "cliente":
		_, err = s.create(Clientes, Record{"usuarioId": id})
	case "tecnico":
		_, err = s.create(Tecnicos, Record{"usuarioId": id})
	}
	if err != nil {
		return nil, err
	}
	s.creds[email] = credential{usuarioID: id, hash: hash}
	return u, nil
}

// Credential returns the usuario and password hash registered for email.
func (s *Store) Credential(email string) (Record, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.creds[strings.ToLower(email)]
	if !ok {
		return nil, nil, fmt.Errorf("credential %s: %w", email, ErrRecordNotFound)
	}
	u, ok := s.tables[Usuarios][c.usuarioID]
	if !ok {
		return nil, nil, fmt.Errorf("usuario %d: %w", c.usuarioID, ErrRecordNotFound)
	}
	return clone(u), c.hash, nil
}
