package persistence

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password does not match")
	ErrVolunteerExists    = errors.New("volunteer already registered")
)

// User is an account that can log in.
type User struct {
	ID           int
	Cedula       string
	Nombre       string
	Correo       string
	PasswordHash []byte
}

// Situation is an incident reported by a user.
type Situation struct {
	ID          string    `json:"id"`
	UserID      int       `json:"user_id"`
	Titulo      string    `json:"titulo"`
	Descripcion string    `json:"descripcion"`
	Lat         string    `json:"lat"`
	Lng         string    `json:"lng"`
	Estado      string    `json:"estado"`
	Fecha       time.Time `json:"fecha"`
}

// Volunteer is a stored volunteer application.
type Volunteer struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Cedula    string    `json:"cedula"`
	Correo    string    `json:"correo"`
	Telefono  string    `json:"telefono"`
	Direccion string    `json:"direccion"`
	Fecha     time.Time `json:"fecha"`
}

// MemoryStore holds the mock backend's accounts, reports and catalogue.
type MemoryStore struct {
	mu         sync.RWMutex
	nextUserID int
	users      map[string]*User // by cedula
	situations []Situation
	volunteers map[string]Volunteer // by cedula
	catalog    map[string][]map[string]interface{}
	about      map[string]interface{}
	history    string
	hashCost   int
}

// NewMemoryStore creates a store preloaded with the public catalogue.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextUserID: 1,
		users:      make(map[string]*User),
		volunteers: make(map[string]Volunteer),
		catalog:    seedCatalog(),
		about:      seedAbout(),
		history:    seedHistory,
		hashCost:   bcrypt.DefaultCost,
	}
}

// SetHashCost lowers the bcrypt cost, for tests.
func (s *MemoryStore) SetHashCost(cost int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashCost = cost
}

// CreateUser adds an account and returns its id.
func (s *MemoryStore) CreateUser(cedula, clave, nombre, correo string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte(clave), s.hashCost)
	if err != nil {
		return 0, err
	}
	id := s.nextUserID
	s.nextUserID++
	s.users[cedula] = &User{ID: id, Cedula: cedula, Nombre: nombre, Correo: correo, PasswordHash: hash}
	return id, nil
}

// Authenticate checks cedula and clave.
func (s *MemoryStore) Authenticate(cedula, clave string) (User, error) {
	s.mu.RLock()
	user, ok := s.users[cedula]
	s.mu.RUnlock()
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(clave)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return *user, nil
}

// ChangePassword replaces the password of userID after checking the old one.
func (s *MemoryStore) ChangePassword(userID int, oldClave, newClave string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.userByID(userID)
	if user == nil {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(oldClave)); err != nil {
		return ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newClave), s.hashCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return nil
}

// HasEmail reports whether any account uses correo.
func (s *MemoryStore) HasEmail(correo string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Correo, correo) {
			return true
		}
	}
	return false
}

func (s *MemoryStore) userByID(id int) *User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// AddVolunteer stores an application; one per cedula.
func (s *MemoryStore) AddVolunteer(v Volunteer) (Volunteer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.volunteers[v.Cedula]; exists {
		return Volunteer{}, ErrVolunteerExists
	}
	v.ID = uuid.NewString()
	v.Fecha = time.Now().UTC()
	s.volunteers[v.Cedula] = v
	return v, nil
}

// AddSituation stores a report as pending.
func (s *MemoryStore) AddSituation(sit Situation) Situation {
	s.mu.Lock()
	defer s.mu.Unlock()

	sit.ID = uuid.NewString()
	sit.Estado = "pendiente"
	sit.Fecha = time.Now().UTC()
	s.situations = append(s.situations, sit)
	return sit
}

// Situations returns every report, newest first.
func (s *MemoryStore) Situations() []Situation {
	return s.filterSituations(func(Situation) bool { return true })
}

// SituationsByUser returns the reports of userID, newest first.
func (s *MemoryStore) SituationsByUser(userID int) []Situation {
	return s.filterSituations(func(sit Situation) bool { return sit.UserID == userID })
}

func (s *MemoryStore) filterSituations(keep func(Situation) bool) []Situation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Situation, 0, len(s.situations))
	for _, sit := range s.situations {
		if keep(sit) {
			out = append(out, sit)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return out
}

// Catalog returns the public records stored under name.
func (s *MemoryStore) Catalog(name string) []map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog[name]
}

// About returns the institution's mission and vision.
func (s *MemoryStore) About() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.about
}

// History returns the institution's history text.
func (s *MemoryStore) History() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history
}
