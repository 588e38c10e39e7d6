// File: internal/services/doctor/registry.go
package doctor

import (
	"sync/atomic"

	"github.com/iyunix/go-medisen/internal/domain"
)

// Registry is the shared doctor list. It may start empty and be swapped
// once the directory answers; readers always see a complete list.
type Registry struct {
	doctors atomic.Pointer[[]domain.Doctor]
}

func NewRegistry(doctors []domain.Doctor) *Registry {
	r := &Registry{}
	r.Set(doctors)
	return r
}

// Doctors returns the current list. Callers must not modify it.
func (r *Registry) Doctors() []domain.Doctor {
	if p := r.doctors.Load(); p != nil {
		return *p
	}
	return nil
}

// Set replaces the list with a private copy of doctors.
func (r *Registry) Set(doctors []domain.Doctor) {
	cp := append([]domain.Doctor{}, doctors...)
	r.doctors.Store(&cp)
}

// Lookup finds a doctor by exact name.
func (r *Registry) Lookup(name string) (domain.Doctor, bool) {
	for _, d := range r.Doctors() {
		if d.Name == name {
			return d, true
		}
	}
	return domain.Doctor{}, false
}
