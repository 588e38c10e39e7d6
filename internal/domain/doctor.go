// File: internal/domain/doctor.go
package domain

// Doctor is immutable reference data loaded once from the directory.
type Doctor struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	City      string `json:"city"`
	Contact   string `json:"contact"`
}
