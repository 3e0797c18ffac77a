// Package roster loads simulated patients from YAML.
//
// A roster file lists patients with their demographics, the clinical
// pattern being simulated and latent thresholds per ear:
//
//	patients:
//	  - id: 1
//	    name: "John Smith"
//	    pattern: "Noise-induced hearing loss, worse in right ear"
//	    thresholds:
//	      left: {250: 15, 500: 20, 1000: 25}
//	      right: {250: 20, 500: 25, 1000: 35}
//
// Frequencies missing from a patient are answered with the response
// model's fallback threshold. [Default] returns the built-in roster.
package roster

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sky-flux/audiometry"
	"gopkg.in/yaml.v3"
)

//go:embed patients.yaml
var defaultPatients []byte

var (
	// ErrPatientNotFound is returned when no patient has the requested ID.
	ErrPatientNotFound = errors.New("roster: patient not found")

	// ErrInvalidRoster is returned when a roster file fails validation.
	ErrInvalidRoster = errors.New("roster: invalid roster")
)

type patientYAML struct {
	ID         int    `yaml:"id"`
	Name       string `yaml:"name"`
	Age        int    `yaml:"age"`
	Gender     string `yaml:"gender"`
	Occupation string `yaml:"occupation"`
	Notes      string `yaml:"notes"`
	Pattern    string `yaml:"pattern"`
	Thresholds struct {
		Left  map[int]int `yaml:"left"`
		Right map[int]int `yaml:"right"`
	} `yaml:"thresholds"`
}

type rosterYAML struct {
	Patients []patientYAML `yaml:"patients"`
}

// Roster is an in-memory patient repository. It implements
// audiometry.ProfileRepository.
type Roster struct {
	patients []*audiometry.Profile
	byID     map[int]*audiometry.Profile
}

var _ audiometry.ProfileRepository = (*Roster)(nil)

// Default returns the built-in roster of twelve patients.
func Default() (*Roster, error) {
	return LoadFromReader(bytes.NewReader(defaultPatients))
}

// Load reads the roster file at path.
func Load(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("roster: open %q: %w", path, err)
	}
	defer f.Close()

	r, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("roster: parse %q: %w", path, err)
	}
	return r, nil
}

// LoadFromReader decodes and validates a YAML roster from r.
func LoadFromReader(r io.Reader) (*Roster, error) {
	var doc rosterYAML
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("roster: decode yaml: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	out := &Roster{byID: make(map[int]*audiometry.Profile, len(doc.Patients))}
	for _, p := range doc.Patients {
		prof := p.profile()
		out.patients = append(out.patients, prof)
		out.byID[prof.ID] = prof
	}
	return out, nil
}

// validate returns a joined error listing every problem in the roster.
func validate(doc rosterYAML) error {
	var errs []error
	if len(doc.Patients) == 0 {
		errs = append(errs, errors.New("no patients"))
	}
	seen := make(map[int]int, len(doc.Patients))
	for i, p := range doc.Patients {
		prefix := fmt.Sprintf("patients[%d]", i)
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if prev, ok := seen[p.ID]; ok {
			errs = append(errs, fmt.Errorf("%s.id %d is a duplicate of patients[%d]", prefix, p.ID, prev))
		}
		seen[p.ID] = i
		for ear, levels := range map[string]map[int]int{"left": p.Thresholds.Left, "right": p.Thresholds.Right} {
			for f := range levels {
				if !audiometry.Frequency(f).IsValid() {
					errs = append(errs, fmt.Errorf("%s.thresholds.%s has unsupported frequency %d", prefix, ear, f))
				}
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRoster, errors.Join(errs...))
	}
	return nil
}

func (p patientYAML) profile() *audiometry.Profile {
	convert := func(levels map[int]int) map[audiometry.Frequency]int {
		out := make(map[audiometry.Frequency]int, len(levels))
		for f, v := range levels {
			out[audiometry.Frequency(f)] = v
		}
		return out
	}
	return &audiometry.Profile{
		ID:                 p.ID,
		Name:               p.Name,
		Age:                p.Age,
		Gender:             p.Gender,
		Occupation:         p.Occupation,
		Notes:              p.Notes,
		PatternDescription: p.Pattern,
		Thresholds: map[audiometry.Ear]map[audiometry.Frequency]int{
			audiometry.Left:  convert(p.Thresholds.Left),
			audiometry.Right: convert(p.Thresholds.Right),
		},
	}
}

// Profile returns a copy of the patient with the given ID.
func (r *Roster) Profile(id int) (*audiometry.Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrPatientNotFound, id)
	}
	return p.Clone(), nil
}

// Patients returns copies of all patients in file order.
func (r *Roster) Patients() []*audiometry.Profile {
	out := make([]*audiometry.Profile, len(r.patients))
	for i, p := range r.patients {
		out[i] = p.Clone()
	}
	return out
}

// Len returns the number of patients.
func (r *Roster) Len() int {
	return len(r.patients)
}
