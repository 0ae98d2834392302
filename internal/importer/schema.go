package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Schema is the top-level structure of a dataset file. JSON files are
// accepted as well since they are valid YAML.
type Schema struct {
	Faculty      []FacultyImport     `yaml:"faculty" json:"faculty" validate:"required,min=1,dive"`
	Publications []PublicationImport `yaml:"publications" json:"publications" validate:"dive"`
	Projects     []ProjectImport     `yaml:"projects" json:"projects" validate:"dive"`
	Patents      []PatentImport      `yaml:"patents" json:"patents" validate:"dive"`
	Events       []EventImport       `yaml:"events" json:"events" validate:"dive"`
}

// FacultyImport defines one faculty member.
type FacultyImport struct {
	ID   int    `yaml:"id" json:"id" validate:"required,min=1"`
	Name string `yaml:"name" json:"name" validate:"required,notblank"`
}

// PublicationImport defines a publication tally.
type PublicationImport struct {
	Year       int    `yaml:"year" json:"year" validate:"required,year"`
	FacultyIDs []int  `yaml:"faculty_ids" json:"faculty_ids" validate:"required,min=1,dive,min=1"`
	Count      int    `yaml:"count" json:"count" validate:"required,min=1"`
	Type       string `yaml:"type" json:"type" validate:"omitempty,oneof=journal conference book bookChapter"`
	Indexing   string `yaml:"indexing,omitempty" json:"indexing,omitempty" validate:"omitempty,oneof=sci scopus esci other"`
}

// ProjectImport defines a consultancy or research project.
type ProjectImport struct {
	ID         int     `yaml:"id" json:"id" validate:"required,min=1"`
	Year       int     `yaml:"year" json:"year" validate:"required,year"`
	FacultyIDs []int   `yaml:"faculty_ids" json:"faculty_ids" validate:"required,min=1,dive,min=1"`
	Status     string  `yaml:"status" json:"status" validate:"omitempty,oneof=ongoing completed"`
	Funding    float64 `yaml:"funding" json:"funding" validate:"min=0"`
}

// PatentImport defines a patent.
type PatentImport struct {
	ID         int    `yaml:"id" json:"id" validate:"required,min=1"`
	Year       int    `yaml:"year" json:"year" validate:"required,year"`
	FacultyIDs []int  `yaml:"faculty_ids" json:"faculty_ids" validate:"required,min=1,dive,min=1"`
	Status     string `yaml:"status" json:"status" validate:"omitempty,oneof=filed granted"`
}

// EventImport defines an organised event tally.
type EventImport struct {
	Year       int    `yaml:"year" json:"year" validate:"required,year"`
	FacultyIDs []int  `yaml:"faculty_ids" json:"faculty_ids" validate:"required,min=1,dive,min=1"`
	Count      int    `yaml:"count" json:"count" validate:"required,min=1"`
	Type       string `yaml:"type" json:"type" validate:"omitempty,oneof=conference stc workshop gian"`
}

// LoadFile reads and parses a dataset file.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML or JSON dataset document. Unknown keys are rejected.
func Parse(data []byte) (*Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var schema Schema
	if err := dec.Decode(&schema); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing dataset file: %w", ErrEmptyDataset)
		}
		return nil, fmt.Errorf("parsing dataset file: %w", err)
	}
	return &schema, nil
}
