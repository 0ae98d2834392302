package importer

import (
	"slices"

	"github.com/alexanderramin/deptlens/internal/domain"
)

// Convert transforms a validated Schema into an immutable dataset.
// Call ValidateSchema first; Convert assumes the schema is valid.
func Convert(schema *Schema) *domain.Dataset {
	ds := &domain.Dataset{
		Faculty:      make([]domain.Faculty, 0, len(schema.Faculty)),
		Publications: make([]domain.Publication, 0, len(schema.Publications)),
		Projects:     make([]domain.Project, 0, len(schema.Projects)),
		Patents:      make([]domain.Patent, 0, len(schema.Patents)),
		Events:       make([]domain.Event, 0, len(schema.Events)),
	}

	for _, f := range schema.Faculty {
		ds.Faculty = append(ds.Faculty, domain.Faculty{ID: f.ID, Name: f.Name})
	}
	for _, p := range schema.Publications {
		ds.Publications = append(ds.Publications, domain.Publication{
			Year:       p.Year,
			FacultyIDs: slices.Clone(p.FacultyIDs),
			Count:      p.Count,
			Type:       domain.PublicationType(p.Type),
			Indexing:   domain.Indexing(p.Indexing),
		})
	}
	for _, p := range schema.Projects {
		ds.Projects = append(ds.Projects, domain.Project{
			ID:         p.ID,
			Year:       p.Year,
			FacultyIDs: slices.Clone(p.FacultyIDs),
			Status:     domain.ProjectStatus(p.Status),
			Funding:    p.Funding,
		})
	}
	for _, p := range schema.Patents {
		ds.Patents = append(ds.Patents, domain.Patent{
			ID:         p.ID,
			Year:       p.Year,
			FacultyIDs: slices.Clone(p.FacultyIDs),
			Status:     domain.PatentStatus(p.Status),
		})
	}
	for _, e := range schema.Events {
		ds.Events = append(ds.Events, domain.Event{
			Year:       e.Year,
			FacultyIDs: slices.Clone(e.FacultyIDs),
			Count:      e.Count,
			Type:       domain.EventType(e.Type),
		})
	}
	return ds
}

// FromDataset is the inverse of Convert, used when exporting a dataset.
func FromDataset(ds *domain.Dataset) *Schema {
	schema := &Schema{}
	for _, f := range ds.Faculty {
		schema.Faculty = append(schema.Faculty, FacultyImport{ID: f.ID, Name: f.Name})
	}
	for _, p := range ds.Publications {
		schema.Publications = append(schema.Publications, PublicationImport{
			Year: p.Year, FacultyIDs: slices.Clone(p.FacultyIDs), Count: p.Count,
			Type: string(p.Type), Indexing: string(p.Indexing),
		})
	}
	for _, p := range ds.Projects {
		schema.Projects = append(schema.Projects, ProjectImport{
			ID: p.ID, Year: p.Year, FacultyIDs: slices.Clone(p.FacultyIDs),
			Status: string(p.Status), Funding: p.Funding,
		})
	}
	for _, p := range ds.Patents {
		schema.Patents = append(schema.Patents, PatentImport{
			ID: p.ID, Year: p.Year, FacultyIDs: slices.Clone(p.FacultyIDs), Status: string(p.Status),
		})
	}
	for _, e := range ds.Events {
		schema.Events = append(schema.Events, EventImport{
			Year: e.Year, FacultyIDs: slices.Clone(e.FacultyIDs), Count: e.Count, Type: string(e.Type),
		})
	}
	return schema
}

// Load parses, validates and converts a dataset document in one step.
func Load(data []byte) (*domain.Dataset, error) {
	schema, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := Join(ValidateSchema(schema)); err != nil {
		return nil, err
	}
	return Convert(schema), nil
}

// LoadDatasetFile is Load for a file on disk.
func LoadDatasetFile(path string) (*domain.Dataset, error) {
	schema, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := Join(ValidateSchema(schema)); err != nil {
		return nil, err
	}
	return Convert(schema), nil
}
