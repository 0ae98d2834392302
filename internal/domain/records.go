package domain

type Faculty struct {
	ID   int
	Name string
}

type Publication struct {
	Year       int
	FacultyIDs []int
	Count      int
	Type       PublicationType
	Indexing   Indexing
}

type Project struct {
	ID         int
	Year       int
	FacultyIDs []int
	Status     ProjectStatus
	Funding    float64
}

type Patent struct {
	ID         int
	Year       int
	FacultyIDs []int
	Status     PatentStatus
}

type Event struct {
	Year       int
	FacultyIDs []int
	Count      int
	Type       EventType
}

// HasFaculty reports whether id is among ids.
func HasFaculty(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
