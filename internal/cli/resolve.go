package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/deptlens/internal/analytics"
	"github.com/alexanderramin/deptlens/internal/dashboard"
	"github.com/alexanderramin/deptlens/internal/domain"
)

// resolveFaculty accepts "all", a numeric id, a full name or a unique
// case-insensitive name fragment.
func resolveFaculty(ds *domain.Dataset, input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, domain.All) {
		return analytics.AllFaculty, nil
	}

	// 1. Numeric id
	if id, err := strconv.Atoi(input); err == nil {
		if _, ok := ds.FacultyByID(id); !ok {
			return 0, fmt.Errorf("%w: %d", dashboard.ErrUnknownFaculty, id)
		}
		return id, nil
	}

	// 2. Exact name (case-insensitive)
	for _, f := range ds.Faculty {
		if strings.EqualFold(f.Name, input) {
			return f.ID, nil
		}
	}

	// 3. Name fragment
	needle := strings.ToLower(input)
	var matches []domain.Faculty
	for _, f := range ds.Faculty {
		if strings.Contains(strings.ToLower(f.Name), needle) {
			matches = append(matches, f)
		}
	}

	switch len(matches) {
	case 0:
		return 0, fmt.Errorf("%w: %q", dashboard.ErrUnknownFaculty, input)
	case 1:
		return matches[0].ID, nil
	default:
		names := make([]string, len(matches))
		for i, f := range matches {
			names[i] = f.Name
		}
		return 0, fmt.Errorf("faculty %q is ambiguous (%s)", input, strings.Join(names, ", "))
	}
}

// parseRupees reads an amount such as "45000", "₹45,000" or "12.5L".
func parseRupees(s string) (float64, error) {
	raw := s
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	mult := 1.0
	if n := len(s); n > 0 && (s[n-1] == 'L' || s[n-1] == 'l') {
		mult = 100000
		s = strings.TrimSpace(s[:n-1])
	}

	v, err := strconv.ParseFloat(s, 64)
	v *= mult
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	return v, nil
}
