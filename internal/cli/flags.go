package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/deptlens/internal/domain"
)

// enumFlag is a pflag.Value restricted to a fixed set of string values.
// Matching is case-insensitive; the stored value keeps its canonical case.
type enumFlag[T ~string] struct {
	value    *T
	allowed  []T
	allowAll bool
}

func newEnumFlag[T ~string](value *T, allowed []T, allowAll bool) *enumFlag[T] {
	return &enumFlag[T]{value: value, allowed: allowed, allowAll: allowAll}
}

func (f *enumFlag[T]) String() string {
	if f.value == nil {
		return ""
	}
	return string(*f.value)
}

func (f *enumFlag[T]) Set(s string) error {
	s = strings.TrimSpace(s)
	if f.allowAll && strings.EqualFold(s, domain.All) {
		*f.value = T(domain.All)
		return nil
	}
	for _, v := range f.allowed {
		if strings.EqualFold(s, string(v)) {
			*f.value = v
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s", f.choices())
}

func (f *enumFlag[T]) Type() string { return "string" }

func (f *enumFlag[T]) choices() string {
	names := make([]string, 0, len(f.allowed)+1)
	if f.allowAll {
		names = append(names, domain.All)
	}
	for _, v := range f.allowed {
		names = append(names, string(v))
	}
	return strings.Join(names, ", ")
}
