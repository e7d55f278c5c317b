package config

// License identifies a license text that can be displayed.
type License int

const (
	// ThisSoftware is the license of stew itself.
	ThisSoftware License = iota
	// Dependencies covers the licenses of the libraries stew is built from.
	Dependencies
)

func (l License) String() string {
	switch l {
	case ThisSoftware:
		return "this-software"
	case Dependencies:
		return "dependencies"
	default:
		return "unknown"
	}
}

// SelectLicenses maps the two license flags to the ordered display targets.
// The flags are independent; both may be set.
func SelectLicenses(self, deps bool) []License {
	selected := make([]License, 0, 2)
	if self {
		selected = append(selected, ThisSoftware)
	}
	if deps {
		selected = append(selected, Dependencies)
	}
	return selected
}
