package export

import "fmt"

// Section is one titled table inside a report.
type Section struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Report groups sections under a single title.
type Report struct {
	Title    string
	Sections []Section
}

// Renderer turns a report into a downloadable document.
type Renderer interface {
	Render(Report) ([]byte, error)
	ContentType() string
	Extension() string
}

func (r Report) validate() error {
	if len(r.Sections) == 0 {
		return fmt.Errorf("report requires at least one section")
	}
	for _, section := range r.Sections {
		if len(section.Headers) == 0 {
			return fmt.Errorf("section %q requires at least one header", section.Title)
		}
	}
	return nil
}

// cell returns the value at index i or an empty string for short rows.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
