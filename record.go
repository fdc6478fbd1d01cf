package repometa

import "strings"

// Sentinel marks a record field whose value could not be extracted.
const Sentinel = "-"

// Record is the normalized metadata extracted from one repository page.
// All four fields are always set; Sentinel stands in for missing values.
type Record struct {
	Acronym         string `json:"acronym"`
	InstitutionName string `json:"institutionName"`
	ProgramName     string `json:"programName"`
	PDFLink         string `json:"pdfLink"`
}

// EmptyRecord returns a record with every field set to Sentinel.
func EmptyRecord() Record {
	return Record{
		Acronym:         Sentinel,
		InstitutionName: Sentinel,
		ProgramName:     Sentinel,
		PDFLink:         Sentinel,
	}
}

// Normalize returns a copy of r with surrounding whitespace trimmed and
// blank fields replaced by Sentinel.
func (r Record) Normalize() Record {
	return Record{
		Acronym:         orSentinel(r.Acronym),
		InstitutionName: orSentinel(r.InstitutionName),
		ProgramName:     orSentinel(r.ProgramName),
		PDFLink:         orSentinel(r.PDFLink),
	}
}

// Missing returns the names of fields that hold Sentinel.
func (r Record) Missing() []string {
	var missing []string
	if r.Acronym == Sentinel {
		missing = append(missing, "acronym")
	}
	if r.InstitutionName == Sentinel {
		missing = append(missing, "institution_name")
	}
	if r.ProgramName == Sentinel {
		missing = append(missing, "program_name")
	}
	if r.PDFLink == Sentinel {
		missing = append(missing, "pdf_link")
	}
	return missing
}

// IsFound reports whether v holds an extracted value rather than Sentinel.
func IsFound(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != Sentinel
}

func orSentinel(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return Sentinel
	}
	return v
}

// Identity is the institution a strategy is bound to.
// The zero value means the institution has not been identified.
type Identity struct {
	Acronym string `json:"acronym" yaml:"acronym"`
	Name    string `json:"name" yaml:"name"`
}

// IsZero reports whether the identity is unbound.
func (i Identity) IsZero() bool {
	return strings.TrimSpace(i.Acronym) == "" && strings.TrimSpace(i.Name) == ""
}

// Merge returns i with blank fields filled in from other.
func (i Identity) Merge(other Identity) Identity {
	if strings.TrimSpace(i.Acronym) == "" {
		i.Acronym = other.Acronym
	}
	if strings.TrimSpace(i.Name) == "" {
		i.Name = other.Name
	}
	return i
}
