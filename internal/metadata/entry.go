package metadata

// Person is a named contributor with a role (author, mentor, ...).
type Person struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Entry groups the descriptive metadata of one repository record with
// the documents processed for it and the visuals extracted from them.
// The bibliographic fields mirror what the companion metadata file
// provides; only the subset the outputs need is modeled.
type Entry struct {
	EntryID        string     `json:"entry_id"`
	Title          string     `json:"title,omitempty"`
	Abstract       string     `json:"abstract,omitempty"`
	Persons        []Person   `json:"persons,omitempty"`
	Faculty        string     `json:"faculty,omitempty"`
	Department     string     `json:"department,omitempty"`
	SubmissionDate string     `json:"submission_date,omitempty"`
	ThesisType     string     `json:"thesis_type,omitempty"`
	Subjects       []string   `json:"subjects,omitempty"`
	Languages      []string   `json:"languages,omitempty"`
	Copyright      string     `json:"copyright,omitempty"`
	WebURL         string     `json:"web_url,omitempty"`
	Documents      []Document `json:"documents,omitempty"`
	TotalVisuals   int        `json:"total_visuals"`
	Visuals        []*Visual  `json:"visuals,omitempty"`
}

// NewEntry creates an empty entry for the given record id.
func NewEntry(entryID string) *Entry {
	return &Entry{EntryID: entryID}
}

// AddDocument attaches a source document to the entry.
func (e *Entry) AddDocument(doc Document) {
	e.Documents = append(e.Documents, doc)
}

// AddVisual attaches an extracted visual and keeps the total in sync.
func (e *Entry) AddVisual(v *Visual) {
	e.Visuals = append(e.Visuals, v)
	e.TotalVisuals = len(e.Visuals)
}

// SetWebURL records the resolver URL for the entry, built from the
// repository base URL and the entry's identifier.
func (e *Entry) SetWebURL(baseURL string) {
	e.WebURL = baseURL + e.EntryID
}
