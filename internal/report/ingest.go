package report

import (
	"sort"

	"github.com/matemagica/matemagica/internal/export"
)

// NamedDocument pairs raw export JSON with the name it arrived under, so
// rejections can say which file was bad.
type NamedDocument struct {
	Name string
	Raw  []byte
}

// Rejection reports one document that failed validation.
type Rejection struct {
	Name string
	Err  error
}

// Corpus is the validated set of learner documents a teacher has imported,
// keyed by profile so re-imports replace rather than duplicate.
type Corpus struct {
	byProfile map[string]*export.Document
}

// NewCorpus returns an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{byProfile: make(map[string]*export.Document)}
}

// Add puts an already-validated document into the corpus, replacing any
// earlier import for the same profile.
func (c *Corpus) Add(doc *export.Document) {
	c.byProfile[doc.ProfileID] = doc
}

// Ingest validates a batch of raw documents. Each document stands alone: a
// bad one is recorded as a rejection and the rest still land. The returned
// count is the number accepted in this call.
func (c *Corpus) Ingest(batch []NamedDocument) (int, []Rejection) {
	var rejections []Rejection
	accepted := 0
	for _, nd := range batch {
		doc, err := export.Validate(nd.Raw)
		if err != nil {
			rejections = append(rejections, Rejection{Name: nd.Name, Err: err})
			continue
		}
		c.Add(doc)
		accepted++
	}
	return accepted, rejections
}

// Len is the number of learners in the corpus.
func (c *Corpus) Len() int {
	return len(c.byProfile)
}

// Class returns the documents for one school and class group, ordered by
// student first name then profile ID so output is stable.
func (c *Corpus) Class(school, classGroup string) []*export.Document {
	var docs []*export.Document
	for _, doc := range c.byProfile {
		if doc.School.Name == school && doc.Student.ClassGroup == classGroup {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Student.FirstName != docs[j].Student.FirstName {
			return docs[i].Student.FirstName < docs[j].Student.FirstName
		}
		return docs[i].ProfileID < docs[j].ProfileID
	})
	return docs
}

// Classes lists the school/class pairs present in the corpus, sorted.
func (c *Corpus) Classes() [][2]string {
	seen := make(map[[2]string]bool)
	for _, doc := range c.byProfile {
		seen[[2]string{doc.School.Name, doc.Student.ClassGroup}] = true
	}
	out := make([][2]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}
