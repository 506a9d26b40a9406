package sections

// Field names, in the order every extractor checks them
const (
	History   = "History"
	WhyHow    = "Why & How"
	Layman    = "Layman Explanation"
	BeginnerQ = "Beginner Q&A"
)

// Fields lists the four section names in check order
var Fields = []string{History, WhyHow, Layman, BeginnerQ}

// Placeholder texts
const (
	NotGenerated = "Could not generate content."
	NotParsed    = "Could not parse this section."
)

// Record is the fixed four-section response. Error is only set when the
// model call itself failed.
type Record struct {
	History   string `json:"History"`
	WhyHow    string `json:"Why & How"`
	Layman    string `json:"Layman Explanation"`
	BeginnerQ string `json:"Beginner Q&A"`
	Error     string `json:"error,omitempty"`
}

// Filled returns a record with every section set to text
func Filled(text string) Record {
	return Record{History: text, WhyHow: text, Layman: text, BeginnerQ: text}
}

// Failed is the record returned when generation failed
func Failed(err error) Record {
	r := Filled(NotGenerated)
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// Get returns the value stored under a field name
func (r *Record) Get(field string) string {
	if p := r.slot(field); p != nil {
		return *p
	}
	return ""
}

// Set stores value under a field name; unknown names are ignored
func (r *Record) Set(field, value string) {
	if p := r.slot(field); p != nil {
		*p = value
	}
}

func (r *Record) slot(field string) *string {
	switch field {
	case History:
		return &r.History
	case WhyHow:
		return &r.WhyHow
	case Layman:
		return &r.Layman
	case BeginnerQ:
		return &r.BeginnerQ
	}
	return nil
}

// Misses counts sections still holding a placeholder
func (r Record) Misses() int {
	n := 0
	for _, f := range Fields {
		if v := r.Get(f); v == NotParsed || v == NotGenerated {
			n++
		}
	}
	return n
}
