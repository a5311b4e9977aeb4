package category

// Category classifies both templates and custom requests. Closed set.
type Category string

const (
	Business  Category = "business"
	Portfolio Category = "portfolio"
	Education Category = "education"
	Ecommerce Category = "ecommerce"
	Blog      Category = "blog"
	Event     Category = "event"
)

type InputKind string

const (
	KindText   InputKind = "text"
	KindNumber InputKind = "number"
	KindDate   InputKind = "date"
)

// Field describes one category-specific form input.
type Field struct {
	Key         string
	Label       string
	InputKind   InputKind
	Placeholder string
	HelpText    string
	Required    bool
}

var registry = map[Category][]Field{
	Business: {
		{Key: "business_name", Label: "Business name", InputKind: KindText, Placeholder: "Acme Ltd", Required: true},
		{Key: "business_type", Label: "Type of business", InputKind: KindText, Placeholder: "Retail, consulting...", Required: true},
		{Key: "business_location", Label: "Business location", InputKind: KindText, Placeholder: "City, country"},
	},
	Portfolio: {
		{Key: "profession", Label: "Profession", InputKind: KindText, Placeholder: "Photographer", Required: true},
		{Key: "skills", Label: "Key skills", InputKind: KindText, HelpText: "Comma separated"},
	},
	Education: {
		{Key: "institution_name", Label: "Institution name", InputKind: KindText, Required: true},
		{Key: "institution_type", Label: "Institution type", InputKind: KindText, Placeholder: "School, college..."},
		{Key: "student_count", Label: "Approximate student count", InputKind: KindNumber},
	},
	Ecommerce: {
		{Key: "store_name", Label: "Store name", InputKind: KindText, Required: true},
		{Key: "product_count", Label: "Number of products", InputKind: KindNumber, HelpText: "Rough estimate is fine"},
		{Key: "payment_methods", Label: "Preferred payment methods", InputKind: KindText},
	},
	Blog: {
		{Key: "blog_topic", Label: "Blog topic", InputKind: KindText, Required: true},
		{Key: "posting_frequency", Label: "Posting frequency", InputKind: KindText, Placeholder: "Weekly, monthly..."},
	},
	Event: {
		{Key: "event_name", Label: "Event name", InputKind: KindText, Required: true},
		{Key: "event_date", Label: "Event date", InputKind: KindDate},
	},
}

// Fields returns the ordered extra-field descriptors for a category.
// ok is false for an unregistered category.
func Fields(cat Category) ([]Field, bool) {
	fields, ok := registry[cat]
	return fields, ok
}

// Valid reports whether cat is part of the closed set.
func Valid(cat Category) bool {
	_, ok := registry[cat]
	return ok
}

// All lists the registered categories in a stable order.
func All() []Category {
	return []Category{Business, Portfolio, Education, Ecommerce, Blog, Event}
}

// Extension collects the category's declared fields from submitted form
// values. Values for fields of other categories are dropped even if present,
// so switching categories in the form cannot leak hidden inputs into the
// stored order.
func Extension(cat Category, form map[string]string) map[string]string {
	fields, ok := registry[cat]
	if !ok {
		return nil
	}
	ext := make(map[string]string, len(fields))
	for _, f := range fields {
		if v, present := form[f.Key]; present && v != "" {
			ext[f.Key] = v
		}
	}
	return ext
}

// MissingRequired returns the keys of required fields absent from the form.
func MissingRequired(cat Category, form map[string]string) []string {
	fields, ok := registry[cat]
	if !ok {
		return nil
	}
	var missing []string
	for _, f := range fields {
		if f.Required && form[f.Key] == "" {
			missing = append(missing, f.Key)
		}
	}
	return missing
}
