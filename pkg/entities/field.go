package entities

// Field names a schema field on a canonical entity. Only fields declared in
// the schema table below survive normalization; unknown source keys are
// dropped rather than merged speculatively.
type Field string

// FieldClass partitions schema fields by how safely a reasoning process can
// approximate them. Factual fields require verifiable fact recall and are
// held to a much higher confidence bar for machine-inferred contributions.
type FieldClass int

const (
	// ClassFactual marks objectively verifiable point facts.
	ClassFactual FieldClass = iota
	// ClassInferential marks classification, tagging, summarization and
	// translation fields.
	ClassInferential
)

// String returns the class name.
func (c FieldClass) String() string {
	if c == ClassFactual {
		return "factual"
	}
	return "inferential"
}

// FieldKind is the declared value shape of a schema field.
type FieldKind int

// Value shapes for schema fields.
const (
	KindString FieldKind = iota
	KindInt
	KindFloat
	KindBool
	KindStringList
	// KindSlugList is a list of slugs referencing other canonical entities.
	KindSlugList
)

// FieldSpec declares one schema field: its value shape, its class for
// confidence gating, and an optional closed set of allowed values.
type FieldSpec struct {
	Name  Field
	Class FieldClass
	Kind  FieldKind
	Enum  []string
}

// AllowsValue reports whether s is permitted by the spec's enum. Specs
// without an enum allow any value.
func (fs FieldSpec) AllowsValue(s string) bool {
	if len(fs.Enum) == 0 {
		return true
	}
	for _, allowed := range fs.Enum {
		if allowed == s {
			return true
		}
	}
	return false
}

// Schema field names.
const (
	FieldName               Field = "name"
	FieldWebsite            Field = "website"
	FieldDescription        Field = "description"
	FieldDescriptionZH      Field = "description_zh"
	FieldCategory           Field = "category"
	FieldSubCategory        Field = "sub_category"
	FieldTags               Field = "tags"
	FieldModalities         Field = "modalities"
	FieldPlatforms          Field = "platforms"
	FieldTargetAudience     Field = "target_audience"
	FieldUseCases           Field = "use_cases"
	FieldArchitecture       Field = "architecture"
	FieldPricingModel       Field = "pricing_model"
	FieldHasFreeTier        Field = "has_free_tier"
	FieldOpenSource         Field = "open_source"
	FieldAPIAvailable       Field = "api_available"
	FieldStatus             Field = "status"
	FieldFoundedYear        Field = "founded_year"
	FieldTotalRaisedUSD     Field = "total_raised_usd"
	FieldLastRound          Field = "last_round"
	FieldEmployeeCountRange Field = "employee_count_range"
	FieldHQCity             Field = "headquarters_city"
	FieldHQCountry          Field = "headquarters_country"
	FieldHQCountryCode      Field = "headquarters_country_code"
	FieldGitHubURL          Field = "github_url"
	FieldTwitter            Field = "twitter"
	FieldLinkedInURL        Field = "linkedin_url"
	FieldKeyPeople          Field = "key_people"
	FieldCompetitors        Field = "competitors"
	FieldBasedOn            Field = "based_on"
	FieldUsedBy             Field = "used_by"
)

// Closed value sets, kept in sync with the published data schema.
var (
	categoryEnum = []string{
		"ai-model", "ai-app", "ai-dev-tool", "ai-infrastructure",
		"ai-hardware", "ai-data", "ai-agent", "ai-search",
		"ai-security", "ai-science",
	}
	statusEnum = []string{
		"active", "beta", "alpha", "announced", "deprecated", "discontinued",
	}
	pricingModelEnum = []string{
		"free", "freemium", "paid", "enterprise", "open-source", "usage-based",
	}
	modalityEnum = []string{
		"text", "image", "audio", "video", "code", "multimodal",
	}
	platformEnum = []string{
		"web", "ios", "android", "desktop", "api", "cli", "self-hosted",
	}
)

// schema is the fixed table of known fields. Order matters only for
// deterministic iteration in reports.
var schema = []FieldSpec{
	{Name: FieldName, Class: ClassFactual, Kind: KindString},
	{Name: FieldWebsite, Class: ClassFactual, Kind: KindString},
	{Name: FieldDescription, Class: ClassInferential, Kind: KindString},
	{Name: FieldDescriptionZH, Class: ClassInferential, Kind: KindString},
	{Name: FieldCategory, Class: ClassInferential, Kind: KindString, Enum: categoryEnum},
	{Name: FieldSubCategory, Class: ClassInferential, Kind: KindString},
	{Name: FieldTags, Class: ClassInferential, Kind: KindStringList},
	{Name: FieldModalities, Class: ClassInferential, Kind: KindStringList, Enum: modalityEnum},
	{Name: FieldPlatforms, Class: ClassInferential, Kind: KindStringList, Enum: platformEnum},
	{Name: FieldTargetAudience, Class: ClassInferential, Kind: KindStringList},
	{Name: FieldUseCases, Class: ClassInferential, Kind: KindStringList},
	{Name: FieldArchitecture, Class: ClassInferential, Kind: KindString},
	{Name: FieldPricingModel, Class: ClassInferential, Kind: KindString, Enum: pricingModelEnum},
	{Name: FieldHasFreeTier, Class: ClassInferential, Kind: KindBool},
	{Name: FieldOpenSource, Class: ClassInferential, Kind: KindBool},
	{Name: FieldAPIAvailable, Class: ClassInferential, Kind: KindBool},
	{Name: FieldStatus, Class: ClassInferential, Kind: KindString, Enum: statusEnum},
	{Name: FieldFoundedYear, Class: ClassFactual, Kind: KindInt},
	{Name: FieldTotalRaisedUSD, Class: ClassFactual, Kind: KindFloat},
	{Name: FieldLastRound, Class: ClassFactual, Kind: KindString},
	{Name: FieldEmployeeCountRange, Class: ClassFactual, Kind: KindString},
	{Name: FieldHQCity, Class: ClassFactual, Kind: KindString},
	{Name: FieldHQCountry, Class: ClassFactual, Kind: KindString},
	{Name: FieldHQCountryCode, Class: ClassFactual, Kind: KindString},
	{Name: FieldGitHubURL, Class: ClassFactual, Kind: KindString},
	{Name: FieldTwitter, Class: ClassFactual, Kind: KindString},
	{Name: FieldLinkedInURL, Class: ClassFactual, Kind: KindString},
	{Name: FieldKeyPeople, Class: ClassFactual, Kind: KindStringList},
	{Name: FieldCompetitors, Class: ClassInferential, Kind: KindSlugList},
	{Name: FieldBasedOn, Class: ClassFactual, Kind: KindSlugList},
	{Name: FieldUsedBy, Class: ClassFactual, Kind: KindSlugList},
}

// specIndex is built once from the schema table.
var specIndex = func() map[Field]FieldSpec {
	idx := make(map[Field]FieldSpec, len(schema))
	for _, spec := range schema {
		idx[spec.Name] = spec
	}
	return idx
}()

// Spec returns the schema spec for a field, if it is a known field.
func Spec(f Field) (FieldSpec, bool) {
	spec, ok := specIndex[f]
	return spec, ok
}

// Known reports whether f is declared in the schema.
func Known(f Field) bool {
	_, ok := specIndex[f]
	return ok
}

// Fields returns all schema field specs in declaration order.
func Fields() []FieldSpec {
	out := make([]FieldSpec, len(schema))
	copy(out, schema)
	return out
}

// ReferenceFields returns the fields whose values are slug references to
// other canonical entities.
func ReferenceFields() []Field {
	var refs []Field
	for _, spec := range schema {
		if spec.Kind == KindSlugList {
			refs = append(refs, spec.Name)
		}
	}
	return refs
}

// qualityWeights drive the completeness quality score. Core identity fields
// weigh most; nice-to-have fields least. Fields absent from the table do not
// affect the score.
var qualityWeights = map[Field]float64{
	FieldName:               3.0,
	FieldWebsite:            3.0,
	FieldDescription:        3.0,
	FieldCategory:           2.0,
	FieldSubCategory:        1.5,
	FieldDescriptionZH:      0.5,
	FieldArchitecture:       1.0,
	FieldModalities:         1.0,
	FieldPlatforms:          1.0,
	FieldAPIAvailable:       0.5,
	FieldOpenSource:         0.5,
	FieldGitHubURL:          0.5,
	FieldPricingModel:       1.0,
	FieldStatus:             1.0,
	FieldTags:               1.0,
	FieldKeyPeople:          0.5,
	FieldFoundedYear:        1.0,
	FieldHQCountry:          1.0,
	FieldHQCity:             0.5,
	FieldTotalRaisedUSD:     0.5,
	FieldEmployeeCountRange: 0.5,
}

// qualityTotal is the sum of all quality weights.
var qualityTotal = func() float64 {
	var total float64
	for _, w := range qualityWeights {
		total += w
	}
	return total
}()
