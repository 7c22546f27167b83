package api

import "encoding/json"

// Records mirror the JSON documents served by the CWE API. Field names
// match the remote keys; nested parts the CLI never inspects are kept as
// raw JSON so that re-encoding a record reproduces what was received.

// ContentVersion describes the CWE content release served by the API.
type ContentVersion struct {
	ContentVersion  string `json:"ContentVersion"`
	ContentDate     string `json:"ContentDate"`
	TotalWeaknesses int    `json:"TotalWeaknesses"`
	TotalCategories int    `json:"TotalCategories"`
	TotalViews      int    `json:"TotalViews"`
}

// CWEInfo identifies the kind of entry behind a CWE id.
type CWEInfo struct {
	ID   string `json:"ID"`
	Type string `json:"Type"`
}

// CWEInfoResponse maps each requested id to its type information.
type CWEInfoResponse map[string]CWEInfo

// Relation is one edge of the CWE relationship graph.
type Relation struct {
	Type          string `json:"Type,omitempty"`
	ID            string `json:"ID"`
	ViewID        string `json:"ViewID,omitempty"`
	PrimaryParent *bool  `json:"Primary_Parent,omitempty"`
}

// AncestorNode is one level of an ancestor tree.
type AncestorNode struct {
	Data    Relation       `json:"Data"`
	Parents []AncestorNode `json:"Parents"`
}

// DescendantNode is one level of a descendant tree.
type DescendantNode struct {
	Data     Relation         `json:"Data"`
	Children []DescendantNode `json:"Children"`
}

// WeaknessResponse is the body of /cwe/weakness/{ids}.
type WeaknessResponse struct {
	Weaknesses []Weakness `json:"Weaknesses"`
}

// ViewResponse is the body of /cwe/view/{ids}.
type ViewResponse struct {
	Views []View `json:"Views"`
}

// CategoryResponse is the body of /cwe/category/{ids}.
type CategoryResponse struct {
	Categories []Category `json:"Categories"`
}

// Weakness is a single CWE weakness entry.
type Weakness struct {
	ID                    string                `json:"ID"`
	Name                  string                `json:"Name"`
	Abstraction           string                `json:"Abstraction,omitempty"`
	Structure             string                `json:"Structure,omitempty"`
	Status                string                `json:"Status,omitempty"`
	Diagram               string                `json:"Diagram,omitempty"`
	Description           string                `json:"Description,omitempty"`
	ExtendedDescription   string                `json:"ExtendedDescription,omitempty"`
	LikelihoodOfExploit   string                `json:"LikelihoodOfExploit,omitempty"`
	RelatedWeaknesses     []RelatedWeakness     `json:"RelatedWeaknesses,omitempty"`
	WeaknessOrdinalities  []WeaknessOrdinality  `json:"WeaknessOrdinalities,omitempty"`
	ApplicablePlatforms   []ApplicablePlatform  `json:"ApplicablePlatforms,omitempty"`
	BackgroundDetails     []string              `json:"BackgroundDetails,omitempty"`
	AlternateTerms        []AlternateTerm       `json:"AlternateTerms,omitempty"`
	ModesOfIntroduction   []ModeOfIntroduction  `json:"ModesOfIntroduction,omitempty"`
	ExploitationFactors   []string              `json:"ExploitationFactors,omitempty"`
	CommonConsequences    []Consequence         `json:"CommonConsequences,omitempty"`
	DetectionMethods      []DetectionMethod     `json:"DetectionMethods,omitempty"`
	PotentialMitigations  []Mitigation          `json:"PotentialMitigations,omitempty"`
	DemonstrativeExamples []json.RawMessage     `json:"DemonstrativeExamples,omitempty"`
	ObservedExamples      []ObservedExample     `json:"ObservedExamples,omitempty"`
	FunctionalAreas       []string              `json:"FunctionalAreas,omitempty"`
	AffectedResources     []string              `json:"AffectedResources,omitempty"`
	TaxonomyMappings      []TaxonomyMapping     `json:"TaxonomyMappings,omitempty"`
	RelatedAttackPatterns []string              `json:"RelatedAttackPatterns,omitempty"`
	References            []Reference           `json:"References,omitempty"`
	MappingNotes          *MappingNotes         `json:"MappingNotes,omitempty"`
	Notes                 []Note                `json:"Notes,omitempty"`
	ContentHistory        []json.RawMessage     `json:"ContentHistory,omitempty"`
}

// Category is a CWE category entry.
type Category struct {
	ID               string            `json:"ID"`
	Name             string            `json:"Name"`
	Status           string            `json:"Status,omitempty"`
	Summary          string            `json:"Summary,omitempty"`
	Relationships    []Member          `json:"Relationships,omitempty"`
	TaxonomyMappings []TaxonomyMapping `json:"TaxonomyMappings,omitempty"`
	References       []Reference       `json:"References,omitempty"`
	MappingNotes     *MappingNotes     `json:"MappingNotes,omitempty"`
	Notes            []Note            `json:"Notes,omitempty"`
	ContentHistory   []json.RawMessage `json:"ContentHistory,omitempty"`
}

// View is a CWE view entry.
type View struct {
	ID             string            `json:"ID"`
	Name           string            `json:"Name"`
	Type           string            `json:"Type,omitempty"`
	Status         string            `json:"Status,omitempty"`
	Objective      string            `json:"Objective,omitempty"`
	Filter         string            `json:"Filter,omitempty"`
	Audience       []Audience        `json:"Audience,omitempty"`
	Members        []Member          `json:"Members,omitempty"`
	References     []Reference       `json:"References,omitempty"`
	MappingNotes   *MappingNotes     `json:"MappingNotes,omitempty"`
	Notes          []Note            `json:"Notes,omitempty"`
	ContentHistory []json.RawMessage `json:"ContentHistory,omitempty"`
}

type RelatedWeakness struct {
	Nature  string `json:"Nature"`
	CweID   string `json:"CweID"`
	ViewID        string `json:"ViewID,omitempty"`
	Ordinal string `json:"Ordinal,omitempty"`
	ChainID string `json:"ChainID,omitempty"`
}

type WeaknessOrdinality struct {
	Ordinality  string `json:"Ordinality"`
	Description string `json:"Description,omitempty"`
}

type ApplicablePlatform struct {
	Type       string `json:"Type"`
	Name       string `json:"Name,omitempty"`
	Class      string `json:"Class,omitempty"`
	Prevalence string `json:"Prevalence,omitempty"`
}

type AlternateTerm struct {
	Term        string `json:"Term"`
	Description string `json:"Description,omitempty"`
}

type ModeOfIntroduction struct {
	Phase string `json:"Phase"`
	Note  string `json:"Note,omitempty"`
}

type Consequence struct {
	Scope         []string `json:"Scope,omitempty"`
	Impact        []string `json:"Impact,omitempty"`
	Likelihood    []string `json:"Likelihood,omitempty"`
	Note          string   `json:"Note,omitempty"`
	ConsequenceID string   `json:"ConsequenceID,omitempty"`
}

type DetectionMethod struct {
	DetectionMethodID  string `json:"DetectionMethodID,omitempty"`
	Method             string `json:"Method"`
	Description        string `json:"Description,omitempty"`
	Effectiveness      string `json:"Effectiveness,omitempty"`
	EffectivenessNotes string `json:"EffectivenessNotes,omitempty"`
}

type Mitigation struct {
	MitigationID       string   `json:"MitigationID,omitempty"`
	Phase              []string `json:"Phase,omitempty"`
	Strategy           string   `json:"Strategy,omitempty"`
	Description        string   `json:"Description,omitempty"`
	Effectiveness      string   `json:"Effectiveness,omitempty"`
	EffectivenessNotes string   `json:"EffectivenessNotes,omitempty"`
}

type ObservedExample struct {
	Reference   string `json:"Reference"`
	Description string `json:"Description,omitempty"`
	Link        string `json:"Link,omitempty"`
}

type TaxonomyMapping struct {
	TaxonomyName string `json:"TaxonomyName"`
	EntryName    string `json:"EntryName,omitempty"`
	EntryID      string `json:"EntryID,omitempty"`
	MappingFit   string `json:"MappingFit,omitempty"`
}

type Reference struct {
	ExternalReferenceID string          `json:"ExternalReferenceID"`
	Section             string          `json:"Section,omitempty"`
	Authors             []string        `json:"Authors,omitempty"`
	Title               string          `json:"Title,omitempty"`
	PublicationYear     string          `json:"PublicationYear,omitempty"`
	URL                 string          `json:"URL,omitempty"`
	Details             json.RawMessage `json:"Details,omitempty"`
}

type MappingNotes struct {
	Usage       string       `json:"Usage,omitempty"`
	Rationale   string       `json:"Rationale,omitempty"`
	Comments    string       `json:"Comments,omitempty"`
	Reasons     []string     `json:"Reasons,omitempty"`
	Suggestions []Suggestion `json:"Suggestions,omitempty"`
}

type Suggestion struct {
	CweID   string `json:"CweID"`
	Comment string `json:"Comment,omitempty"`
}

type Note struct {
	Type string `json:"Type"`
	Note string `json:"Note"`
}

type Audience struct {
	Type        string `json:"Type"`
	Description string `json:"Description,omitempty"`
}

// Member links a view or category to one of its entries.
type Member struct {
	CweID  string `json:"CweID"`
	ViewID string `json:"ViewID,omitempty"`
}
