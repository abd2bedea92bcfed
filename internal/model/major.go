package model

// Major is a degree program, optionally narrowed to a concentration.
type Major struct {
	Name          string `json:"name" yaml:"name"`
	Concentration string `json:"concentration" yaml:"concentration"`
	ID            int    `json:"id" yaml:"id"`
}

// DisplayName renders the major with its concentration, if any.
func (m Major) DisplayName() string {
	if m.Concentration == "" {
		return m.Name
	}
	return m.Name + " – " + m.Concentration
}

// RequiredCourse is a catalog course required by a major, tagged with the
// requirement group it satisfies.
type RequiredCourse struct {
	RequirementType string `json:"requirementType" yaml:"requirement_type"`
	Course          `yaml:",inline"`
}
