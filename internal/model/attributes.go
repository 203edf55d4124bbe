package model

// Gender of a mention
type Gender string

const (
	GenderUnknown Gender = "unknown"
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderNeutral Gender = "neutral"
)

// Number of a mention
type Number string

const (
	NumberUnknown  Number = "unknown"
	NumberSingular Number = "singular"
	NumberPlural   Number = "plural"
)

// Animacy of a mention
type Animacy string

const (
	AnimacyUnknown   Animacy = "unknown"
	AnimacyAnimate   Animacy = "animate"
	AnimacyInanimate Animacy = "inanimate"
)

// Person classifies pronouns by grammatical person, number and gender
type Person string

const (
	PersonUnknown Person = "unknown"
	PersonI       Person = "I"
	PersonWe      Person = "WE"
	PersonYou     Person = "YOU"
	PersonHe      Person = "HE"
	PersonShe     Person = "SHE"
	PersonIt      Person = "IT"
	PersonThey    Person = "THEY"
)

// IsFirstOrSecond reports whether p is a first- or second-person value
func (p Person) IsFirstOrSecond() bool {
	return p == PersonI || p == PersonWe || p == PersonYou
}

// Features are morphological features assigned upstream. Empty fields
// mean the upstream analysis had no opinion.
type Features struct {
	Gender  Gender  `json:"gender,omitempty"`
	Number  Number  `json:"number,omitempty"`
	Animacy Animacy `json:"animacy,omitempty"`
}

// Attributes are the resolved attributes of a mention
type Attributes struct {
	Gender  Gender  `json:"gender"`
	Number  Number  `json:"number"`
	Animacy Animacy `json:"animacy"`
	Person  Person  `json:"person"`
}

// UnknownAttributes returns attributes with every field UNKNOWN
func UnknownAttributes() Attributes {
	return Attributes{
		Gender:  GenderUnknown,
		Number:  NumberUnknown,
		Animacy: AnimacyUnknown,
		Person:  PersonUnknown,
	}
}
