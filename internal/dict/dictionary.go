// Package dict provides the immutable word-class lists used to resolve
// mention attributes.
package dict

import (
	"sort"
	"strings"

	"github.com/ppiankov/corefsieve/internal/model"
)

// PronounPerson is the grammatical person class of a pronoun
type PronounPerson int

const (
	PersonNone PronounPerson = iota
	PersonFirst
	PersonSecond
	PersonThird
)

func (p PronounPerson) String() string {
	switch p {
	case PersonFirst:
		return "first"
	case PersonSecond:
		return "second"
	case PersonThird:
		return "third"
	}
	return "none"
}

type wordSet map[string]struct{}

func newWordSet(words []string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			s[w] = struct{}{}
		}
	}
	return s
}

func (s wordSet) has(w string) bool {
	_, ok := s[w]
	return ok
}

// Dictionaries holds every word class. It is built once per process and
// never modified afterwards, so it is safe to share across goroutines.
type Dictionaries struct {
	source string
	digest string

	personal     wordSet
	firstPerson  wordSet
	secondPerson wordSet
	thirdPerson  wordSet

	malePronouns      wordSet
	femalePronouns    wordSet
	neutralPronouns   wordSet
	singularPronouns  wordSet
	pluralPronouns    wordSet
	animatePronouns   wordSet
	inanimatePronouns wordSet
	otherPronouns     wordSet

	maleNouns      wordSet
	femaleNouns    wordSet
	neutralNouns   wordSet
	animateNouns   wordSet
	inanimateNouns wordSet
	singularNouns  wordSet
	pluralNouns    wordSet
}

func fromFile(source string, f *File) *Dictionaries {
	return &Dictionaries{
		source:            source,
		personal:          newWordSet(f.Pronouns.Personal),
		firstPerson:       newWordSet(f.Pronouns.FirstPerson),
		secondPerson:      newWordSet(f.Pronouns.SecondPerson),
		thirdPerson:       newWordSet(f.Pronouns.ThirdPerson),
		malePronouns:      newWordSet(f.Pronouns.Male),
		femalePronouns:    newWordSet(f.Pronouns.Female),
		neutralPronouns:   newWordSet(f.Pronouns.Neutral),
		singularPronouns:  newWordSet(f.Pronouns.Singular),
		pluralPronouns:    newWordSet(f.Pronouns.Plural),
		animatePronouns:   newWordSet(f.Pronouns.Animate),
		inanimatePronouns: newWordSet(f.Pronouns.Inanimate),
		otherPronouns:     newWordSet(f.Pronouns.Other),
		maleNouns:         newWordSet(f.Nouns.Male),
		femaleNouns:       newWordSet(f.Nouns.Female),
		neutralNouns:      newWordSet(f.Nouns.Neutral),
		animateNouns:      newWordSet(f.Nouns.Animate),
		inanimateNouns:    newWordSet(f.Nouns.Inanimate),
		singularNouns:     newWordSet(f.Nouns.Singular),
		pluralNouns:       newWordSet(f.Nouns.Plural),
	}
}

// Source returns the path the lists were loaded from, or "builtin"
func (d *Dictionaries) Source() string {
	return d.source
}

// Digest returns the hex SHA-256 of the data the lists were parsed from
func (d *Dictionaries) Digest() string {
	return d.digest
}

// IsPersonalPronoun reports whether w is a personal or possessive pronoun
func (d *Dictionaries) IsPersonalPronoun(w string) bool {
	return d.personal.has(key(w))
}

// IsPronoun reports whether w is in any pronoun list
func (d *Dictionaries) IsPronoun(w string) bool {
	k := key(w)
	return d.personal.has(k) || d.otherPronouns.has(k)
}

// PronounPerson returns the person class of a pronoun
func (d *Dictionaries) PronounPerson(w string) PronounPerson {
	k := key(w)
	switch {
	case d.firstPerson.has(k):
		return PersonFirst
	case d.secondPerson.has(k):
		return PersonSecond
	case d.thirdPerson.has(k):
		return PersonThird
	}
	return PersonNone
}

// PronounGender looks w up in the gendered pronoun lists
func (d *Dictionaries) PronounGender(w string) model.Gender {
	return gender(key(w), d.malePronouns, d.femalePronouns, d.neutralPronouns)
}

// PronounNumber looks w up in the pronoun number lists
func (d *Dictionaries) PronounNumber(w string) model.Number {
	return number(key(w), d.singularPronouns, d.pluralPronouns)
}

// PronounAnimacy looks w up in the pronoun animacy lists
func (d *Dictionaries) PronounAnimacy(w string) model.Animacy {
	return animacy(key(w), d.animatePronouns, d.inanimatePronouns)
}

// NounGender looks w up in the gendered noun lists
func (d *Dictionaries) NounGender(w string) model.Gender {
	return gender(key(w), d.maleNouns, d.femaleNouns, d.neutralNouns)
}

// NounNumber looks w up in the irregular noun number lists
func (d *Dictionaries) NounNumber(w string) model.Number {
	return number(key(w), d.singularNouns, d.pluralNouns)
}

// NounAnimacy looks w up in the noun animacy lists
func (d *Dictionaries) NounAnimacy(w string) model.Animacy {
	return animacy(key(w), d.animateNouns, d.inanimateNouns)
}

// Stats returns the size of every list, keyed by list name
func (d *Dictionaries) Stats() map[string]int {
	return map[string]int{
		"pronouns.personal":      len(d.personal),
		"pronouns.first_person":  len(d.firstPerson),
		"pronouns.second_person": len(d.secondPerson),
		"pronouns.third_person":  len(d.thirdPerson),
		"pronouns.male":          len(d.malePronouns),
		"pronouns.female":        len(d.femalePronouns),
		"pronouns.neutral":       len(d.neutralPronouns),
		"pronouns.singular":      len(d.singularPronouns),
		"pronouns.plural":        len(d.pluralPronouns),
		"pronouns.animate":       len(d.animatePronouns),
		"pronouns.inanimate":     len(d.inanimatePronouns),
		"pronouns.other":         len(d.otherPronouns),
		"nouns.male":             len(d.maleNouns),
		"nouns.female":           len(d.femaleNouns),
		"nouns.neutral":          len(d.neutralNouns),
		"nouns.animate":          len(d.animateNouns),
		"nouns.inanimate":        len(d.inanimateNouns),
		"nouns.singular":         len(d.singularNouns),
		"nouns.plural":           len(d.pluralNouns),
	}
}

// StatNames returns the keys of Stats in sorted order
func (d *Dictionaries) StatNames() []string {
	stats := d.Stats()
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func key(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// A word listed in more than one class of the same attribute is ambiguous
// and resolves to UNKNOWN.

func gender(k string, male, female, neutral wordSet) model.Gender {
	var found []model.Gender
	if male.has(k) {
		found = append(found, model.GenderMale)
	}
	if female.has(k) {
		found = append(found, model.GenderFemale)
	}
	if neutral.has(k) {
		found = append(found, model.GenderNeutral)
	}
	if len(found) != 1 {
		return model.GenderUnknown
	}
	return found[0]
}

func number(k string, singular, plural wordSet) model.Number {
	s, p := singular.has(k), plural.has(k)
	switch {
	case s && !p:
		return model.NumberSingular
	case p && !s:
		return model.NumberPlural
	}
	return model.NumberUnknown
}

func animacy(k string, animate, inanimate wordSet) model.Animacy {
	a, i := animate.has(k), inanimate.has(k)
	switch {
	case a && !i:
		return model.AnimacyAnimate
	case i && !a:
		return model.AnimacyInanimate
	}
	return model.AnimacyUnknown
}
