// Package attr derives gender, number, animacy and person for mentions.
//
// Each attribute is resolved by the first source that has an opinion:
//
//  1. pronoun-class dictionaries on the head word (pronominal mentions)
//  2. gendered, animate and irregular-number noun lists (other mentions)
//  3. morphological rules on the head part of speech
//  4. features assigned by the upstream analysis
//
// Anything left over is UNKNOWN, which the concordance checks tolerate.
package attr

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ppiankov/corefsieve/internal/dict"
	"github.com/ppiankov/corefsieve/internal/model"
)

// ErrMissingAttribute is matched by every MissingAttributeError
var ErrMissingAttribute = errors.New("attribute unresolved")

// MissingAttributeError reports an attribute no source could resolve.
// It is soft: the attribute degrades to UNKNOWN.
type MissingAttributeError struct {
	MentionID int
	Attribute string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("mention %d: %s unresolved", e.MentionID, e.Attribute)
}

func (e *MissingAttributeError) Is(target error) bool {
	return target == ErrMissingAttribute
}

// Resolver resolves mention attributes against a dictionary
type Resolver struct {
	dict   *dict.Dictionaries
	logger *slog.Logger
}

// NewResolver creates a resolver. A nil logger discards output.
func NewResolver(d *dict.Dictionaries, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{dict: d, logger: logger}
}

// ResolveDocument fills Attributes on every mention of doc
func (r *Resolver) ResolveDocument(doc *model.Document) {
	for si := range doc.Sentences {
		mentions := doc.Sentences[si].Mentions
		for mi := range mentions {
			mentions[mi].Attributes = r.Resolve(&mentions[mi])
		}
	}
}

// Resolve returns the attributes of a single mention
func (r *Resolver) Resolve(m *model.Mention) model.Attributes {
	attrs := model.UnknownAttributes()

	if g, err := r.Gender(m); err == nil {
		attrs.Gender = g
	} else {
		r.degrade(err)
	}
	if n, err := r.Number(m); err == nil {
		attrs.Number = n
	} else {
		r.degrade(err)
	}
	if a, err := r.Animacy(m); err == nil {
		attrs.Animacy = a
	} else {
		r.degrade(err)
	}
	if m.IsPronominal() {
		attrs.Person = r.Person(m, attrs)
	}

	return attrs
}

func (r *Resolver) degrade(err error) {
	var missing *MissingAttributeError
	if errors.As(err, &missing) {
		r.logger.Debug("attribute unresolved, using unknown",
			"mention", missing.MentionID, "attribute", missing.Attribute)
		return
	}
	r.logger.Warn("attribute resolution failed", "error", err)
}

// Gender resolves the gender of m
func (r *Resolver) Gender(m *model.Mention) (model.Gender, error) {
	head := headWord(m)

	if m.IsPronominal() {
		if g := r.dict.PronounGender(head); g != model.GenderUnknown {
			return g, nil
		}
	} else {
		if g := r.dict.NounGender(head); g != model.GenderUnknown {
			return g, nil
		}
		// Proper names are usually headed by the family name; try the given name
		if m.Category == model.CategoryProper {
			if g := r.dict.NounGender(firstWord(m)); g != model.GenderUnknown {
				return g, nil
			}
		}
	}

	if g := m.Features.Gender; g != "" && g != model.GenderUnknown {
		return g, nil
	}
	return model.GenderUnknown, &MissingAttributeError{MentionID: m.ID, Attribute: "gender"}
}

// Number resolves the grammatical number of m
func (r *Resolver) Number(m *model.Mention) (model.Number, error) {
	head := headWord(m)

	if m.IsPronominal() {
		if n := r.dict.PronounNumber(head); n != model.NumberUnknown {
			return n, nil
		}
	} else if n := r.dict.NounNumber(head); n != model.NumberUnknown {
		return n, nil
	}

	if n := numberFromPOS(m.Head().POS); n != model.NumberUnknown {
		return n, nil
	}

	if n := m.Features.Number; n != "" && n != model.NumberUnknown {
		return n, nil
	}
	return model.NumberUnknown, &MissingAttributeError{MentionID: m.ID, Attribute: "number"}
}

// Animacy resolves the animacy of m
func (r *Resolver) Animacy(m *model.Mention) (model.Animacy, error) {
	head := headWord(m)

	if m.IsPronominal() {
		if a := r.dict.PronounAnimacy(head); a != model.AnimacyUnknown {
			return a, nil
		}
	} else {
		if a := r.dict.NounAnimacy(head); a != model.AnimacyUnknown {
			return a, nil
		}
		// Only people and animals carry male or female gender
		switch r.dict.NounGender(head) {
		case model.GenderMale, model.GenderFemale:
			return model.AnimacyAnimate, nil
		}
	}

	if a := m.Features.Animacy; a != "" && a != model.AnimacyUnknown {
		return a, nil
	}
	return model.AnimacyUnknown, &MissingAttributeError{MentionID: m.ID, Attribute: "animacy"}
}

// Person maps a pronoun to the person table using its dictionary person
// class and the already resolved number, gender and animacy.
func (r *Resolver) Person(m *model.Mention, attrs model.Attributes) model.Person {
	if !m.IsPronominal() {
		return model.PersonUnknown
	}

	switch r.dict.PronounPerson(headWord(m)) {
	case dict.PersonFirst:
		switch attrs.Number {
		case model.NumberSingular:
			return model.PersonI
		case model.NumberPlural:
			return model.PersonWe
		}
	case dict.PersonSecond:
		return model.PersonYou
	case dict.PersonThird:
		if attrs.Number == model.NumberPlural {
			return model.PersonThey
		}
		if attrs.Number != model.NumberSingular {
			break
		}
		switch {
		case attrs.Gender == model.GenderMale:
			return model.PersonHe
		case attrs.Gender == model.GenderFemale:
			return model.PersonShe
		case attrs.Gender == model.GenderNeutral, attrs.Animacy == model.AnimacyInanimate:
			return model.PersonIt
		}
	}
	return model.PersonUnknown
}

func numberFromPOS(pos string) model.Number {
	switch pos {
	case "NNS", "NNPS":
		return model.NumberPlural
	case "NN", "NNP":
		return model.NumberSingular
	}
	return model.NumberUnknown
}

func headWord(m *model.Mention) string {
	return strings.ToLower(m.Head().Text)
}

func firstWord(m *model.Mention) string {
	if len(m.Tokens) > 0 {
		return strings.ToLower(m.Tokens[0].Text)
	}
	fields := strings.Fields(m.Text)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
