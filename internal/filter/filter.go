// Package filter implements the transform-and-reject pipeline applied to
// each candidate word extracted from a crawled document.
//
// Design decision: FilterKind is a small closed enum evaluated with a
// switch in Apply, rather than an interface with one implementation per
// kind — there is no external registration, the set of kinds is fixed by
// the CLI flag surface, and a switch keeps all filter semantics in one
// place for review, matching the teacher's internal/model/severity.go
// style of small value enums.
package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// FilterKind identifies one step of a Pipeline: either a transform that
// rewrites the running word, or a rejector that may short-circuit the
// pipeline for the whole word.
type FilterKind int

const (
	// Deunicode ASCII-folds the word: strips combining marks and maps a
	// small table of common non-ASCII letters to their closest ASCII
	// equivalent.
	Deunicode FilterKind = iota
	// Decancer strips homoglyph/zalgo decoration: combining marks plus a
	// table of visually-confusable symbols mapped back to plain letters.
	Decancer
	// ToLower case-folds to lowercase, locale-independently.
	ToLower
	// ToUpper case-folds to uppercase, locale-independently.
	ToUpper

	// AllNumbers rejects a word if every character is numeric.
	AllNumbers
	// AnyNumbers rejects a word if any character is numeric.
	AnyNumbers
	// NoNumbers rejects a word if no character is numeric.
	NoNumbers
	// OnlyNumbers rejects a word unless every character is numeric.
	OnlyNumbers

	// AllASCII rejects a word if every character is ASCII.
	AllASCII
	// AnyASCII rejects a word if any character is ASCII.
	AnyASCII
	// NoASCII rejects a word if no character is ASCII.
	NoASCII
	// OnlyASCII rejects a word unless every character is ASCII.
	OnlyASCII

	// AllLower rejects a word if every character is lowercase.
	AllLower
	// AnyLower rejects a word if any character is lowercase.
	AnyLower
	// NoLower rejects a word if no character is lowercase.
	NoLower
	// OnlyLower rejects a word unless every character is lowercase.
	OnlyLower

	// AllUpper rejects a word if every character is uppercase.
	AllUpper
	// AnyUpper rejects a word if any character is uppercase.
	AnyUpper
	// NoUpper rejects a word if no character is uppercase.
	NoUpper
	// OnlyUpper rejects a word unless every character is uppercase.
	OnlyUpper

	// None leaves the word unchanged and never rejects.
	None
)

var names = map[FilterKind]string{
	Deunicode:   "deunicode",
	Decancer:    "decancer",
	ToLower:     "to-lower",
	ToUpper:     "to-upper",
	AllNumbers:  "all-numbers",
	AnyNumbers:  "any-numbers",
	NoNumbers:   "no-numbers",
	OnlyNumbers: "only-numbers",
	AllASCII:    "all-ascii",
	AnyASCII:    "any-ascii",
	NoASCII:     "no-ascii",
	OnlyASCII:   "only-ascii",
	AllLower:    "all-lower",
	AnyLower:    "any-lower",
	NoLower:     "no-lower",
	OnlyLower:   "only-lower",
	AllUpper:    "all-upper",
	AnyUpper:    "any-upper",
	NoUpper:     "no-upper",
	OnlyUpper:   "only-upper",
	None:        "none",
}

// String implements fmt.Stringer, returning the kebab-case CLI spelling.
func (k FilterKind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown"
}

// Parse maps a kebab-case CLI flag value to its FilterKind.
func Parse(s string) (FilterKind, bool) {
	for k, name := range names {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

var (
	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
)

// predicate classifies a single rune for the {all,any,no,only} x
// {numbers,ascii,lower,upper} rejector family.
type predicate func(r rune) bool

var predicates = map[string]predicate{
	"numbers": unicode.IsNumber,
	"ascii":   func(r rune) bool { return r <= unicode.MaxASCII },
	"lower":   unicode.IsLower,
	"upper":   unicode.IsUpper,
}

// Pipeline is an ordered sequence of FilterKind steps applied to one
// candidate word.
type Pipeline []FilterKind

// Run applies every step in order. A transform rewrites the running word
// for subsequent steps; a rejector short-circuits and returns (word,
// false) immediately. Degenerate rejector combinations (e.g. all-ascii
// followed by no-ascii) are not treated as errors — they simply reject
// every word that reaches them.
func (p Pipeline) Run(word string) (string, bool) {
	for _, k := range p {
		var keep bool
		word, keep = k.Apply(word)
		if !keep {
			return word, false
		}
	}
	return word, true
}

// Apply runs a single FilterKind against word, returning the (possibly
// rewritten) word and whether it survives.
func (k FilterKind) Apply(word string) (string, bool) {
	switch k {
	case Deunicode:
		return deunicode(word), true
	case Decancer:
		return decancer(word), true
	case ToLower:
		return lowerCaser.String(word), true
	case ToUpper:
		return upperCaser.String(word), true
	case None:
		return word, true
	}

	family, pred := k.family()
	if pred == nil {
		return word, true
	}
	total, satisfy := 0, 0
	for _, r := range word {
		total++
		if pred(r) {
			satisfy++
		}
	}
	switch family {
	case "all":
		return word, !(total > 0 && satisfy == total)
	case "any":
		return word, satisfy == 0
	case "no":
		return word, satisfy > 0
	case "only":
		return word, total > 0 && satisfy == total
	}
	return word, true
}

// family splits a rejector FilterKind into its quantifier ("all", "any",
// "no", "only") and character predicate. Non-rejector kinds return a nil
// predicate.
func (k FilterKind) family() (string, predicate) {
	switch k {
	case AllNumbers:
		return "all", predicates["numbers"]
	case AnyNumbers:
		return "any", predicates["numbers"]
	case NoNumbers:
		return "no", predicates["numbers"]
	case OnlyNumbers:
		return "only", predicates["numbers"]
	case AllASCII:
		return "all", predicates["ascii"]
	case AnyASCII:
		return "any", predicates["ascii"]
	case NoASCII:
		return "no", predicates["ascii"]
	case OnlyASCII:
		return "only", predicates["ascii"]
	case AllLower:
		return "all", predicates["lower"]
	case AnyLower:
		return "any", predicates["lower"]
	case NoLower:
		return "no", predicates["lower"]
	case OnlyLower:
		return "only", predicates["lower"]
	case AllUpper:
		return "all", predicates["upper"]
	case AnyUpper:
		return "any", predicates["upper"]
	case NoUpper:
		return "no", predicates["upper"]
	case OnlyUpper:
		return "only", predicates["upper"]
	default:
		return "", nil
	}
}

// deunicodeTable covers a few letters that NFD decomposition alone does
// not resolve: ß, the æ/œ ligatures, and the stroked or dotless letters
// ø, ł, đ and ı.
var deunicodeTable = map[rune]string{
	'ß': "ss", // ß
	'æ': "ae", // æ
	'Æ': "AE",
	'œ': "oe", // œ
	'Œ': "OE",
	'ø': "o", // ø
	'Ø': "O",
	'ı': "i", // dotless i
	'ł': "l", // ł
	'Ł': "L",
	'đ': "d", // đ
	'Đ': "D",
}

// deunicode ASCII-folds s: runs NFD decomposition to split accented
// letters into base+combining-mark pairs, drops the combining marks, and
// substitutes the remaining table entries for letters decomposition
// can't reach.
func deunicode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	decomposed := norm.NFD.String(s)
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if repl, ok := deunicodeTable[r]; ok {
			b.WriteString(repl)
			continue
		}
		if r > unicode.MaxASCII {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// confusables maps visually-confusable symbols (fullwidth forms,
// mathematical alphanumeric variants, common leetspeak/zalgo stand-ins)
// back to a plain ASCII letter or digit.
var confusables = map[rune]rune{
	'Ａ': 'A', 'Ｂ': 'B', 'Ｃ': 'C', 'Ｄ': 'D', 'Ｅ': 'E',
	'ａ': 'a', 'ｂ': 'b', 'ｃ': 'c', 'ｄ': 'd', 'ｅ': 'e',
	'а': 'a', // Cyrillic а
	'е': 'e', // Cyrillic е
	'о': 'o', // Cyrillic о
	'р': 'p', // Cyrillic р
	'с': 'c', // Cyrillic с
	'0':      'o',
	'1':      'l',
	'3':      'e',
	'4':      'a',
	'5':      's',
	'7':      't',
	'@':      'a',
	'$':      's',
}

// decancer runs compatibility decomposition (NFKD), which folds fullwidth
// and mathematical alphanumeric forms to their plain letters and digits,
// strips combining marks, and then maps any remaining confusable symbol
// to its plain-letter equivalent, discarding anything that is neither a
// letter nor a digit.
func decancer(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	decomposed := norm.NFKD.String(s)
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if repl, ok := confusables[r]; ok {
			b.WriteRune(repl)
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
	}
	return b.String()
}
