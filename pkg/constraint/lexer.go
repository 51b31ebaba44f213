package constraint

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// planLexer defines the lexical structure of the constraint language.
// All keywords are case-insensitive; numbers come in integer and real
// flavors so that box indices stay sign-less while values may carry
// signs and exponents.
var planLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},

	// Keywords
	{Name: "KwBox", Pattern: `(?i)\bbox\b`},
	{Name: "KwHas", Pattern: `(?i)\bhas\b`},
	{Name: "KwWidth", Pattern: `(?i)\bwidth\b`},
	{Name: "KwHeight", Pattern: `(?i)\bheight\b`},
	{Name: "KwOf", Pattern: `(?i)\bof\b`},
	{Name: "KwIs", Pattern: `(?i)\bis\b`},
	{Name: "KwTo", Pattern: `(?i)\bto\b`},
	{Name: "KwThe", Pattern: `(?i)\bthe\b`},
	{Name: "KwLeft", Pattern: `(?i)\bleft\b`},
	{Name: "KwRight", Pattern: `(?i)\bright\b`},
	{Name: "KwTop", Pattern: `(?i)\btop\b`},
	{Name: "KwBottom", Pattern: `(?i)\bbottom\b`},
	{Name: "KwCenter", Pattern: `(?i)\bcenter\b`},
	{Name: "KwArea", Pattern: `(?i)\barea\b`},
	{Name: "KwAt", Pattern: `(?i)\bat\b`},
	{Name: "KwLeast", Pattern: `(?i)\bleast\b`},
	{Name: "KwMost", Pattern: `(?i)\bmost\b`},
	{Name: "KwAspect", Pattern: `(?i)\baspect\b`},
	{Name: "KwRatio", Pattern: `(?i)\bratio\b`},
	{Name: "KwAligns", Pattern: `(?i)\baligns\b`},
	{Name: "KwHorizontally", Pattern: `(?i)\bhorizontally\b`},
	{Name: "KwVertically", Pattern: `(?i)\bvertically\b`},
	{Name: "KwWith", Pattern: `(?i)\bwith\b`},
	{Name: "KwAnd", Pattern: `(?i)\band\b`},
	{Name: "KwAre", Pattern: `(?i)\bare\b`},
	{Name: "KwSymmetric", Pattern: `(?i)\bsymmetric\b`},
	{Name: "KwThrough", Pattern: `(?i)\bthrough\b`},
	{Name: "KwAxis", Pattern: `(?i)\baxis\b`},
	{Name: "KwX", Pattern: `(?i)\bx\b`},
	{Name: "KwY", Pattern: `(?i)\by\b`},
	{Name: "KwContains", Pattern: `(?i)\bcontains\b`},
	{Name: "KwA", Pattern: `(?i)\ba\b`},
	{Name: "KwPoint", Pattern: `(?i)\bpoint\b`},
	{Name: "KwTranslate", Pattern: `(?i)\btranslate\b`},

	// "-scaled" suffix of similarity constraints, e.g. "2-scaled"
	{Name: "ScaledSuffix", Pattern: `(?i)-scaled\b`},

	// Punctuation
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Equals", Pattern: `=`},

	// Numbers. Real must come first: it claims anything with a decimal
	// point, exponent, or explicit sign, leaving bare digit runs to
	// Integer so box indices never accept a sign.
	{Name: "Real", Pattern: `[-+]?(?:\d+\.\d*|\.\d+)(?:[eE][-+]?\d+)?|[-+]?\d+[eE][-+]?\d+|[-+]\d+`},
	{Name: "Integer", Pattern: `\d+`},
})
