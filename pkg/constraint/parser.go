package constraint

import (
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/planrect/planrect/pkg/errors"
)

// One grammar struct per kind. Keyword captures hold the raw token text
// and are lowercased during conversion so that the enumerated types stay
// canonical regardless of input casing.

type widthPattern struct {
	Box   int     `parser:"KwBox @Integer KwHas KwWidth KwOf"`
	Value float64 `parser:"@(Real | Integer)"`
}

type heightPattern struct {
	Box   int     `parser:"KwBox @Integer KwHas KwHeight KwOf"`
	Value float64 `parser:"@(Real | Integer)"`
}

type positionPattern struct {
	Box1 int    `parser:"KwBox @Integer KwIs KwTo KwThe"`
	Side string `parser:"@(KwLeft | KwBottom) KwOf KwBox"`
	Box2 int    `parser:"@Integer"`
}

type areaPattern struct {
	Box   int     `parser:"KwBox @Integer KwHas KwArea KwOf KwAt KwLeast"`
	Value float64 `parser:"@(Real | Integer)"`
}

type ratioPattern struct {
	Box   int     `parser:"KwBox @Integer KwHas KwAspect KwRatio KwOf KwAt"`
	Cmp   string  `parser:"@(KwLeast | KwMost)"`
	Value float64 `parser:"@(Real | Integer)"`
}

type horizontalAlignPattern struct {
	Edge1 string `parser:"@(KwTop | KwCenter | KwBottom) KwOf KwBox"`
	Box1  int    `parser:"@Integer KwAligns KwHorizontally KwWith"`
	Edge2 string `parser:"@(KwTop | KwCenter | KwBottom) KwOf KwBox"`
	Box2  int    `parser:"@Integer"`
}

type verticalAlignPattern struct {
	Edge1 string `parser:"@(KwLeft | KwCenter | KwRight) KwOf KwBox"`
	Box1  int    `parser:"@Integer KwAligns KwVertically KwWith"`
	Edge2 string `parser:"@(KwLeft | KwCenter | KwRight) KwOf KwBox"`
	Box2  int    `parser:"@Integer"`
}

type symmetryPattern struct {
	Box1  int     `parser:"KwBox @Integer KwAnd KwBox"`
	Box2  int     `parser:"@Integer KwAre KwSymmetric KwThrough KwAxis"`
	Axis  string  `parser:"@(KwX | KwY) Equals"`
	Value float64 `parser:"@(Real | Integer)"`
}

type similarityPattern struct {
	Box1  int     `parser:"KwBox @Integer KwIs"`
	Scale float64 `parser:"@(Real | Integer) ScaledSuffix KwTranslate KwOf KwBox"`
	Box2  int     `parser:"@Integer"`
}

type containmentPattern struct {
	Box int     `parser:"KwBox @Integer KwContains KwA KwPoint LParen"`
	X   float64 `parser:"@(Real | Integer) Comma"`
	Y   float64 `parser:"@(Real | Integer) RParen"`
}

// build compiles the grammar for one pattern struct.
func build[T any]() *participle.Parser[T] {
	return participle.MustBuild[T](
		participle.Lexer(planLexer),
		participle.Elide("Whitespace"),
	)
}

var (
	widthParser           = build[widthPattern]()
	heightParser          = build[heightPattern]()
	positionParser        = build[positionPattern]()
	areaParser            = build[areaPattern]()
	ratioParser           = build[ratioPattern]()
	horizontalAlignParser = build[horizontalAlignPattern]()
	verticalAlignParser   = build[verticalAlignPattern]()
	symmetryParser        = build[symmetryPattern]()
	similarityParser      = build[similarityPattern]()
	containmentParser     = build[containmentPattern]()
)

// decoders maps each kind to its pattern decoder.
var decoders = map[Kind]func(text string) (Fact, error){
	KindWidth: func(text string) (Fact, error) {
		p, err := widthParser.ParseString("", text)
		if err != nil {
			return nil, err
		}
		return Width{Box: p.Box, Value: p.Value}, nil
	},
	KindHeight: func(text string) (Fact, error) {
		p, err := heightParser.ParseString("", text)
		if err != nil {
			return nil, err
		}
		return Height{Box: p.Box, Value: p.Value}, nil
	},
	KindPosition: func(text string) (Fact, error) {
		p, err := positionParser.ParseString("", text)
		if err != nil {
			return nil, err
		}
		return Position{Box1: p.Box1, Side: Side(strings.ToLower(p.Side)), Box2: p.Box2}, nil
	},
	KindArea: func(text string) (Fact, error) {
		p, err := areaParser.ParseString("", text)
		if err != nil {
			return nil, err
		}
		return Area{Box: p.Box, Value: p.Value}, nil
	},
	KindRatio: func(text string) (Fact, error) {
		p, err := ratioParser.ParseString("", text)
		if err != nil {
			return nil, err
		}
		cmp := AtLeast
		if strings.EqualFold(p.Cmp, "most") {
			cmp = AtMost
		}
		return Ratio{Box: p.Box, Cmp: cmp, Value: p.Value}, nil
	},
	KindHorizontalAlign: func(text string) (Fact, error) {
		p, err := horizontalAlignParser.ParseString("", text)
		if err != nil {
			return nil, err
		}
		return HorizontalAlign{
			Edge1: HEdge(strings.ToLower(p.Edge1)),
			Box1:  p.Box1,
			Edge2: HEdge(strings.ToLower(p.Edge2)),
			Box2:  p.Box2,
		}, nil
	},
	KindVerticalAlign: func(text string) (Fact, error) {
		p, err := verticalAlignParser.ParseString("", text)
		if err != nil {
			return nil, err
		}
		return VerticalAlign{
			Edge1: VEdge(strings.ToLower(p.Edge1)),
			Box1:  p.Box1,
			Edge2: VEdge(strings.ToLower(p.Edge2)),
			Box2:  p.Box2,
		}, nil
	},
	KindSymmetry: func(text string) (Fact, error) {
		p, err := symmetryParser.ParseString("", text)
		if err != nil {
			return nil, err
		}
		return Symmetry{
			Box1:  p.Box1,
			Box2:  p.Box2,
			Axis:  Axis(strings.ToLower(p.Axis)),
			Value: p.Value,
		}, nil
	},
	KindSimilarity: func(text string) (Fact, error) {
		p, err := similarityParser.ParseString("", text)
		if err != nil {
			return nil, err
		}
		return Similarity{Box1: p.Box1, Scale: p.Scale, Box2: p.Box2}, nil
	},
	KindContainment: func(text string) (Fact, error) {
		p, err := containmentParser.ParseString("", text)
		if err != nil {
			return nil, err
		}
		return Containment{Box: p.Box, X: p.X, Y: p.Y}, nil
	},
}

// Parse decodes a (kind, text) pair into a typed Fact.
//
// The kind is matched case-insensitively against the ten recognized kinds;
// an unrecognized kind fails with ErrCodeUnknownKind. Text that does not
// match the kind's sentence pattern fails with ErrCodeInvalidConstraint.
// The entire text must match: trailing input is rejected.
func Parse(kind Kind, text string) (Fact, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(string(kind))))
	decode, ok := decoders[k]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownKind, "unknown constraint kind %q", kind)
	}
	fact, err := decode(text)
	if err != nil {
		form := forms[k]
		return nil, errors.Wrap(errors.ErrCodeInvalidConstraint,
			err, "constraint %q does not match %q", text, form)
	}
	return fact, nil
}
