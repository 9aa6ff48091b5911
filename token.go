// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jpull

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Number               // number, integer or float
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
	EOF                  // end of input
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
	EOF:     "end of input",
}

// String returns the label of t used in error messages.
func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// isValueStart reports whether t can begin a JSON value.
func (t Token) isValueStart() bool {
	switch t {
	case LBrace, LSquare, Number, String, True, False, Null:
		return true
	}
	return false
}

// valueTokens are the tokens that can begin a JSON value.
var valueTokens = []Token{Null, String, Number, True, False, LBrace, LSquare}

// scalarTokens are the tokens of JSON scalar values.
var scalarTokens = []Token{Null, True, False, Number, String}

// A Kind is the type of the value a Reader is positioned on.
type Kind byte

// Constants defining the valid Kind values.
const (
	KindObject Kind = iota + 1
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

var kindStr = [...]string{
	KindObject: "object",
	KindArray:  "array",
	KindString: "string",
	KindNumber: "number",
	KindBool:   "boolean",
	KindNull:   "null",
}

// String returns the name of k, or "invalid kind" if k is not a valid Kind.
func (k Kind) String() string {
	if k == 0 || int(k) >= len(kindStr) {
		return "invalid kind"
	}
	return kindStr[k]
}
