// Package latex transliterates the small set of LaTeX accent escapes that
// appear in exported bibliographies into plain Unicode text.
package latex

import "strings"

// Accents lists the escaped-accent tokens understood by ToUnicode, in the
// order they are substituted.
var Accents = []struct {
	Token string
	Char  string
}{
	{`\"a`, "ä"}, {`\"o`, "ö"}, {`\"u`, "ü"},
	{`\"A`, "Ä"}, {`\"O`, "Ö"}, {`\"U`, "Ü"},
	{`\'a`, "á"}, {`\'e`, "é"}, {`\'i`, "í"}, {`\'o`, "ó"}, {`\'u`, "ú"},
	{"\\`a", "à"}, {"\\`e", "è"}, {"\\`i", "ì"}, {"\\`o", "ò"}, {"\\`u", "ù"},
	{`\~n`, "ñ"}, {`\ss`, "ß"},
	{`\^a`, "â"}, {`\^e`, "ê"}, {`\^i`, "î"}, {`\^o`, "ô"}, {`\^u`, "û"},
}

// accentReplacer is built once from Accents. No token is a prefix of another
// and no replacement contains a backslash, so a single pass gives the same
// result as applying the substitutions one after another.
var accentReplacer = newAccentReplacer()

// groupingReplacer drops the braces BibTeX uses for grouping and case protection.
var groupingReplacer = strings.NewReplacer("{", "", "}", "")

func newAccentReplacer() *strings.Replacer {
	pairs := make([]string, 0, len(Accents)*2)
	for _, a := range Accents {
		pairs = append(pairs, a.Token, a.Char)
	}
	return strings.NewReplacer(pairs...)
}

// ToUnicode replaces accent escapes with their characters, then removes any
// remaining grouping braces. Braces are removed after substitution so both
// `\"a` and `{\"a}` decode to "ä". Unknown commands are left as they are.
func ToUnicode(text string) string {
	return groupingReplacer.Replace(accentReplacer.Replace(text))
}
