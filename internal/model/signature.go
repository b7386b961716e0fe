package model

import "strings"

// Signature renders the normalized signature for a callable:
// identifier, parameters as "name: type" pairs in declaration order, and
// the return type. Type text is whitespace-normalized so that semantically
// identical signatures always render identically. Annotations never appear.
func Signature(identifier string, parameters []Parameter, ret *string) string {
	var b strings.Builder
	b.WriteString(identifier)
	b.WriteByte('(')
	for i, p := range parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Identifier)
		if p.Type != nil {
			b.WriteString(": ")
			b.WriteString(normalizeSpace(*p.Type))
		}
	}
	b.WriteByte(')')
	if ret != nil {
		b.WriteString(" -> ")
		b.WriteString(normalizeSpace(*ret))
	}
	return b.String()
}

// FullSignature prefixes the verbatim annotation block to a signature.
// The signature is always a suffix of the result.
func FullSignature(annotations, signature string) string {
	if annotations == "" {
		return signature
	}
	return annotations + "\n" + signature
}

// normalizeSpace collapses all runs of whitespace to single spaces, so a
// type annotation split across lines renders the same as its one-line form.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
