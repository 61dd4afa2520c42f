// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

// Package slug turns product and category names into file name fragments.
//
// "Cámara Canon" becomes "camara-canon". Accents are folded to ASCII and
// any run of other characters collapses to a single hyphen.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength caps a fragment so composed file names stay short.
const MaxLength = 40

var fold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// From returns the lowercase ASCII fragment of s, at most [MaxLength] bytes.
func From(s string) string {
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	out := b.String()
	if len(out) > MaxLength {
		out = strings.TrimRight(out[:MaxLength], "-")
	}
	return out
}

// Or returns the fragment of s, or fallback when nothing survives.
func Or(s, fallback string) string {
	if out := From(s); out != "" {
		return out
	}
	return fallback
}
