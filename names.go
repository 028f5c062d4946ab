package zmh

import "strings"

// Suffix is the default extension of encoded files, without the dot.
const Suffix = "zmh"

// HasSuffix reports whether name carries the ".zmh" extension.
func HasSuffix(name string) bool {
	return hasSuffix(name, Suffix)
}

// EncodedName returns the name an encoded copy of name is written to.
func EncodedName(name string) string {
	return encodedName(name, Suffix)
}

// DecodedName strips the ".zmh" extension. It returns name unchanged if
// the extension is absent.
func DecodedName(name string) string {
	return decodedName(name, Suffix)
}

func hasSuffix(name, suffix string) bool {
	ext := "." + suffix
	return len(name) > len(ext) && strings.HasSuffix(name, ext)
}

func encodedName(name, suffix string) string {
	return name + "." + suffix
}

func decodedName(name, suffix string) string {
	if !hasSuffix(name, suffix) {
		return name
	}
	return strings.TrimSuffix(name, "."+suffix)
}
