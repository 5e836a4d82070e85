package constants

import (
	"strings"
)

// DocumentType is the closed set of permit document kinds the extraction
// service understands. The string values are the exact form values the API
// expects in the `document_type` field.
type DocumentType string

const (
	SKTT       DocumentType = "SKTT"
	EVLN       DocumentType = "EVLN"
	ITAS       DocumentType = "ITAS"
	ITK        DocumentType = "ITK"
	Notifikasi DocumentType = "Notifikasi"
	DKPTKA     DocumentType = "DKPTKA"
)

var allDocumentTypes = []DocumentType{
	SKTT,
	EVLN,
	ITAS,
	ITK,
	Notifikasi,
	DKPTKA,
}

// AsStringSlice returns the document types as plain strings, e.g. for flag
// help text or request form values.
func AsStringSlice() []string {
	result := make([]string, len(allDocumentTypes))
	for i, dt := range allDocumentTypes {
		result[i] = string(dt)
	}
	return result
}

// Canonicalize maps free-form input to a DocumentType. Unknown input reports
// ok=false; callers then fall back to the generic column profile rather than
// treating it as an error.
func Canonicalize(input string) (DocumentType, bool) {
	if input == "" {
		return "", false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]DocumentType{
		"kitas":          ITAS,
		"e-itas":         ITAS,
		"kitk":           ITK,
		"notification":   Notifikasi,
		"notifikasi tka": Notifikasi,
	}

	if dt, ok := synonyms[normalized]; ok {
		return dt, true
	}

	for _, dt := range allDocumentTypes {
		if normalized == strings.ToLower(string(dt)) {
			return dt, true
		}
	}

	return "", false
}
