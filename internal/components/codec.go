package components

import (
	"encoding/csv"
	"log"
	"strings"
)

// encodeArguments serializes an ordered argument list into a single CSV record.
// Every field is quoted and internal quotes are doubled, so argument values may
// safely contain commas, quotes and newlines. An empty list encodes to "".
func encodeArguments(args []string) string {
	if len(args) == 0 {
		return ""
	}

	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = `"` + strings.ReplaceAll(arg, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",") + "\n"
}

// decodeArguments is the inverse of encodeArguments. Empty input yields an
// empty list, and a malformed record degrades to an empty list with a log
// entry rather than failing the callback path.
func decodeArguments(encoded string) []string {
	if encoded == "" || encoded == "\n" {
		return []string{}
	}

	r := csv.NewReader(strings.NewReader(encoded))
	r.FieldsPerRecord = -1

	record, err := r.Read()
	if err != nil {
		log.Printf("[ERR] Malformed component arguments %q: %v", encoded, err)
		return []string{}
	}
	return record
}
