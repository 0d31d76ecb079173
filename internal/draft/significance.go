package draft

import (
	"reflect"

	"draftkeep/pkg/htmltext"
)

// significant decides whether the field map is worth persisting at all.
// A single significant field is enough; saving a draft where every field
// is empty would clobber whatever meaningful draft was stored before.
func significant(data, initial map[string]any) bool {
	for field, value := range data {
		if fieldSignificant(value, initial[field]) {
			return true
		}
	}
	return false
}

func fieldSignificant(value, initial any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		// Rich-text editors leave empty markup like <p><br></p> behind.
		return len(htmltext.StripTags(v)) > 0
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	}

	// Remaining primitives count only when the user actually changed them.
	return !reflect.DeepEqual(value, initial)
}
