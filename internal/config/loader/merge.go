package loader

import "strings"

// Merge combines configuration layers into a new map. Later layers win;
// nested tables are combined key by key. The layers are left untouched and
// share no maps or slices with the result.
func Merge(layers ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, layer := range layers {
		mergeInto(out, layer)
	}
	return out
}

func mergeInto(dst, src map[string]any) {
	for key, val := range src {
		table, isTable := val.(map[string]any)
		existing, hasTable := dst[key].(map[string]any)
		switch {
		case isTable && hasTable:
			mergeInto(existing, table)
		case isTable:
			sub := make(map[string]any, len(table))
			mergeInto(sub, table)
			dst[key] = sub
		default:
			dst[key] = copyValue(val)
		}
	}
}

func copyValue(val any) any {
	list, ok := val.([]any)
	if !ok {
		return val
	}
	out := make([]any, len(list))
	for i, e := range list {
		if table, ok := e.(map[string]any); ok {
			out[i] = Merge(table)
		} else {
			out[i] = copyValue(e)
		}
	}
	return out
}

// setPath stores value under a dotted path such as "view.scrollOff",
// creating the tables on the way.
func setPath(data map[string]any, path string, value any) {
	table := data
	for {
		key, rest, nested := strings.Cut(path, ".")
		if !nested {
			table[key] = value
			return
		}
		next, ok := table[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			table[key] = next
		}
		table, path = next, rest
	}
}
