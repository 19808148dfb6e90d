package store

// deepMerge overlays src onto dst, recursing only when both sides hold
// a JSON object. Arrays and scalars from src win outright; dst values
// survive only for keys src does not carry. Neither input is modified.
func deepMerge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}

	for k, v := range src {
		srcObj, srcIsObj := v.(map[string]any)
		dstObj, dstIsObj := out[k].(map[string]any)
		if srcIsObj && dstIsObj {
			out[k] = deepMerge(dstObj, srcObj)
			continue
		}
		out[k] = v
	}

	return out
}
