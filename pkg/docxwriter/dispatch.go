package docxwriter

// Dispatch classifies one content entry and renders it into b. Errors come
// back as RenderError carrying key.
func Dispatch(b *Builder, key string, value interface{}) error {
	node, err := Classify(key, value)
	if err != nil {
		return withKey(err, key)
	}
	return withKey(Render(b, node), key)
}

// DispatchGroup dispatches every entry of a content group in order
func DispatchGroup(b *Builder, group Object) error {
	for _, entry := range group {
		if err := Dispatch(b, entry.Key, entry.Value); err != nil {
			return err
		}
	}
	return nil
}
