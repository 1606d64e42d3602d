package output

// T is the translation contract for user-facing strings returned by the
// HTTP surface. data carries optional template placeholders and may be nil.
type T interface {
	T(locale, key string, data map[string]any) string
}
