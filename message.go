package statetree

// Message is the schema-less key-value payload handed to a state's enter
// hook during a transition. The core imposes no structure; consumers define
// their own key conventions per transition. A nil Message is treated as
// empty everywhere.
type Message map[string]any

// Get returns the raw value for key and whether it was present.
func (m Message) Get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// String returns the value for key if it is a string.
func (m Message) String(key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// Float returns the value for key if it is a float64.
func (m Message) Float(key string) (float64, bool) {
	f, ok := m[key].(float64)
	return f, ok
}

// Int returns the value for key if it is an int.
func (m Message) Int(key string) (int, bool) {
	i, ok := m[key].(int)
	return i, ok
}

// Bool returns the value for key if it is a bool.
func (m Message) Bool(key string) (bool, bool) {
	b, ok := m[key].(bool)
	return b, ok
}
