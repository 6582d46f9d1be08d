package a

type Payload interface{} // want `use 'any' instead of 'interface\{\}'`

type Details any

func encode(v interface{}) { // want `use 'any' instead of 'interface\{\}'`
	_ = v
}

func decode() any {
	return nil
}

type envelope struct {
	Data interface{} // want `use 'any' instead of 'interface\{\}'`
	Meta map[string]any
}

var attrs map[string][]interface{} // want `use 'any' instead of 'interface\{\}'`

var events chan any

func pair(a interface{}, b interface{}) { // want `use 'any' instead of 'interface\{\}'` `use 'any' instead of 'interface\{\}'`
	_, _ = a, b
}

func suppressedAbove() {
	//nolint
	var x interface{}
	_ = x
}

func suppressedInline() {
	var x interface{} //nolint:nointerface
	_ = x
}

func otherLinter() {
	var x interface{} //nolint:timeutc // want `use 'any' instead of 'interface\{\}'`
	_ = x
}

type Store interface {
	Close() error
}

func closeAll(s ...Store) {
	_ = s
}
