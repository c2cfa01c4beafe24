package read

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/ava12/procin/source"
)

// Entry is a named reader with its output type erased, used to interpret binding lists.
type Entry struct {
	Name string
	Type reflect.Type
	read func(source.Source) (any, error)
}

// Read reads a value; its dynamic type is always e.Type.
func (e Entry) Read(s source.Source) (any, error) {
	return e.read(s)
}

var registry = struct {
	sync.RWMutex
	entries map[string]Entry
	short   map[string][]string
}{
	entries: map[string]Entry{},
	short:   map[string][]string{},
}

// Register makes r available to binding lists under given name.
// Names may be qualified with "." or "::", the last segment alone finds the entry too if it is unambiguous.
// Panics if the name is already registered.
func Register[T any](name string, r Reader[T]) {
	entry := Entry{
		Name: name,
		Type: reflect.TypeOf((*T)(nil)).Elem(),
		read: func(s source.Source) (any, error) {
			v, e := r.Read(s)
			if e != nil {
				return nil, e
			}
			return v, nil
		},
	}

	registry.Lock()
	defer registry.Unlock()
	if _, has := registry.entries[name]; has {
		panic(fmt.Sprintf("read: Register called twice for %q", name))
	}
	registry.entries[name] = entry
	last := lastSegment(name)
	if last != name {
		registry.short[last] = append(registry.short[last], name)
	}
}

// Lookup finds a registered reader by full name, or by the last segment of the name.
func Lookup(name string) (Entry, bool) {
	registry.RLock()
	defer registry.RUnlock()
	if e, has := registry.entries[name]; has {
		return e, true
	}

	last := lastSegment(name)
	if e, has := registry.entries[last]; has && last != name {
		return e, true
	}
	if names := registry.short[last]; len(names) == 1 {
		return registry.entries[names[0]], true
	}
	return Entry{}, false
}

// Names returns sorted names of all registered readers.
func Names() []string {
	registry.RLock()
	defer registry.RUnlock()
	res := make([]string, 0, len(registry.entries))
	for name := range registry.entries {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func lastSegment(name string) string {
	if i := strings.LastIndexAny(name, ".:"); i >= 0 {
		return name[i+1:]
	}
	return name
}

func init() {
	Register("usize", Uint[uint]{})
	Register("u8", Uint[uint8]{})
	Register("u16", Uint[uint16]{})
	Register("u32", Uint[uint32]{})
	Register("u64", Uint[uint64]{})
	Register("u128", Big{Bits: 128, Unsigned: true})
	Register("isize", Int[int]{})
	Register("i8", Int[int8]{})
	Register("i16", Int[int16]{})
	Register("i32", Int[int32]{})
	Register("i64", Int[int64]{})
	Register("i128", Big{Bits: 128})
	Register("f32", Float[float32]{})
	Register("f64", Float[float64]{})
	Register("bool", Bool{})
	Register("char", Char{})
	Register("String", String{})
	Register("Chars", Chars{})
	Register("Bytes", Bytes{})
	Register("Usize1", Usize1{})
	Register("Isize1", Isize1{})

	Register("int", Int[int]{})
	Register("int8", Int[int8]{})
	Register("int16", Int[int16]{})
	Register("int32", Int[int32]{})
	Register("int64", Int[int64]{})
	Register("uint", Uint[uint]{})
	Register("uint8", Uint[uint8]{})
	Register("uint16", Uint[uint16]{})
	Register("uint32", Uint[uint32]{})
	Register("uint64", Uint[uint64]{})
	Register("byte", Uint[byte]{})
	Register("rune", Char{})
	Register("float32", Float[float32]{})
	Register("float64", Float[float64]{})
	Register("string", String{})
	Register("BigInt", Big{})
}
